// Package cache holds the read-through caches used in front of the item store:
// a TTL-bounded in-process LRU, an optional Redis tier, and a MultiLevel loader
// that collapses concurrent misses for the same key.
package cache

import (
	"time"

	"github.com/duccv/whereisit/config"
)

// Cache is an in-process key/value cache with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key, if present and not expired.
	Get(key string) (any, bool)
	// Set stores value under key. A non-positive ttl uses the cache default.
	Set(key string, value any, ttl time.Duration)
	Delete(keys ...string)
	Len() int
	Clear()
	// Stop ends background expiry. Safe to call more than once.
	Stop()
}

type entry struct {
	key       string
	value     any
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// NewCache builds the in-process tier from configuration.
func NewCache(cfg config.CacheConfig) Cache {
	return NewLRUCache(cfg.Capacity, time.Duration(cfg.DefaultTTL)*time.Second)
}
