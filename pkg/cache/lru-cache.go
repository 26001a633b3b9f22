package cache

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

const janitorInterval = 3 * time.Second

// LRUCache evicts the least recently used entry once capacity is reached.
// Expired entries are dropped lazily on access and by a background janitor.
type LRUCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = least recently used
	capacity   int
	defaultTTL time.Duration
	now        func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewLRUCache(capacity int, defaultTTL time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	c := &LRUCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		capacity:   capacity,
		defaultTTL: defaultTTL,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *LRUCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				zap.L().Debug("Cleaned up expired LRU cache entries", zap.Int("count", n))
			}
		case <-c.stop:
			return
		}
	}
}

func (c *LRUCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for e := c.order.Front(); e != nil; {
		next := e.Next()
		if ent := e.Value.(*entry); ent.expired(now) {
			c.order.Remove(e)
			delete(c.entries, ent.key)
			removed++
		}
		e = next
	}
	return removed
}

func (c *LRUCache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *LRUCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if e, ok := c.entries[key]; ok {
		ent := e.Value.(*entry)
		ent.value = value
		ent.expiresAt = expiresAt
		c.order.MoveToBack(e)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			ent := oldest.Value.(*entry)
			c.order.Remove(oldest)
			delete(c.entries, ent.key)
			zap.L().Debug("LRU cache evicted least recently used item", zap.String("key", ent.key))
		}
	}

	c.entries[key] = c.order.PushBack(&entry{key: key, value: value, expiresAt: expiresAt})
}

func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	ent := e.Value.(*entry)
	if ent.expired(c.now()) {
		c.order.Remove(e)
		delete(c.entries, key)
		return nil, false
	}
	c.order.MoveToBack(e)
	return ent.value, true
}

func (c *LRUCache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			c.order.Remove(e)
			delete(c.entries, key)
		}
	}
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Keys lists live keys from least to most recently used.
func (c *LRUCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		if ent := e.Value.(*entry); !ent.expired(now) {
			keys = append(keys, ent.key)
		}
	}
	return keys
}
