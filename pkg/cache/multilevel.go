package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultRedisTimeout = 50 * time.Millisecond

// Loader fetches a value from the source of truth. found=false means the key has
// no value; such results are returned but never cached.
type Loader[T any] func(ctx context.Context) (value T, found bool, err error)

// MultiLevel reads through an in-process cache, then Redis when configured, then
// the loader. Concurrent misses on one key share a single load.
type MultiLevel[T any] struct {
	mem          Cache
	redis        redis.UniversalClient
	memTTL       time.Duration
	redisTTL     time.Duration
	redisTimeout time.Duration
	group        singleflight.Group
	logger       *zap.Logger

	// generations counts invalidations per key. A load that started before an
	// invalidation must not write its result back.
	genMu       sync.Mutex
	generations map[string]uint64
}

type result[T any] struct {
	value T
	found bool
}

// NewMultiLevel wires the tiers. redisClient may be nil.
func NewMultiLevel[T any](mem Cache, redisClient redis.UniversalClient, memTTL, redisTTL time.Duration) *MultiLevel[T] {
	return &MultiLevel[T]{
		mem:          mem,
		redis:        redisClient,
		memTTL:       memTTL,
		redisTTL:     redisTTL,
		redisTimeout: defaultRedisTimeout,
		generations:  make(map[string]uint64),
		logger:       zap.L().With(zap.String("component", "cache")),
	}
}

func (m *MultiLevel[T]) GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, bool, error) {
	if v, ok := m.mem.Get(key); ok {
		return v.(T), true, nil
	}

	res, err, _ := m.group.Do(key, func() (any, error) {
		gen := m.generation(key)
		if v, ok := m.mem.Get(key); ok {
			return result[T]{value: v.(T), found: true}, nil
		}

		if v, ok := m.fromRedis(ctx, key); ok {
			if m.generation(key) == gen {
				m.mem.Set(key, v, m.memTTL)
				if m.generation(key) != gen {
					m.mem.Delete(key)
				}
			}
			return result[T]{value: v, found: true}, nil
		}

		v, found, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if found {
			if m.generation(key) != gen {
				m.logger.Debug("Skipping cache fill for key invalidated during load", zap.String("key", key))
				return result[T]{value: v, found: found}, nil
			}
			m.mem.Set(key, v, m.memTTL)
			m.toRedis(ctx, key, v)
			if m.generation(key) != gen {
				m.Invalidate(ctx, key)
			}
		}
		return result[T]{value: v, found: found}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	r := res.(result[T])
	return r.value, r.found, nil
}

// Invalidate drops keys from every tier. Redis failures are logged; the entries
// then age out with their TTL.
func (m *MultiLevel[T]) Invalidate(ctx context.Context, keys ...string) {
	m.genMu.Lock()
	for _, key := range keys {
		m.generations[key]++
	}
	m.genMu.Unlock()

	m.mem.Delete(keys...)
	for _, key := range keys {
		m.group.Forget(key)
	}
	if m.redis == nil || len(keys) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.redisTimeout)
	defer cancel()
	if err := m.redis.Del(ctx, keys...).Err(); err != nil {
		m.logger.Warn("Failed to invalidate redis keys", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (m *MultiLevel[T]) generation(key string) uint64 {
	m.genMu.Lock()
	defer m.genMu.Unlock()
	return m.generations[key]
}

func (m *MultiLevel[T]) fromRedis(ctx context.Context, key string) (T, bool) {
	var v T
	if m.redis == nil {
		return v, false
	}

	ctx, cancel := context.WithTimeout(ctx, m.redisTimeout)
	defer cancel()

	raw, err := m.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.logger.Warn("Redis read failed, falling back to store", zap.String("key", key), zap.Error(err))
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		m.logger.Warn("Discarding undecodable redis entry", zap.String("key", key), zap.Error(err))
		return v, false
	}
	return v, true
}

func (m *MultiLevel[T]) toRedis(ctx context.Context, key string, v T) {
	if m.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn("Value not cacheable in redis", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.redisTimeout)
	defer cancel()
	if err := m.redis.Set(ctx, key, data, m.redisTTL).Err(); err != nil {
		m.logger.Warn("Redis write failed", zap.String("key", key), zap.Error(err))
	}
}
