package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=cache.go -destination=../../../test/unit/doubles/infra/cache/cache_mock.go -package=cache

type Cache interface {
	Get(ctx context.Context, key string) (any, bool)
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
	GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() (any, error)) (any, error)
}

var _ Cache = (*RistrettoCache)(nil)

type RistrettoCache struct {
	store       *ristretto.Cache
	singleGroup singleflight.Group
}

type CacheConfig struct {
	MaxCost     int64
	NumCounters int64
	BufferItems int64
}

// DefaultConfig allows 64MiB of stored documents.
func DefaultConfig() *CacheConfig {
	return &CacheConfig{
		MaxCost:     1 << 26,
		NumCounters: 1e6,
		BufferItems: 64,
	}
}

func New(config *CacheConfig) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
		// costOf already measures the value; ristretto's own per-item
		// overhead would shrink the budget below MaxCost bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{store: store}, nil
}

func (c *RistrettoCache) Get(ctx context.Context, key string) (any, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	return c.store.Get(key)
}

// Set waits for the write buffer to drain so a following Get observes the
// value.
func (c *RistrettoCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}

	ok := c.store.SetWithTTL(key, value, costOf(value), ttl)
	c.store.Wait()
	return ok
}

// costOf makes MaxCost a byte budget for the JSON documents most callers
// store. Anything else counts as one.
func costOf(value any) int64 {
	switch v := value.(type) {
	case string:
		return max(int64(len(v)), 1)
	case []byte:
		return max(int64(len(v)), 1)
	default:
		return 1
	}
}

func (c *RistrettoCache) Delete(ctx context.Context, key string) {
	if ctx.Err() != nil {
		return
	}
	c.store.Del(key)
}

// GetOrSet collapses concurrent loads of the same key into a single loader
// call.
func (c *RistrettoCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, loader func() (any, error)) (any, error) {
	if value, found := c.Get(ctx, key); found {
		return value, nil
	}

	value, err, _ := c.singleGroup.Do(key, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if value, found := c.Get(ctx, key); found {
			return value, nil
		}

		value, err := loader()
		if err != nil {
			return nil, err
		}

		c.Set(ctx, key, value, ttl)
		return value, nil
	})

	return value, err
}
