package cache

import (
	"context"
	"time"

	"github.com/matzehuels/anchorage/pkg/observability"
)

// Observed wraps c so that every Get and Set reports to the global cache
// hooks, labelled with [KeyType].
func Observed(c Cache) Cache {
	if _, ok := c.(*observedCache); ok {
		return c
	}
	return &observedCache{Cache: c}
}

type observedCache struct {
	Cache
}

func (c *observedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

func (c *observedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}
