package cache

import (
	"context"
	"time"

	"github.com/matzehuels/modgraph/pkg/observability"
)

// ScopedCache prefixes every key of an inner cache and reports hits, misses
// and writes to [observability.Cache] under its scope name.
//
// Scopes keep entries of different tools or format versions apart when
// several processes share one backend, for example a team-wide redis:
//
//	c := cache.NewScopedCache(redisCache, "modgraph:v1")
type ScopedCache struct {
	inner Cache
	scope string
}

// NewScopedCache wraps inner. A nil inner behaves like [NullCache].
func NewScopedCache(inner Cache, scope string) *ScopedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, scope: scope}
}

func (c *ScopedCache) key(key string) string {
	if c.scope == "" {
		return key
	}
	return c.scope + ":" + key
}

// Get retrieves a value and records a hit or miss.
func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, c.key(key))
	if err != nil {
		return nil, false, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, c.scope)
	} else {
		observability.Cache().OnCacheMiss(ctx, c.scope)
	}
	return data, ok, nil
}

// Set stores a value and records the write.
func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, c.key(key), data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.scope, len(data))
	return nil
}

// Delete removes a value.
func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.key(key))
}

// Close closes the inner cache.
func (c *ScopedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)
