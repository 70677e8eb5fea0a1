package cache

import (
	"context"
	"time"

	"github.com/matzehuels/anchorui/pkg/observability"
)

// Lookup reads key and reports the outcome to the cache hooks. Backend
// errors count as misses.
func Lookup(ctx context.Context, c Cache, key string) ([]byte, bool) {
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, KeyType(key))
	return data, true
}

// Fetch is like [Lookup] but returns [ErrCacheMiss] on a miss and passes
// backend errors through.
func Fetch(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, hit, err := c.Get(ctx, key)
	switch {
	case err != nil:
		return nil, err
	case !hit:
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
		return nil, ErrCacheMiss
	}
	observability.Cache().OnCacheHit(ctx, KeyType(key))
	return data, nil
}

// Store writes data under key and reports the write to the cache hooks.
func Store(ctx context.Context, c Cache, key string, data []byte, ttl time.Duration) error {
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}
