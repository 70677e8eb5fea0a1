// Package cache stores rendered artifacts keyed by scene content and render
// options.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for preview servers running side by side
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the scene hash together
// with every option that changes the output, so two renders share an entry
// only when they would produce identical bytes. [ScopedKeyer] prefixes keys
// for per-tenant namespaces.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default entry lifetimes.
const (
	TTLArtifact = 24 * time.Hour
	TTLDiagram  = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// KeyType returns the key's type prefix ("artifact", "diagram"), skipping
// any scope prefix added by a [ScopedKeyer].
func KeyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return key
	}
	prefix := key[:i]
	if j := strings.LastIndexByte(prefix, ':'); j >= 0 {
		prefix = prefix[j+1:]
	}
	return prefix
}

// NullCache misses every lookup and drops every write.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
