// Package cache stores derived scenes and rendered artifacts keyed by the
// identity of their inputs.
//
// Scenes are a pure function of (rows, columns, options), so a cache never
// changes what is produced; it only skips recomputation. Keys are BLAKE3
// hashes of the deterministic CBOR encoding of those inputs.
//
// Backends:
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// [NewCompressed] wraps any backend with zstd compression.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLScene    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache stores nothing; every Get misses. The CLI selects it for
// --no-cache and when the cache directory is unusable.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that never hits.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
