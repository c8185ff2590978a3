// Package cache stores rendered artifacts keyed by scene content and
// render options.
//
// Backends:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entries on disk, for the CLI
//   - [RedisCache]: shared cache for the render service
//   - [MongoCache]: durable shared cache
//
// Keys come from a [Keyer] so that the same scene rendered with the same
// options always maps to the same entry, whichever backend holds it.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
