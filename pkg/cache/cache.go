// Package cache stores computed layouts and rendered artifacts between runs.
//
// All backends implement [Cache], a byte-oriented key/value store with
// optional expiry:
//
//   - [FileCache] keeps entries under an XDG cache directory and is what the
//     CLI uses by default.
//   - [RedisCache] shares entries between machines.
//   - [NullCache] disables caching.
//
// Keys are produced by a [Keyer] from a content hash plus the options that
// influence the cached value, so changing any option yields a new key.
package cache

import (
	"context"
	"time"
)

// Default lifetimes per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
