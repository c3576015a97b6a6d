// Package cache provides byte-level caching for rendered diagram
// artifacts and API responses.
//
// Three backends implement the same [Cache] interface:
//   - [NullCache]: disables caching, useful for tests
//   - [FileCache]: directory-backed cache for CLI usage
//   - [RedisCache]: shared cache for multi-instance server deployments
//
// Keys are built with [SnapshotKey] and friends so that an artifact is
// reused only while the structure it was rendered from stays unchanged.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with a TTL.
// A TTL of 0 means the entry never expires.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value, replacing any previous entry for key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SnapshotKey returns the cache key for a rendered SVG snapshot of a
// diagram. The data hash covers the serialized graph, so editing the
// diagram naturally invalidates its snapshot.
func SnapshotKey(diagramID string, dataHash string) string {
	return hashKey("svg", diagramID, dataHash)
}

// LayoutKey returns the cache key for a computed layout, keyed on the
// structural hash of the graph and the layout configuration.
func LayoutKey(graphHash string, config any) string {
	return hashKey("layout", graphHash, config)
}

// ResponseKey returns the cache key for a cached API response.
func ResponseKey(endpoint string) string {
	return hashKey("http", endpoint)
}
