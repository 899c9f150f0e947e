// Package cache stores rendered artifacts keyed by the content of the scene
// that produced them.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI, one JSON entry per key under the user cache dir
//   - [RedisCache] for the render service, shared between replicas
//   - [NullCache] when caching is disabled
//
// Keys come from a [Keyer] so that the service can isolate tenants with a
// [ScopedKeyer] while the CLI uses the [DefaultKeyer] directly.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default lifetimes for cached entries.
const (
	// TTLArtifact applies to rendered tex, pdf and json outputs. Artifacts are
	// content-addressed so they never go stale, only cold.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLRender applies to renders stored by the HTTP service under an id.
	TTLRender = 24 * time.Hour
)
