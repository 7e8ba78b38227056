// Package cache provides pluggable byte caches for computed timeline
// results.
//
// The timeline engine itself is eager and unmemoized by contract; caching
// happens outside the core, at the CLI and HTTP boundaries, keyed by a
// content hash of the library plus the requested template id. Three
// backends exist:
//
//   - FileCache: XDG-cache-directory files, for the CLI
//   - RedisCache: shared cache for a served deployment
//   - NullCache: caching disabled (tests, --no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Values are opaque bytes; callers serialize what they store.
type Cache interface {
	// Get retrieves a value. The second result is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the things abouttime caches.
type Keyer interface {
	// LayoutKey identifies one lane's computed layout against one exact
	// library state. Any library edit changes libraryHash and therefore
	// invalidates every layout computed against the old state.
	LayoutKey(libraryHash, laneID string) string

	// SuggestKey identifies one suggestion result against one exact
	// library state.
	SuggestKey(libraryHash, query string) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout result caching.
func (k *DefaultKeyer) LayoutKey(libraryHash, laneID string) string {
	return hashKey("layout", libraryHash, laneID)
}

// SuggestKey generates a key for suggestion result caching.
func (k *DefaultKeyer) SuggestKey(libraryHash, query string) string {
	return hashKey("suggest", libraryHash, query)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, used
// when several libraries share one redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout result caching.
func (k *ScopedKeyer) LayoutKey(libraryHash, laneID string) string {
	return k.prefix + k.inner.LayoutKey(libraryHash, laneID)
}

// SuggestKey generates a prefixed key for suggestion result caching.
func (k *ScopedKeyer) SuggestKey(libraryHash, query string) string {
	return k.prefix + k.inner.SuggestKey(libraryHash, query)
}
