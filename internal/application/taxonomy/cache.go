package taxonomy

import (
	"context"

	"github.com/worksuite/backend/internal/domain/taxonomy"
)

// ResolutionCache caches resolved item sets per (kind, scope) key.
// Resolution results depend on broader tiers through the fallback
// walk, so mutations invalidate the whole kind rather than a single
// scope key.
type ResolutionCache interface {
	// Get returns the cached item set for a scope key
	Get(ctx context.Context, key string) ([]taxonomy.Item, bool)

	// Set stores the resolved item set under a scope key
	Set(ctx context.Context, key string, items []taxonomy.Item)

	// InvalidateKind drops every cached entry of a kind
	InvalidateKind(ctx context.Context, kind taxonomy.Kind)
}

// NoopResolutionCache satisfies ResolutionCache without caching.
// Useful in tests and when caching is disabled by configuration.
type NoopResolutionCache struct{}

// Get always misses
func (NoopResolutionCache) Get(ctx context.Context, key string) ([]taxonomy.Item, bool) {
	return nil, false
}

// Set does nothing
func (NoopResolutionCache) Set(ctx context.Context, key string, items []taxonomy.Item) {}

// InvalidateKind does nothing
func (NoopResolutionCache) InvalidateKind(ctx context.Context, kind taxonomy.Kind) {}

var _ ResolutionCache = (*NoopResolutionCache)(nil)
