package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apptaxonomy "github.com/worksuite/backend/internal/application/taxonomy"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultResolutionTTL   = 5 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryResolutionCache caches resolved item sets per scope key.
// This is designed to be used as L1 cache in front of the database;
// mutations invalidate every entry of the affected kind because
// narrower scopes resolve through broader ones.
type InMemoryResolutionCache struct {
	entries sync.Map // map[string]*resolutionEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// resolutionEntry wraps a cached item set with expiration time
type resolutionEntry struct {
	items     []taxonomy.Item
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *resolutionEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryResolutionCacheOption is a functional option for configuring the cache
type InMemoryResolutionCacheOption func(*InMemoryResolutionCache)

// WithResolutionTTL sets the entry lifetime
func WithResolutionTTL(ttl time.Duration) InMemoryResolutionCacheOption {
	return func(c *InMemoryResolutionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithResolutionLogger sets the logger for the cache
func WithResolutionLogger(logger *zap.Logger) InMemoryResolutionCacheOption {
	return func(c *InMemoryResolutionCache) {
		c.logger = logger
	}
}

// NewInMemoryResolutionCache creates a new in-memory resolution cache
func NewInMemoryResolutionCache(opts ...InMemoryResolutionCacheOption) *InMemoryResolutionCache {
	cache := &InMemoryResolutionCache{
		ttl:    defaultResolutionTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a resolved item set from cache
func (c *InMemoryResolutionCache) Get(ctx context.Context, key string) ([]taxonomy.Item, bool) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*resolutionEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for resolution", zap.String("key", key))
			return entry.items, true
		}
		// Expired, remove from cache
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for resolution", zap.String("key", key))
	return nil, false
}

// Set stores a resolved item set under a scope key
func (c *InMemoryResolutionCache) Set(ctx context.Context, key string, items []taxonomy.Item) {
	entry := &resolutionEntry{
		items:     items,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.entries.Store(key, entry)
	c.logger.Debug("Cached resolution in L1",
		zap.String("key", key),
		zap.Int("items", len(items)))
}

// InvalidateKind drops every cached entry of a kind
func (c *InMemoryResolutionCache) InvalidateKind(ctx context.Context, kind taxonomy.Kind) {
	prefix := "taxonomy:" + string(kind) + ":"
	removed := 0
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	c.logger.Debug("Invalidated L1 resolution entries",
		zap.String("kind", string(kind)),
		zap.Int("removed", removed))
}

// Close stops the background cleanup goroutine
func (c *InMemoryResolutionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryResolutionCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries in the cache
func (c *InMemoryResolutionCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryResolutionCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *InMemoryResolutionCache) doCleanup() {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		entry := value.(*resolutionEntry)
		if entry.isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired L1 resolution entries",
			zap.Int("removed", removed))
	}
}

// Ensure InMemoryResolutionCache implements ResolutionCache
var _ apptaxonomy.ResolutionCache = (*InMemoryResolutionCache)(nil)
