package cache

import (
	"context"

	apptaxonomy "github.com/worksuite/backend/internal/application/taxonomy"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// DistributedResolutionCache pairs the in-memory L1 cache with a Redis
// Pub/Sub invalidator so a mutation on one instance drops the kind's
// entries on every instance. Reads never touch Redis.
type DistributedResolutionCache struct {
	local       *InMemoryResolutionCache
	invalidator *RedisCacheInvalidator
	logger      *zap.Logger
	cancelFn    context.CancelFunc
}

// NewDistributedResolutionCache creates the distributed cache and
// starts the invalidation subscription
func NewDistributedResolutionCache(local *InMemoryResolutionCache, invalidator *RedisCacheInvalidator, logger *zap.Logger) *DistributedResolutionCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &DistributedResolutionCache{
		local:       local,
		invalidator: invalidator,
		logger:      logger,
	}

	subCtx, cancel := context.WithCancel(context.Background())
	c.cancelFn = cancel

	go func() {
		err := invalidator.Subscribe(subCtx, func(msg InvalidationMessage) {
			kind, kindErr := taxonomy.ParseKind(msg.Kind)
			if kindErr != nil {
				logger.Warn("Ignoring invalidation for unknown kind",
					zap.String("kind", msg.Kind))
				return
			}
			local.InvalidateKind(context.Background(), kind)
		})
		if err != nil && err != context.Canceled {
			logger.Error("Cache invalidation subscription ended", zap.Error(err))
		}
	}()

	return c
}

// Get retrieves a resolved item set from the local cache
func (c *DistributedResolutionCache) Get(ctx context.Context, key string) ([]taxonomy.Item, bool) {
	return c.local.Get(ctx, key)
}

// Set stores a resolved item set in the local cache
func (c *DistributedResolutionCache) Set(ctx context.Context, key string, items []taxonomy.Item) {
	c.local.Set(ctx, key, items)
}

// InvalidateKind drops local entries and broadcasts to other instances
func (c *DistributedResolutionCache) InvalidateKind(ctx context.Context, kind taxonomy.Kind) {
	c.local.InvalidateKind(ctx, kind)
	if err := c.invalidator.PublishKindInvalidation(ctx, kind); err != nil {
		// Local entries are already gone; remote instances converge
		// once their TTL expires.
		c.logger.Warn("Failed to broadcast kind invalidation",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// Close stops the subscription and releases both layers
func (c *DistributedResolutionCache) Close() error {
	if c.cancelFn != nil {
		c.cancelFn()
	}
	err := c.invalidator.Close()
	if localErr := c.local.Close(); err == nil {
		err = localErr
	}
	return err
}

// Ensure DistributedResolutionCache implements ResolutionCache
var _ apptaxonomy.ResolutionCache = (*DistributedResolutionCache)(nil)
