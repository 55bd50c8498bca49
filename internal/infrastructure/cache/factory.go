package cache

import (
	apptaxonomy "github.com/worksuite/backend/internal/application/taxonomy"
	"github.com/worksuite/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ResolutionCacheFactory creates resolution caches based on configuration
type ResolutionCacheFactory struct {
	cacheConfig config.CacheConfig
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// ResolutionCacheFactoryOption is a functional option for configuring the factory
type ResolutionCacheFactoryOption func(*ResolutionCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ResolutionCacheFactoryOption {
	return func(f *ResolutionCacheFactory) {
		f.logger = logger
	}
}

// NewResolutionCacheFactory creates a new factory
func NewResolutionCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...ResolutionCacheFactoryOption) *ResolutionCacheFactory {
	f := &ResolutionCacheFactory{
		cacheConfig: cacheCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache builds the resolution cache the configuration asks for.
// Disabled caching yields a no-op cache; distributed mode wires the
// in-memory cache to Redis Pub/Sub invalidation and falls back to
// process-local caching when Redis is unavailable.
func (f *ResolutionCacheFactory) CreateCache() apptaxonomy.ResolutionCache {
	if !f.cacheConfig.Enabled {
		f.logger.Info("resolution caching disabled")
		return apptaxonomy.NoopResolutionCache{}
	}

	local := NewInMemoryResolutionCache(
		WithResolutionTTL(f.cacheConfig.TTL),
		WithResolutionLogger(f.logger),
	)

	if !f.cacheConfig.Distributed {
		f.logger.Info("using in-memory resolution cache")
		return local
	}

	invalidator, err := NewRedisCacheInvalidator(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	},
		WithInvalidatorChannel(f.cacheConfig.Channel),
		WithInvalidatorLogger(f.logger),
	)
	if err != nil {
		f.logger.Warn("Redis unavailable, falling back to process-local resolution cache. "+
			"Cross-instance invalidation will rely on TTL expiry.",
			zap.Error(err),
		)
		return local
	}

	f.logger.Info("using distributed resolution cache")
	return NewDistributedResolutionCache(local, invalidator, f.logger)
}
