package cache

import (
	"fmt"
	"strings"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Tree cache backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// TreeCacheFactory creates tree caches based on configuration
type TreeCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TreeCacheFactoryOption is a functional option for configuring the factory
type TreeCacheFactoryOption func(*TreeCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TreeCacheFactoryOption {
	return func(f *TreeCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the in-memory cache.
// Default is true.
func WithInMemoryFallback(allow bool) TreeCacheFactoryOption {
	return func(f *TreeCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTreeCacheFactory creates a new factory
func NewTreeCacheFactory(cfg config.RedisConfig, opts ...TreeCacheFactoryOption) *TreeCacheFactory {
	f := &TreeCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds the cache for the given backend name.
// Redis caches are returned with a close function; the in-memory cache has a no-op closer.
func (f *TreeCacheFactory) Create(backend string) (ledgerapp.TreeCache, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		f.logger.Info("using in-memory account tree cache")
		return NewInMemoryTreeCache(), func() error { return nil }, nil
	case BackendRedis:
		store, err := NewRedisTreeCache(RedisConfig{
			Host:     f.redisConfig.Host,
			Port:     f.redisConfig.Port,
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("using Redis account tree cache", zap.String("addr", f.redisConfig.Addr()))
			return store, store.Close, nil
		}
		if !f.allowInMemoryFallback {
			return nil, nil, fmt.Errorf("Redis required for account tree cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory account tree cache. "+
			"Instances will not share invalidations.",
			zap.Error(err),
		)
		return NewInMemoryTreeCache(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown tree cache backend %q", backend)
	}
}
