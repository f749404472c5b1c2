package cache

import (
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis-backed store when Redis is enabled and
// reachable, and an in-memory store otherwise
func NewIdempotencyStore(cfg *config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}

	logger.Info("Using Redis idempotency store",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)
	return store
}
