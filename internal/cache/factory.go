package cache

import (
	"strconv"

	"match-highlights/internal/common/errors"
	"match-highlights/internal/common/logging"
	"match-highlights/internal/config"
)

// NewHighlightCache builds the configured cache backend.
func NewHighlightCache(cfg *config.Config, logger logging.Logger) (HighlightCache, error) {
	switch cfg.CacheBackend {
	case "redis":
		db, _ := strconv.Atoi(cfg.RedisDB)
		poolSize, _ := strconv.Atoi(cfg.RedisPoolSize)
		return NewRedisCache(&RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       db,
			PoolSize: poolSize,
			TTL:      cfg.CacheTTL,
		}, logger)
	case "local":
		return NewLocalCache(cfg.CacheTTL), nil
	default:
		return nil, errors.ConfigError("unsupported cache backend: " + cfg.CacheBackend)
	}
}
