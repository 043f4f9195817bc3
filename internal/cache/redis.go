package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"match-highlights/internal/common/logging"
	"match-highlights/internal/models"
)

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

// RedisCache backs HighlightCache with Redis. Entries are JSON blobs that
// expire after the configured TTL; expiry is the only eviction.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

func NewRedisCache(config *RedisConfig, logger logging.Logger) (*RedisCache, error) {
	if config == nil {
		return nil, fmt.Errorf("redis config is required")
	}

	if config.Address == "" {
		config.Address = "localhost:6379"
	}
	if config.PoolSize == 0 {
		config.PoolSize = 10
	}
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,
	})

	// Probe at startup so a misconfigured address fails loudly instead of
	// silently degrading every read.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		rdb:    rdb,
		ttl:    config.TTL,
		logger: logger,
	}, nil
}

// NewRedisCacheWithClient wraps an existing client. Used by tests.
func NewRedisCacheWithClient(rdb *redis.Client, ttl time.Duration, logger logging.Logger) *RedisCache {
	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, id string) (*models.HighlightDTO, bool) {
	data, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Cache read failed, falling back to store",
			logging.String("highlight_id", id),
			logging.Err(err))
		return nil, false
	}

	var dto models.HighlightDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Cache entry undecodable, treating as miss",
			logging.String("highlight_id", id),
			logging.Err(err))
		return nil, false
	}

	return &dto, true
}

func (c *RedisCache) Set(ctx context.Context, dto *models.HighlightDTO) {
	data, err := json.Marshal(dto)
	if err != nil {
		c.logger.Warn("Failed to serialize highlight for cache",
			logging.String("highlight_id", dto.ID),
			logging.Err(err))
		return
	}

	if err := c.rdb.Set(ctx, Key(dto.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed",
			logging.String("highlight_id", dto.ID),
			logging.Err(err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, Key(id)).Err(); err != nil {
		c.logger.Warn("Cache delete failed",
			logging.String("highlight_id", id),
			logging.Err(err))
	}
}

func (c *RedisCache) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
