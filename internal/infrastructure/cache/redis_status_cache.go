package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStatusCache implements StatusCache on Redis. Suitable for
// distributed deployments where polling can land on any instance.
type RedisStatusCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStatusCache connects to Redis and returns a status cache
func NewRedisStatusCache(cfg config.RedisConfig) (*RedisStatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStatusCache{
		client:    client,
		keyPrefix: "analysis:status:",
		ttl:       cfg.TTL,
	}, nil
}

// NewRedisStatusCacheWithClient creates a cache with an existing Redis client
func NewRedisStatusCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{
		client:    client,
		keyPrefix: "analysis:status:",
		ttl:       ttl,
	}
}

func (c *RedisStatusCache) key(tenantID, analysisID uuid.UUID) string {
	return c.keyPrefix + tenantID.String() + ":" + analysisID.String()
}

// Get returns the cached result, or nil on a miss
func (c *RedisStatusCache) Get(ctx context.Context, tenantID, analysisID uuid.UUID) (*analysis.Result, error) {
	payload, err := c.client.Get(ctx, c.key(tenantID, analysisID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read status cache: %w", err)
	}

	var result analysis.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		// A stale or corrupt entry behaves like a miss
		return nil, nil
	}
	return &result, nil
}

// Set stores the result with the configured TTL
func (c *RedisStatusCache) Set(ctx context.Context, result *analysis.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}
	return c.client.Set(ctx, c.key(result.TenantID, result.ID), payload, c.ttl).Err()
}

// Invalidate removes a cached result
func (c *RedisStatusCache) Invalidate(ctx context.Context, tenantID, analysisID uuid.UUID) error {
	return c.client.Del(ctx, c.key(tenantID, analysisID)).Err()
}

// Close closes the Redis client
func (c *RedisStatusCache) Close() error {
	return c.client.Close()
}

var _ StatusCache = (*RedisStatusCache)(nil)
