package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	resolutionKeyPrefix  = "chprice:"
	defaultScanBatchSize = 100
	defaultResolutionTTL = 5 * time.Minute
)

// RedisResolutionCache caches resolved channel prices in Redis so all
// console instances share one view
type RedisResolutionCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisResolutionCacheOption is a functional option for configuring the cache
type RedisResolutionCacheOption func(*RedisResolutionCache)

// WithResolutionTTL sets the entry TTL
func WithResolutionTTL(ttl time.Duration) RedisResolutionCacheOption {
	return func(c *RedisResolutionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithResolutionLogger sets the logger for the cache
func WithResolutionLogger(logger *zap.Logger) RedisResolutionCacheOption {
	return func(c *RedisResolutionCache) {
		c.logger = logger
	}
}

// NewRedisResolutionCache connects to Redis and returns a resolution cache
func NewRedisResolutionCache(cfg config.RedisConfig, opts ...RedisResolutionCacheOption) (*RedisResolutionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisResolutionCache{
		client:     client,
		ownsClient: true,
		ttl:        defaultResolutionTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisResolutionCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisResolutionCacheWithClient(client *redis.Client, opts ...RedisResolutionCacheOption) *RedisResolutionCache {
	cache := &RedisResolutionCache{
		client:     client,
		ownsClient: false,
		ttl:        defaultResolutionTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// resolutionKey builds "chprice:{product}:{variant|-}:{branch}"
func resolutionKey(productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) string {
	variant := "-"
	if variantID != nil {
		variant = variantID.String()
	}
	return resolutionKeyPrefix + productID.String() + ":" + variant + ":" + branchID.String()
}

// Get returns a cached resolution, or nil on miss
func (c *RedisResolutionCache) Get(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) (*channelapp.ResolvedPricesResponse, error) {
	key := resolutionKey(productID, variantID, branchID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resolution from cache: %w", err)
	}

	var resolution channelapp.ResolvedPricesResponse
	if err := json.Unmarshal(data, &resolution); err != nil {
		c.logger.Error("failed to unmarshal cached resolution",
			zap.String("key", key), zap.Error(err))
		// Drop the corrupted entry so the next read repopulates it
		_ = c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal resolution: %w", err)
	}
	return &resolution, nil
}

// Set stores a resolution under its product/variant/branch key
func (c *RedisResolutionCache) Set(ctx context.Context, resolution *channelapp.ResolvedPricesResponse) error {
	if resolution == nil {
		return nil
	}
	key := resolutionKey(resolution.ProductID, resolution.VariantID, resolution.BranchID)

	data, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set resolution in cache: %w", err)
	}
	return nil
}

// InvalidateProduct drops every cached resolution of the product, variants included
func (c *RedisResolutionCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	return c.deleteByPattern(ctx, resolutionKeyPrefix+productID.String()+":*")
}

// InvalidateBranch drops every cached resolution scoped to the branch
func (c *RedisResolutionCache) InvalidateBranch(ctx context.Context, branchID uuid.UUID) error {
	return c.deleteByPattern(ctx, resolutionKeyPrefix+"*:"+branchID.String())
}

// deleteByPattern removes matching keys with SCAN so Redis is never blocked
// by a KEYS command
func (c *RedisResolutionCache) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	var deletedCount int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("invalidated cached resolutions",
		zap.String("pattern", pattern),
		zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases the Redis client when this cache created it
func (c *RedisResolutionCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ channelapp.ResolutionCache = (*RedisResolutionCache)(nil)
