package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when the requested key is not cached
var ErrCacheMiss = errors.New("cache miss")

// DashboardCache caches seller-scoped dashboard read models.
// Implementations must be safe for concurrent use.
type DashboardCache interface {
	// Get unmarshals the cached value for the key into dest.
	// Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, sellerID uuid.UUID, key string, dest interface{}) error
	// Set stores the value under the key with the cache's TTL.
	Set(ctx context.Context, sellerID uuid.UUID, key string, value interface{}) error
	// InvalidateSeller drops every cached entry belonging to the seller.
	// Called after any write to debtors, products or payments.
	InvalidateSeller(ctx context.Context, sellerID uuid.UUID) error
}

// RedisDashboardCache implements DashboardCache on Redis.
// All cache failures are logged and reported to the caller, which is
// expected to fall through to the database.
type RedisDashboardCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisDashboardCache creates a Redis-backed dashboard cache
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisDashboardCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDashboardCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "dashboard:",
		logger:    logger,
	}
}

func (c *RedisDashboardCache) sellerKey(sellerID uuid.UUID, key string) string {
	return fmt.Sprintf("%s%s:%s", c.keyPrefix, sellerID, key)
}

// Get unmarshals the cached value for the key into dest
func (c *RedisDashboardCache) Get(ctx context.Context, sellerID uuid.UUID, key string, dest interface{}) error {
	payload, err := c.client.Get(ctx, c.sellerKey(sellerID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		c.logger.Warn("dashboard cache read failed",
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return json.Unmarshal(payload, dest)
}

// Set stores the value under the key with the configured TTL
func (c *RedisDashboardCache) Set(ctx context.Context, sellerID uuid.UUID, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.sellerKey(sellerID, key), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("dashboard cache write failed",
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return nil
}

// InvalidateSeller drops every cached dashboard entry for the seller
func (c *RedisDashboardCache) InvalidateSeller(ctx context.Context, sellerID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", c.keyPrefix, sellerID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.logger.Warn("dashboard cache invalidation failed",
				zap.String("seller_id", sellerID.String()),
				zap.Error(err))
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Ensure RedisDashboardCache implements DashboardCache
var _ DashboardCache = (*RedisDashboardCache)(nil)
