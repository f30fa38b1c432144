// Package rediscache implements the view cache port on Redis. The query side
// reads through it; the command side only invalidates. Values are opaque
// bytes owned by the query handlers.
package rediscache

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisViewCache implements ports.ViewCache on a Redis client.
type RedisViewCache struct {
	client *redis.Client
}

// NewRedisViewCache creates a view cache backed by the given client.
func NewRedisViewCache(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{client: client}
}

// Get returns the cached value, or ports.ErrCacheMiss if the key is absent.
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key with the given time-to-live.
func (c *RedisViewCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Invalidate removes the keys. Missing keys are not an error.
func (c *RedisViewCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
