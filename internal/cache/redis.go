package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/closetly/product-scraper/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scrape:"

// RedisCache stores extraction records as JSON with a redis TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) GetProduct(ctx context.Context, key string) (*models.ProductData, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var data models.ProductData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode cached product: %w", err)
	}
	return &data, nil
}

func (c *RedisCache) SetProduct(ctx context.Context, key string, data *models.ProductData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
