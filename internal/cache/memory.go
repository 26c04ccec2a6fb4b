package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/closetly/product-scraper/internal/models"
)

type memoryItem struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryCache is a thread-safe in-process cache with TTL support, used
// in tests and when no redis address is configured. Values round-trip
// through JSON so both cache backends behave identically.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryItem
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryItem),
	}
}

func (c *MemoryCache) GetProduct(ctx context.Context, key string) (*models.ProductData, error) {
	c.mu.RLock()
	item, exists := c.data[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		return nil, ErrCacheMiss
	}

	var data models.ProductData
	if err := json.Unmarshal(item.raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *MemoryCache) SetProduct(ctx context.Context, key string, data *models.ProductData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryItem{
		raw:       raw,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
