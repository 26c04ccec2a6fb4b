// Package cache stores extraction results keyed by page URL so repeat
// scrapes of the same product within the TTL skip the outbound fetch.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/closetly/product-scraper/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	GetProduct(ctx context.Context, key string) (*models.ProductData, error)
	SetProduct(ctx context.Context, key string, data *models.ProductData, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
