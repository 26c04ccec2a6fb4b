package cache

import (
	"context"
	"testing"
	"time"

	"github.com/closetly/product-scraper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	name := "Blue Shirt"
	price := 45.00
	data := &models.ProductData{
		Name:     &name,
		Price:    &price,
		Currency: "EUR",
		Category: models.CategoryShirts,
	}

	require.NoError(t, c.SetProduct(ctx, "https://shop.example/p/1", data, time.Minute))

	got, err := c.GetProduct(ctx, "https://shop.example/p/1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.GetProduct(context.Background(), "https://shop.example/p/unknown")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	data := &models.ProductData{Currency: "USD", Category: models.CategoryOther}
	require.NoError(t, c.SetProduct(ctx, "key", data, time.Millisecond))

	time.Sleep(10 * time.Millisecond)

	_, err := c.GetProduct(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	data := &models.ProductData{Currency: "USD", Category: models.CategoryOther}
	require.NoError(t, c.SetProduct(ctx, "key", data, time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	_, err := c.GetProduct(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
