package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiterSpacesSameHost(t *testing.T) {
	limiter := NewHostLimiter(50*time.Millisecond, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "shop.example"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "shop.example"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHostLimiterIndependentHosts(t *testing.T) {
	limiter := NewHostLimiter(time.Second, time.Second)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "a.example"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "b.example"))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestHostLimiterHonorsContext(t *testing.T) {
	limiter := NewHostLimiter(time.Minute, time.Minute)

	require.NoError(t, limiter.Wait(context.Background(), "shop.example"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "shop.example")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
