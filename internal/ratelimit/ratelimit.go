// Package ratelimit spaces out outbound fetches per target host so the
// scraper stays polite when several users submit URLs from the same
// store.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// HostLimiter enforces a minimum delay between requests to the same
// host, with jitter so request timing does not look mechanical.
type HostLimiter struct {
	minDelay time.Duration
	maxDelay time.Duration
	mu       sync.Mutex
	last     map[string]time.Time
}

func NewHostLimiter(minDelay, maxDelay time.Duration) *HostLimiter {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &HostLimiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		last:     make(map[string]time.Time),
	}
}

// Wait blocks until the host's delay window has passed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	elapsed := time.Since(l.last[host])
	delay := l.calculateDelay()

	var waitTime time.Duration
	if elapsed < delay {
		waitTime = delay - elapsed
	}
	l.last[host] = time.Now().Add(waitTime)
	l.mu.Unlock()

	if waitTime <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitTime):
		return nil
	}
}

func (l *HostLimiter) calculateDelay() time.Duration {
	if l.minDelay == l.maxDelay {
		return l.minDelay
	}
	jitter := time.Duration(rand.Int63n(int64(l.maxDelay - l.minDelay)))
	return l.minDelay + jitter
}
