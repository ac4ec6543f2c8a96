package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xaenox/pathway-assist/internal/cache"
	"go.uber.org/zap"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (failingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("cache down")
}

func (failingCache) Close() error { return nil }

func TestRateLimiterCountsWithinWindow(t *testing.T) {
	limiter := NewRateLimiter(cache.NewMemoryCache(), 3, time.Minute, zap.NewNop())
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "s1"))
	assert.True(t, limiter.Allow(ctx, "s1"))
	assert.True(t, limiter.Allow(ctx, "s1"))
	assert.False(t, limiter.Allow(ctx, "s1"))
}

func TestRateLimiterIsolatesSessions(t *testing.T) {
	limiter := NewRateLimiter(cache.NewMemoryCache(), 1, time.Minute, zap.NewNop())
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "s1"))
	assert.False(t, limiter.Allow(ctx, "s1"))
	assert.True(t, limiter.Allow(ctx, "s2"))
}

func TestRateLimiterFailsOpen(t *testing.T) {
	limiter := NewRateLimiter(failingCache{}, 1, time.Minute, zap.NewNop())
	ctx := context.Background()

	// Cache errors must never block a request.
	assert.True(t, limiter.Allow(ctx, "s1"))
	assert.True(t, limiter.Allow(ctx, "s1"))
}
