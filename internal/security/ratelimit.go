package security

import (
	"context"
	"time"

	"github.com/xaenox/pathway-assist/internal/cache"
	"go.uber.org/zap"
)

const (
	// DefaultRateLimit is the number of requests allowed per session window.
	DefaultRateLimit = 20
	// DefaultRateWindow is the sliding-window length for rate limiting.
	DefaultRateWindow = 60 * time.Second
)

// RateLimiter counts requests per session in an expiring cache window.
// It fails open: if the cache is unavailable the request is allowed, since
// availability matters more than strict enforcement for this check.
type RateLimiter struct {
	cache  cache.Cache
	limit  int64
	window time.Duration
	logger *zap.Logger
}

func NewRateLimiter(c cache.Cache, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		cache:  c,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// Allow increments the session's counter and reports whether it is still
// within the limit. Concurrent increments on the same session may race by
// one; exact enforcement is not a goal.
func (l *RateLimiter) Allow(ctx context.Context, sessionID string) bool {
	count, err := l.cache.Incr(ctx, "ratelimit:"+sessionID, l.window)
	if err != nil {
		l.logger.Warn("rate limit cache unavailable, allowing request",
			zap.Error(err),
			zap.String("session_id", sessionID))
		return true
	}
	return count <= l.limit
}
