package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the expiring key-value abstraction used for rate-limit counters
// and other short-lived per-session state. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it exists and has not expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the counter at key, setting the TTL when the
	// counter is created. Returns the new count.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	Close() error
}

// Config selects and configures a cache backend.
type Config struct {
	Backend  string // "memory" or "redis"
	Address  string
	Password string
	Database int
}

// New creates a cache for the configured backend.
func New(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, redis)", cfg.Backend)
	}
}
