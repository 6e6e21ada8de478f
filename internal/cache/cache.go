// Package cache provides response caching for calculation results. Engine
// outputs are deterministic for identical inputs, so caching is purely
// additive; the engines themselves never see the cache.
package cache

import (
	"context"
	"time"
)

// Repository is the cache contract used by the HTTP server.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
