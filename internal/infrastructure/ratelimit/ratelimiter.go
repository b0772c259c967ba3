// Package ratelimit throttles API requests per client.
package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per sliding window. Zero disables a window.
type Limits struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
