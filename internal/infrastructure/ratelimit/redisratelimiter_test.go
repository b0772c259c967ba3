package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_PerMinute(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	limits := Limits{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "10.0.0.2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other clients are unaffected")
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	limits := Limits{RequestsPerMinute: 1}

	_, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)

	count, err := limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, limiter.Reset(ctx, "k"))
	allowed, err := limiter.Allow(ctx, "k", limits)
	require.NoError(t, err)
	assert.True(t, allowed)
}
