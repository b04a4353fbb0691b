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
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	policy := Policy{Limit: 5, Window: time.Minute}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "test-key", policy)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "test-key", policy)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_DifferentKeys(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	policy := Policy{Limit: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "test-key-1", policy)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "test-key-1", policy)
	require.NoError(t, err)
	assert.False(t, allowed, "key1 should be rate limited")

	allowed, err = limiter.Allow(ctx, "test-key-2", policy)
	require.NoError(t, err)
	assert.True(t, allowed, "key2 should not be affected")
}

func TestRedisRateLimiter_CountAndReset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	policy := Policy{Limit: 2, Window: time.Minute}

	count, err := limiter.Count(ctx, "test-key-reset", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "test-key-reset", policy)
		require.NoError(t, err)
	}

	count, err = limiter.Count(ctx, "test-key-reset", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, limiter.Reset(ctx, "test-key-reset"))

	allowed, err := limiter.Allow(ctx, "test-key-reset", policy)
	require.NoError(t, err)
	assert.True(t, allowed, "should be allowed after reset")
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	now := time.Now()
	limiter.now = func() time.Time { return now }
	policy := Policy{Limit: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "test-key-sliding", policy)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "test-key-sliding", policy)
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, err = limiter.Allow(ctx, "test-key-sliding", policy)
	require.NoError(t, err)
	assert.True(t, allowed, "old requests should slide out of the window")
}

func TestMemoryRateLimiter_SlidingWindow(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	policy := Policy{Limit: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k", policy)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "k", policy)
	assert.False(t, allowed)

	count, err := limiter.Count(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	now = now.Add(2 * time.Minute)
	allowed, _ = limiter.Allow(ctx, "k", policy)
	assert.True(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "k"))
	count, _ = limiter.Count(ctx, "k", time.Minute)
	assert.Equal(t, int64(0), count)
}

func TestPolicy_DisabledAlwaysAllows(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(context.Background(), "k", Policy{})
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
