package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simmer-assistant/internal/common/logger"
)

func newTestLimiter(t *testing.T, requests int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, requests, window, logger.NewTestLogger(t)), mr
}

func TestLimiter_AllowsWithinQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
}

func TestLimiter_RejectsEleventhRequest(t *testing.T) {
	limiter, _ := newTestLimiter(t, 10, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_WindowExpiryResetsQuota(t *testing.T) {
	limiter, mr := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, _, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(61 * time.Second)

	allowed, _, err = limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_FailsOpenOnRedisError(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	allowed, _, err := limiter.Allow(context.Background(), "203.0.113.7")
	assert.Error(t, err)
	assert.True(t, allowed)
}
