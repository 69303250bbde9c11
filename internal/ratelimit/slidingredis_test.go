package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisSlidingWindow(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()
	window := 2 * time.Second
	limiter := RedisSliding{Client: client, Prefix: "test:", Window: window, Max: 2}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		d, err := limiter.Allow(ctx, "key")
		require.NoError(t, err)
		require.True(t, d.Allowed, "request %d", i)
		require.Equal(t, 2-(i+1), d.Remaining)
	}

	d, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Equal(t, 0, d.Remaining)

	mr.FastForward(window)

	d, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.True(t, d.Allowed, "key should expire with the window")
}

func TestMemoryLimiter(t *testing.T) {
	limiter := NewMemory(time.Minute, 1)
	ctx := context.Background()

	d, err := limiter.Allow(ctx, "203.0.113.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	require.Equal(t, 1, d.Limit)

	d, err = limiter.Allow(ctx, "203.0.113.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)

	d, err = limiter.Allow(ctx, "203.0.113.2")
	require.NoError(t, err)
	require.True(t, d.Allowed, "keys are limited independently")
}
