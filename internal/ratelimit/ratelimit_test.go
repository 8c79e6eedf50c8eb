package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowWithinCapacity(t *testing.T) {
	limiter := New(3, 1.0)

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow(), "bucket should be empty after burst")
}

func TestLimiter_RefillsOverTime(t *testing.T) {
	limiter := New(1, 100.0) // 100 tokens/sec refills quickly

	require.True(t, limiter.Allow())
	require.False(t, limiter.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow(), "token should refill after waiting")
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := New(1, 0.001) // effectively never refills

	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_NilWaitsForNothing(t *testing.T) {
	var limiter *Limiter
	assert.NoError(t, limiter.Wait(context.Background()))
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := New(5, 0.001)

	require.True(t, limiter.Allow())
	require.True(t, limiter.Allow())
	assert.Equal(t, 3, limiter.Remaining())
}
