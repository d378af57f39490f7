package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	l := New(Config{})
	require.NotNil(t, l)
	assert.True(t, l.Allow(), "fresh limiter should allow a request")
}

func TestLimiter_Backoff(t *testing.T) {
	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})

	l.RecordRateLimitError(60)
	assert.False(t, l.Allow(), "backoff period should block requests")
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := New(Config{RequestsPerSecond: 100, BurstSize: 10})
	l.RecordRateLimitError(60)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_Wait(t *testing.T) {
	l := New(Config{RequestsPerSecond: 1000, BurstSize: 5})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(ctx))
	}
}
