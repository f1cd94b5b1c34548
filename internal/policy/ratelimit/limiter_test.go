package ratelimit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDisabled(t *testing.T) {
	t.Parallel()

	l := New(Config{})
	require.Nil(t, l)
	// A nil limiter is usable and never blocks.
	require.NoError(t, l.Wait(context.Background()))
}

func TestWaitPacesCalls(t *testing.T) {
	t.Parallel()

	var delays atomic.Int64
	l := New(Config{RPS: 10, Burst: 1, OnDelay: func(time.Duration) { delays.Add(1) }})
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx))

	// 10 RPS with burst 1: the next token arrives ~100ms later.
	start := time.Now()
	require.NoError(t, l.Wait(ctx))
	require.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	require.EqualValues(t, 1, delays.Load())
}

func TestWaitHonoursContext(t *testing.T) {
	t.Parallel()

	l := New(Config{RPS: 0.1, Burst: 1})
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Wait(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate limit wait")
}
