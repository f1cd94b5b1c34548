// Package ratelimit paces outbound generative API calls with a token bucket.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Config holds pacing settings. A non-positive RPS disables pacing.
type Config struct {
	RPS   float64
	Burst int
	// OnDelay, when set, receives every non-trivial wait.
	OnDelay func(time.Duration)
}

// Limiter gates calls across all workers. A nil *Limiter never waits.
type Limiter struct {
	limiter *rate.Limiter
	onDelay func(time.Duration)
}

// New creates a Limiter, or returns nil when pacing is disabled.
func New(cfg Config) *Limiter {
	if cfg.RPS <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), burst),
		onDelay: cfg.OnDelay,
	}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	if d := time.Since(start); d > time.Millisecond && l.onDelay != nil {
		l.onDelay(d)
	}
	return nil
}
