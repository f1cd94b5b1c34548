// Package generator turns one (location, service) task into a validated content record by
// calling a generative text API.
//
// Each attempt moves through Building → Calling → Parsing → Validating. Rate limits,
// transport failures, non-success statuses, unparseable output and incomplete records are
// all retried with a growing delay until the attempt budget runs out; the task then fails
// with a *TaskError that wraps the last cause.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/content"
)

// Request is one call to a generative backend.
type Request struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Completer issues a single request and returns the raw text of the response.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Pacer gates outbound calls; ratelimit.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Observer records attempt outcomes; metrics.Metrics satisfies it.
type Observer interface {
	ObserveAttempt(outcome string)
}

// Config controls the client's model settings and retry budget.
type Config struct {
	Model          string
	MaxTokens      int
	Temperature    float64
	MaxAttempts    int
	BaseDelay      time.Duration
	RequestTimeout time.Duration
}

const (
	defaultMaxAttempts    = 3
	defaultBaseDelay      = 2 * time.Second
	defaultRequestTimeout = 2 * time.Minute
	defaultMaxTokens      = 4096
)

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPacer gates every call on p.
func WithPacer(p Pacer) Option {
	return func(c *Client) { c.pacer = p }
}

// WithObserver reports every attempt outcome to o.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithSleep replaces the backoff sleep (tests).
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// Client implements content.Generator.
type Client struct {
	backend  Completer
	cfg      Config
	logger   *zap.Logger
	pacer    Pacer
	observer Observer
	sleep    func(ctx context.Context, d time.Duration) error
}

// New builds a Client over backend.
func New(backend Completer, cfg Config, opts ...Option) (*Client, error) {
	if backend == nil {
		return nil, errors.New("generator backend is required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay < 0 {
		return nil, errors.New("base delay must be >= 0")
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	c := &Client{
		backend: backend,
		cfg:     cfg,
		logger:  zap.NewNop(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate runs the attempt loop for one task.
func (c *Client) Generate(ctx context.Context, task content.Task) (content.Record, error) {
	key := task.Key()
	prompt := BuildPrompt(task)
	logger := c.logger.With(
		zap.String("county", key.CountyKey),
		zap.String("town", key.TownKey),
		zap.String("service", key.ServiceKey),
	)

	var (
		lastErr  error
		attempts int
	)
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		attempts = attempt
		rec, err := c.attempt(ctx, prompt, logger)
		outcome := Classify(err)
		c.observe(outcome)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		logger.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.cfg.MaxAttempts),
			zap.String("outcome", string(outcome)),
			zap.Error(err),
		)
		if attempt == c.cfg.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.Backoff(err, attempt)); err != nil {
			break
		}
	}
	return content.Record{}, &TaskError{Key: key, Attempts: attempts, Err: lastErr}
}

// Backoff returns the wait after a failed attempt: baseDelay × attempt × 2 after a rate
// limit, baseDelay × attempt otherwise.
func (c *Client) Backoff(err error, attempt int) time.Duration {
	d := c.cfg.BaseDelay * time.Duration(attempt)
	if errors.Is(err, ErrRateLimited) {
		d *= 2
	}
	return d
}

func (c *Client) attempt(ctx context.Context, prompt Prompt, logger *zap.Logger) (content.Record, error) {
	if c.pacer != nil {
		if err := c.pacer.Wait(ctx); err != nil {
			return content.Record{}, fmt.Errorf("pace request: %w", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()
	raw, err := c.backend.Complete(callCtx, Request{
		Model:       c.cfg.Model,
		System:      prompt.System,
		Prompt:      prompt.User,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return content.Record{}, fmt.Errorf("call generative api: %w", err)
	}

	rec, err := ParseRecord(raw)
	if err != nil {
		return content.Record{}, err
	}
	content.Repair(&rec)
	if err := content.Validate(rec); err != nil {
		return content.Record{}, err
	}
	if len(rec.FAQs) < content.TargetFAQs {
		logger.Warn("generated fewer FAQs than requested",
			zap.Int("faqs", len(rec.FAQs)),
			zap.Int("want", content.TargetFAQs),
		)
	}
	return rec, nil
}

func (c *Client) observe(o Outcome) {
	if c.observer != nil {
		c.observer.ObserveAttempt(string(o))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("backoff interrupted: %w", ctx.Err())
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}
