package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/catalog"
	"github.com/JakeFAU/areapages/internal/content"
	"github.com/JakeFAU/areapages/internal/dispatcher"
)

// ErrExistingKeys wraps a failure to read the existing-key snapshot.
var ErrExistingKeys = errors.New("load existing content keys")

// DefaultConcurrency is the in-flight bound used when Config leaves it unset.
const DefaultConcurrency = 5

// Processor runs one task to completion; worker.Worker satisfies it.
type Processor interface {
	Process(ctx context.Context, task content.Task) (content.Record, error)
}

// Config controls one pipeline pass.
type Config struct {
	Concurrency int
	// AllowFullRun proceeds with an empty existing-key snapshot when the store cannot be
	// read. Without it the run fails closed.
	AllowFullRun bool
	// Limit caps how many outstanding tasks are attempted; 0 means all.
	Limit int
}

// Runner wires the enumerator, the dispatcher and a Processor.
type Runner struct {
	keys      content.KeyLister
	processor Processor
	cfg       Config
	logger    *zap.Logger
}

// New constructs a Runner.
func New(keys content.KeyLister, processor Processor, cfg Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Runner{keys: keys, processor: processor, cfg: cfg, logger: logger}
}

// Run performs one resumable pass: snapshot existing keys, enumerate outstanding tasks, run
// them through the bounded pool and tally the results. Task failures are reported in the
// Summary; only setup failures are returned as errors.
func (r *Runner) Run(ctx context.Context, locations []content.Location, services []content.Service) (Summary, error) {
	summary := Summary{TotalPossible: len(locations) * len(services)}
	if len(locations) == 0 {
		return summary, catalog.ErrNoLocations
	}

	existing, err := r.keys.ListExistingKeys(ctx)
	if err != nil {
		if !r.cfg.AllowFullRun {
			return summary, fmt.Errorf("%w: %w", ErrExistingKeys, err)
		}
		r.logger.Warn("existing keys unavailable, running every combination", zap.Error(err))
		existing = nil
	}

	tasks := Enumerate(locations, services, existing)
	summary.Outstanding = len(tasks)
	summary.Existing = summary.TotalPossible - len(tasks)
	if r.cfg.Limit > 0 && len(tasks) > r.cfg.Limit {
		r.logger.Info("limiting run", zap.Int("outstanding", len(tasks)), zap.Int("limit", r.cfg.Limit))
		tasks = tasks[:r.cfg.Limit]
	}
	summary.Attempted = len(tasks)

	r.logger.Info("pipeline starting",
		zap.Int("total_possible", summary.TotalPossible),
		zap.Int("existing", summary.Existing),
		zap.Int("attempting", len(tasks)),
		zap.Int("concurrency", r.cfg.Concurrency),
	)

	start := time.Now()
	results := dispatcher.Run(ctx, tasks, r.cfg.Concurrency, r.processor.Process, dispatcher.Hooks{
		OnDone: func(i, completed, total int, err error) {
			key := tasks[i].Key()
			fields := []zap.Field{
				zap.Int("completed", completed),
				zap.Int("total", total),
				zap.String("county", key.CountyKey),
				zap.String("town", key.TownKey),
				zap.String("service", key.ServiceKey),
			}
			if err != nil {
				r.logger.Warn("task failed", append(fields, zap.Error(err))...)
				return
			}
			r.logger.Info("task succeeded", fields...)
		},
	})
	summary.Elapsed = time.Since(start)

	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{Key: tasks[res.Index].Key(), Err: res.Err})
			continue
		}
		summary.Succeeded++
	}

	r.logger.Info("pipeline finished",
		zap.Int("attempted", summary.Attempted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.Elapsed),
		zap.String("coverage", summary.Coverage()),
	)
	return summary, nil
}
