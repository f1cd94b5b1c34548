// Package app builds the long-lived services of one pipeline run from a Config value and
// holds them until Close.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/catalog"
	"github.com/JakeFAU/areapages/internal/clock/system"
	"github.com/JakeFAU/areapages/internal/config"
	"github.com/JakeFAU/areapages/internal/content"
	"github.com/JakeFAU/areapages/internal/generator"
	"github.com/JakeFAU/areapages/internal/id/uuid"
	"github.com/JakeFAU/areapages/internal/metrics"
	"github.com/JakeFAU/areapages/internal/pipeline"
	"github.com/JakeFAU/areapages/internal/policy/ratelimit"
	pubmemory "github.com/JakeFAU/areapages/internal/publisher/memory"
	"github.com/JakeFAU/areapages/internal/publisher/pubsub"
	"github.com/JakeFAU/areapages/internal/storage/gcs"
	"github.com/JakeFAU/areapages/internal/storage/local"
	"github.com/JakeFAU/areapages/internal/storage/memory"
	"github.com/JakeFAU/areapages/internal/storage/postgres"
	"github.com/JakeFAU/areapages/internal/storage/sqlite"
	"github.com/JakeFAU/areapages/internal/worker"
)

// App is the dependency container for one run.
type App struct {
	cfg       config.Config
	logger    *zap.Logger
	store     content.Store
	blobStore content.BlobStore
	publisher content.Publisher
	metrics   *metrics.Metrics
	runner    *pipeline.Runner

	closers     []func() error
	stopMetrics context.CancelFunc
	metricsDone chan error
}

// New wires every service described by cfg. It fails fast: any service that cannot be
// built is an error and everything built so far is closed again.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (_ *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logger, metrics: metrics.New(nil)}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	logger.Info("initializing services", zap.Any("config", cfg.Redacted()))

	if a.store, err = a.openStore(ctx); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.store.Close)

	if a.blobStore, err = a.openArchive(ctx); err != nil {
		return nil, err
	}
	if a.publisher, err = a.openPublisher(ctx); err != nil {
		return nil, err
	}

	client, err := a.newGenerator(ctx)
	if err != nil {
		return nil, err
	}

	w := worker.New(
		client,
		a.store,
		a.blobStore,
		a.publisher,
		uuid.New(),
		system.New(),
		a.metrics,
		worker.Config{
			Model:         cfg.Generator.Model,
			ArchivePrefix: cfg.Archive.Prefix,
			Topic:         cfg.Notify.Topic,
		},
		logger.Named("worker"),
	)
	a.runner = pipeline.New(a.store, w, pipeline.Config{
		Concurrency:  cfg.Pipeline.Concurrency,
		AllowFullRun: cfg.Pipeline.AllowFullRun,
		Limit:        cfg.Pipeline.Limit,
	}, logger.Named("pipeline"))

	if err := a.startMetrics(); err != nil {
		return nil, err
	}
	logger.Info("services initialized")
	return a, nil
}

func (a *App) openStore(ctx context.Context) (content.Store, error) {
	cfg := a.cfg.Store
	switch cfg.Provider {
	case config.StorePostgres:
		store, err := postgres.NewContentStore(ctx, postgres.Config{
			DSN:      cfg.DSN,
			Table:    cfg.Table,
			MaxConns: int32(cfg.MaxConns), //nolint:gosec // small, validated
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		a.logger.Info("using postgres store", zap.String("table", cfg.Table))
		return store, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.logger.Info("using sqlite store", zap.String("path", cfg.DSN))
		return store, nil
	case config.StoreMemory:
		a.logger.Warn("using in-memory store; records are discarded on exit")
		return memory.NewContentStore(), nil
	default:
		return nil, fmt.Errorf("unknown store provider: %s", cfg.Provider)
	}
}

func (a *App) openArchive(ctx context.Context) (content.BlobStore, error) {
	cfg := a.cfg.Archive
	switch cfg.Provider {
	case config.ArchiveNone, "":
		return nil, nil
	case config.ArchiveLocal:
		store, err := local.New(local.Config{BaseDir: cfg.BaseDir})
		if err != nil {
			return nil, fmt.Errorf("open local archive: %w", err)
		}
		a.logger.Info("archiving records to disk", zap.String("base_dir", cfg.BaseDir))
		return store, nil
	case config.ArchiveMemory:
		a.logger.Info("archiving records in memory")
		return memory.NewBlobStore(), nil
	case config.ArchiveGCS:
		store, err := gcs.Open(ctx, gcs.Config{Bucket: cfg.Bucket})
		if err != nil {
			return nil, fmt.Errorf("open gcs archive: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		a.logger.Info("archiving records to gcs", zap.String("bucket", cfg.Bucket))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", cfg.Provider)
	}
}

func (a *App) openPublisher(ctx context.Context) (content.Publisher, error) {
	cfg := a.cfg.Notify
	switch cfg.Provider {
	case config.NotifyNone, "":
		return nil, nil
	case config.NotifyMemory:
		a.logger.Info("recording notifications in memory", zap.String("topic", cfg.Topic))
		return pubmemory.New(), nil
	case config.NotifyPubSub:
		pub, err := pubsub.Open(ctx, cfg.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("open pubsub publisher: %w", err)
		}
		a.closers = append(a.closers, pub.Close)
		a.logger.Info("publishing notifications", zap.String("topic", cfg.Topic))
		return pub, nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.Provider)
	}
}

func (a *App) newGenerator(ctx context.Context) (*generator.Client, error) {
	cfg := a.cfg.Generator
	var backend generator.Completer
	switch cfg.Provider {
	case config.ProviderAnthropic:
		b, err := generator.NewAnthropicBackend(generator.AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: a.cfg.RequestTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("create anthropic backend: %w", err)
		}
		backend = b
	case config.ProviderGemini:
		b, err := generator.NewGeminiBackend(ctx, generator.GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Timeout: a.cfg.RequestTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini backend: %w", err)
		}
		backend = b
	default:
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}

	opts := []generator.Option{
		generator.WithLogger(a.logger.Named("generator")),
		generator.WithObserver(a.metrics),
	}
	if limiter := ratelimit.New(ratelimit.Config{
		RPS:     cfg.RequestsPerSecond,
		OnDelay: a.metrics.ObservePacingDelay,
	}); limiter != nil {
		opts = append(opts, generator.WithPacer(limiter))
	}

	client, err := generator.New(backend, generator.Config{
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
		Temperature:    cfg.Temperature,
		MaxAttempts:    cfg.MaxAttempts,
		BaseDelay:      a.cfg.BaseDelay(),
		RequestTimeout: a.cfg.RequestTimeout(),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}
	return client, nil
}

func (a *App) startMetrics() error {
	addr := a.cfg.Metrics.ListenAddr
	if addr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen for metrics on %s: %w", addr, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopMetrics = cancel
	a.metricsDone = make(chan error, 1)
	go func() {
		a.metricsDone <- a.metrics.Serve(ctx, ln)
	}()
	a.logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return nil
}

// Run performs one pipeline pass over locations and the static service catalog.
func (a *App) Run(ctx context.Context, locations []content.Location) (pipeline.Summary, error) {
	summary, err := a.runner.Run(ctx, locations, catalog.Services())
	if err != nil {
		return summary, fmt.Errorf("run pipeline: %w", err)
	}
	return summary, nil
}

// Store returns the persistence gateway.
func (a *App) Store() content.Store {
	return a.store
}

// Archive returns the record archive, or nil when archiving is disabled.
func (a *App) Archive() content.BlobStore {
	return a.blobStore
}

// Publisher returns the notification publisher, or nil when notifications are disabled.
func (a *App) Publisher() content.Publisher {
	return a.publisher
}

// Metrics returns the collectors.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Close shuts services down in reverse order of creation. It is safe to call more than once.
func (a *App) Close() {
	if a.stopMetrics != nil {
		a.stopMetrics()
		if err := <-a.metricsDone; err != nil {
			a.logger.Warn("metrics server shutdown", zap.Error(err))
		}
		a.stopMetrics = nil
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("error closing services", zap.Error(err))
	}
}
