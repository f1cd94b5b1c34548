// Package worker executes one generation task end to end.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/content"
)

// Task results reported to the Observer.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Config controls Worker behavior.
type Config struct {
	Model         string
	ContentType   string
	ArchivePrefix string
	Topic         string
}

// Observer receives task-level measurements; metrics.Metrics satisfies it.
type Observer interface {
	IncActive()
	DecActive()
	ObserveTask(result string, elapsed time.Duration)
	ObserveArchiveFailure()
}

// Worker runs generate → stamp → write → archive → notify for a single task. The store
// write is the source of truth: archive and notify failures are logged and do not fail the task.
type Worker struct {
	generator content.Generator
	store     content.Writer
	blobStore content.BlobStore
	publisher content.Publisher
	ids       content.IDGenerator
	clock     content.Clock
	observer  Observer
	cfg       Config
	logger    *zap.Logger
}

// New constructs a Worker. blobStore, publisher and observer are optional.
func New(
	generator content.Generator,
	store content.Writer,
	blobStore content.BlobStore,
	publisher content.Publisher,
	ids content.IDGenerator,
	clock content.Clock,
	observer Observer,
	cfg Config,
	logger *zap.Logger,
) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "application/json"
	}
	return &Worker{
		generator: generator,
		store:     store,
		blobStore: blobStore,
		publisher: publisher,
		ids:       ids,
		clock:     clock,
		observer:  observer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Process runs one task. A generation or write failure is returned; the caller counts it
// against the task.
func (w *Worker) Process(ctx context.Context, task content.Task) (content.Record, error) {
	start := time.Now()
	if w.observer != nil {
		w.observer.IncActive()
		defer w.observer.DecActive()
	}

	rec, err := w.process(ctx, task)
	if w.observer != nil {
		result := ResultSuccess
		if err != nil {
			result = ResultFailure
		}
		w.observer.ObserveTask(result, time.Since(start))
	}
	return rec, err
}

func (w *Worker) process(ctx context.Context, task content.Task) (content.Record, error) {
	key := task.Key()
	logger := w.logger.With(
		zap.String("county", key.CountyKey),
		zap.String("town", key.TownKey),
		zap.String("service", key.ServiceKey),
	)

	rec, err := w.generator.Generate(ctx, task)
	if err != nil {
		logger.Error("content generation failed", zap.Error(err))
		return content.Record{}, err
	}

	rec, err = w.stamp(rec, key)
	if err != nil {
		logger.Error("stamp record failed", zap.Error(err))
		return content.Record{}, err
	}

	if err := w.store.WriteContentRecord(ctx, rec); err != nil {
		logger.Error("write content record failed", zap.String("id", rec.ID), zap.Error(err))
		return content.Record{}, fmt.Errorf("write content record %s: %w", key, err)
	}
	logger.Debug("content record written", zap.String("id", rec.ID))

	uri := w.archive(ctx, rec, logger)
	w.notify(ctx, rec, uri, logger)
	return rec, nil
}

func (w *Worker) stamp(rec content.Record, key content.Key) (content.Record, error) {
	id, err := w.ids.NewID()
	if err != nil {
		return content.Record{}, fmt.Errorf("stamp record %s: %w", key, err)
	}
	rec.ID = id
	rec.Key = key
	rec.Model = w.cfg.Model
	rec.GeneratedAt = w.clock.Now().UTC()
	return rec, nil
}

// ArchivePath returns <prefix>/<county_key>/<town_key>/<service_key>.json.
func (w *Worker) ArchivePath(key content.Key) string {
	path := fmt.Sprintf("%s/%s/%s.json", key.CountyKey, key.TownKey, key.ServiceKey)
	if prefix := strings.Trim(w.cfg.ArchivePrefix, "/"); prefix != "" {
		return prefix + "/" + path
	}
	return path
}

func (w *Worker) archive(ctx context.Context, rec content.Record, logger *zap.Logger) string {
	if w.blobStore == nil {
		return ""
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		w.archiveFailed(rec, fmt.Errorf("marshal record: %w", err), logger)
		return ""
	}
	uri, err := w.blobStore.PutObject(ctx, w.ArchivePath(rec.Key), w.cfg.ContentType, bytes.NewReader(data))
	if err != nil {
		w.archiveFailed(rec, err, logger)
		return ""
	}
	return uri
}

func (w *Worker) archiveFailed(rec content.Record, err error, logger *zap.Logger) {
	if w.observer != nil {
		w.observer.ObserveArchiveFailure()
	}
	logger.Warn("archive content record failed", zap.String("id", rec.ID), zap.Error(err))
}

func (w *Worker) notify(ctx context.Context, rec content.Record, uri string, logger *zap.Logger) {
	if w.cfg.Topic == "" || w.publisher == nil {
		return
	}
	payload := map[string]any{
		"key":          rec.Key.String(),
		"county_key":   rec.Key.CountyKey,
		"town_key":     rec.Key.TownKey,
		"service_key":  rec.Key.ServiceKey,
		"id":           rec.ID,
		"generated_at": rec.GeneratedAt.Format(time.RFC3339),
	}
	if uri != "" {
		payload["archive_uri"] = uri
	}
	msgID, err := w.publisher.Publish(ctx, w.cfg.Topic, payload)
	if err != nil {
		logger.Warn("publish content notification failed", zap.String("id", rec.ID), zap.Error(err))
		return
	}
	logger.Debug("content notification published", zap.String("message_id", msgID))
}
