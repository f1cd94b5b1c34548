// Package metrics exposes Prometheus collectors for the content pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline collectors. A nil *Metrics ignores every observation.
type Metrics struct {
	registry *prometheus.Registry

	tasksTotal           *prometheus.CounterVec
	attemptsTotal        *prometheus.CounterVec
	activeWorkers        prometheus.Gauge
	taskDurationSeconds  *prometheus.HistogramVec
	archiveFailuresTotal prometheus.Counter
	pacingDelaySeconds   prometheus.Histogram
	httpRequestsTotal    *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		tasksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "areapages_tasks_total",
				Help: "Generation tasks finished, labeled by result.",
			},
			[]string{"result"},
		),
		attemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "areapages_generation_attempts_total",
				Help: "Generative API attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		activeWorkers: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "areapages_active_workers",
				Help: "Tasks currently in flight.",
			},
		),
		taskDurationSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "areapages_task_duration_seconds",
				Help:    "Wall time per task including retries, labeled by result.",
				Buckets: []float64{1, 5, 10, 20, 30, 60, 120, 300},
			},
			[]string{"result"},
		),
		archiveFailuresTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "areapages_archive_failures_total",
				Help: "Records written to the store but not archived.",
			},
		),
		pacingDelaySeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "areapages_pacing_delay_seconds",
				Help:    "Time spent waiting on the client-side request pacer.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "areapages_http_requests_total",
				Help: "Requests served by the metrics endpoint, labeled by route and code.",
			},
			[]string{"route", "code"},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAttempt counts one generative API attempt.
func (m *Metrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}
	m.attemptsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTask counts a finished task and its duration.
func (m *Metrics) ObserveTask(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.tasksTotal.WithLabelValues(result).Inc()
	m.taskDurationSeconds.WithLabelValues(result).Observe(elapsed.Seconds())
}

// IncActive increments the in-flight gauge.
func (m *Metrics) IncActive() {
	if m == nil {
		return
	}
	m.activeWorkers.Inc()
}

// DecActive decrements the in-flight gauge.
func (m *Metrics) DecActive() {
	if m == nil {
		return
	}
	m.activeWorkers.Dec()
}

// ObserveArchiveFailure counts a failed archive upload.
func (m *Metrics) ObserveArchiveFailure() {
	if m == nil {
		return
	}
	m.archiveFailuresTotal.Inc()
}

// ObservePacingDelay records a pacer wait.
func (m *Metrics) ObservePacingDelay(d time.Duration) {
	if m == nil {
		return
	}
	m.pacingDelaySeconds.Observe(d.Seconds())
}
