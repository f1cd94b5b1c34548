package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/JakeFAU/areapages/internal/app"
	"github.com/JakeFAU/areapages/internal/config"
	"github.com/JakeFAU/areapages/internal/content"
	pubmemory "github.com/JakeFAU/areapages/internal/publisher/memory"
	"github.com/JakeFAU/areapages/internal/storage/memory"
)

const payload = `{
  "narrative": "Guildford is a busy Surrey market for small schemes.",
  "faqs": [
    {"question": "How fast?", "answer": "Two to three weeks."},
    {"question": "How much?", "answer": "Up to 70% LTGDV."},
    {"question": "First-time developers?", "answer": "Yes, with an experienced team."},
    {"question": "Planning needed?", "answer": "Usually implemented planning."},
    {"question": "Fees?", "answer": "Arrangement fee around 2%."}
  ],
  "deal_example": {
    "title": "Four townhouses near the station",
    "description": "Ground-up build funded at 65% LTGDV.",
    "loan_amount": "1250000",
    "property_value": "2400000",
    "leverage": "65% LTGDV",
    "product": "Development Finance"
  },
  "rates": {
    "rate_from": "0.55%",
    "rate_to": "1.1%",
    "max_leverage": "70% LTGDV",
    "term": "6-24 months",
    "fee": "2%"
  },
  "seo_title": "Development Finance Guildford",
  "seo_description": "Development finance for Guildford schemes of every size."
}`

var guildford = content.Location{
	CountyKey:  "surrey",
	County:     "Surrey",
	TownKey:    "guildford",
	Town:       "Guildford",
	Region:     content.RegionSouthEast,
	Population: 77057,
}

// fakeAnthropic answers every messages call with payload, or with status when it is non-zero.
func fakeAnthropic(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/messages", r.URL.Path)
		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("unavailable"))
			return
		}
		body, err := json.Marshal(map[string]any{
			"content":     []map[string]string{{"type": "text", "text": payload}},
			"stop_reason": "end_turn",
		})
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func baseConfig(baseURL string) config.Config {
	return config.Config{
		Generator: config.GeneratorConfig{
			Provider:       config.ProviderAnthropic,
			APIKey:         "sk-test",
			BaseURL:        baseURL,
			Model:          "claude-test",
			MaxTokens:      1024,
			Temperature:    0.7,
			TimeoutSeconds: 5,
			MaxAttempts:    1,
		},
		Pipeline: config.PipelineConfig{Concurrency: 3, LocationsFile: "unused.yaml"},
		Store:    config.StoreConfig{Provider: config.StoreMemory, Table: "location_content"},
		Archive:  config.ArchiveConfig{Provider: config.ArchiveNone},
		Notify:   config.NotifyConfig{Provider: config.NotifyNone},
		Logging:  config.LoggingConfig{Level: "debug"},
	}
}

func TestAppRunsEndToEnd(t *testing.T) {
	t.Parallel()

	srv, calls := fakeAnthropic(t, 0)
	archiveDir := t.TempDir()
	cfg := baseConfig(srv.URL)
	cfg.Archive = config.ArchiveConfig{Provider: config.ArchiveLocal, BaseDir: archiveDir, Prefix: "content"}
	cfg.Metrics.ListenAddr = "127.0.0.1:0"
	require.NoError(t, cfg.Validate())

	a, err := app.New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	summary, err := a.Run(context.Background(), []content.Location{guildford})
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Attempted)
	assert.Equal(t, 6, summary.Succeeded)
	assert.Equal(t, "6/6 coverage", summary.Coverage())
	assert.Equal(t, 0, summary.ExitCode())
	assert.EqualValues(t, 6, calls.Load())

	store, ok := a.Store().(*memory.ContentStore)
	require.True(t, ok)
	assert.Equal(t, 6, store.Len())
	rec, ok := store.Get(content.Key{CountyKey: "surrey", TownKey: "guildford", ServiceKey: "bridging-loans"})
	require.True(t, ok)
	assert.Equal(t, "claude-test", rec.Model)
	assert.NotEmpty(t, rec.ID)

	_, err = os.Stat(filepath.Join(archiveDir, "content", "surrey", "guildford", "development-finance.json"))
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(a.Metrics().Registry(), "areapages_tasks_total")
	require.NoError(t, err)
	assert.Positive(t, n)

	again, err := a.Run(context.Background(), []content.Location{guildford})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Attempted)
	assert.Equal(t, 6, again.Existing)
	assert.EqualValues(t, 6, calls.Load(), "resume issues no new calls")
}

func TestAppDryRunAdapters(t *testing.T) {
	t.Parallel()

	srv, _ := fakeAnthropic(t, 0)
	cfg := baseConfig(srv.URL)
	cfg.Archive = config.ArchiveConfig{Provider: config.ArchiveMemory, Prefix: "pages"}
	cfg.Notify = config.NotifyConfig{Provider: config.NotifyMemory, Topic: "content-generated"}
	require.NoError(t, cfg.Validate())

	a, err := app.New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	summary, err := a.Run(context.Background(), []content.Location{guildford})
	require.NoError(t, err)
	require.Equal(t, 6, summary.Succeeded)

	archive, ok := a.Archive().(*memory.BlobStore)
	require.True(t, ok)
	body, ok := archive.Object("pages/surrey/guildford/auction-finance.json")
	require.True(t, ok)
	var rec content.Record
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, "auction-finance", rec.Key.ServiceKey)

	pub, ok := a.Publisher().(*pubmemory.Publisher)
	require.True(t, ok)
	msgs := pub.Messages("content-generated")
	require.Len(t, msgs, 6)
	var first map[string]string
	require.NoError(t, json.Unmarshal(msgs[0].Data, &first))
	assert.Contains(t, first["archive_uri"], "memory://pages/surrey/guildford/")
}

func TestAppSQLiteStoreReportsFailures(t *testing.T) {
	t.Parallel()

	srv, calls := fakeAnthropic(t, http.StatusServiceUnavailable)
	cfg := baseConfig(srv.URL)
	cfg.Store = config.StoreConfig{
		Provider: config.StoreSQLite,
		DSN:      filepath.Join(t.TempDir(), "content.db"),
		Table:    "location_content",
	}

	a, err := app.New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	summary, err := a.Run(context.Background(), []content.Location{guildford})
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Failed)
	assert.Equal(t, 1, summary.ExitCode())
	assert.Equal(t, "0/6 coverage", summary.Coverage())
	assert.EqualValues(t, 6, calls.Load())
}

func TestNewFailsOnUnusableArchive(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	cfg := baseConfig("http://127.0.0.1:1")
	cfg.Archive = config.ArchiveConfig{Provider: config.ArchiveLocal, BaseDir: file}

	_, err := app.New(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open local archive")
}

func TestNewRejectsUnknownProviders(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("http://127.0.0.1:1")
	cfg.Generator.Provider = "openai"
	_, err := app.New(context.Background(), cfg, nil)
	require.ErrorContains(t, err, "unknown generator provider")

	cfg = baseConfig("http://127.0.0.1:1")
	cfg.Store.Provider = "mongo"
	_, err = app.New(context.Background(), cfg, nil)
	require.ErrorContains(t, err, "unknown store provider")
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("http://127.0.0.1:1")
	cfg.Metrics.ListenAddr = "127.0.0.1:0"
	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	a.Close()
	a.Close()
}
