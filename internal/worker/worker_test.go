package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/areapages/internal/content"
	pubmemory "github.com/JakeFAU/areapages/internal/publisher/memory"
	"github.com/JakeFAU/areapages/internal/storage/memory"
)

var task = content.Task{
	Location: content.Location{CountyKey: "kent", County: "Kent", TownKey: "maidstone", Town: "Maidstone"},
	Service:  content.Service{Key: "bridging-loans", Name: "Bridging Loans"},
}

func generatedRecord() content.Record {
	return content.Record{
		Narrative:      "Maidstone narrative",
		FAQs:           []content.FAQ{{Question: "q", Answer: "a"}},
		DealExample:    &content.DealExample{Title: "t", LoanAmount: "400,000", PropertyValue: "600,000"},
		Rates:          &content.Rates{RateFrom: "0.5%"},
		SEOTitle:       "Bridging Loans Maidstone",
		SEODescription: "desc",
	}
}

func newTestWorker(gen *fakeGenerator, store *fakeWriter, blobs *fakeBlobStore, pub *fakePublisher, obs *fakeObserver) *Worker {
	var (
		bs  content.BlobStore
		p   content.Publisher
		o   Observer
		cfg = Config{Model: "test-model", ArchivePrefix: "/content/", Topic: "content-generated"}
	)
	if blobs != nil {
		bs = blobs
	}
	if pub != nil {
		p = pub
	}
	if obs != nil {
		o = obs
	}
	return New(gen, store, bs, p, &fakeIDs{id: "rec-1"}, &fakeClock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}, o, cfg, zap.NewNop())
}

func TestProcessSuccessFlow(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{rec: generatedRecord()}
	store := &fakeWriter{}
	blobs := newFakeBlobStore()
	pub := &fakePublisher{}
	obs := &fakeObserver{}
	w := newTestWorker(gen, store, blobs, pub, obs)

	rec, err := w.Process(context.Background(), task)
	require.NoError(t, err)

	require.Equal(t, "rec-1", rec.ID)
	require.Equal(t, task.Key(), rec.Key)
	require.Equal(t, "test-model", rec.Model)
	require.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), rec.GeneratedAt)

	require.Len(t, store.records, 1)
	require.Equal(t, rec, store.records[0])

	require.Equal(t, "content/kent/maidstone/bridging-loans.json", blobs.lastPath)
	var archived content.Record
	require.NoError(t, json.Unmarshal(blobs.objects[blobs.lastPath], &archived))
	require.Equal(t, rec.ID, archived.ID)
	require.Equal(t, "application/json", blobs.lastType)

	require.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	require.Equal(t, "kent/maidstone/bridging-loans", msg["key"])
	require.Equal(t, "rec-1", msg["id"])
	require.Equal(t, "2026-03-01T09:30:00Z", msg["generated_at"])
	require.Equal(t, "memory://content/kent/maidstone/bridging-loans.json", msg["archive_uri"])
	require.Equal(t, "content-generated", pub.topic)

	require.Equal(t, []string{ResultSuccess}, obs.results)
	require.Zero(t, obs.active)
	require.Equal(t, 1, obs.peak)
}

func TestProcessWithInMemoryAdapters(t *testing.T) {
	t.Parallel()

	store := memory.NewContentStore()
	blobs := memory.NewBlobStore()
	pub := pubmemory.New()
	w := New(&fakeGenerator{rec: generatedRecord()}, store, blobs, pub, &fakeIDs{id: "rec-9"},
		&fakeClock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}, nil,
		Config{Model: "test-model", Topic: "content-generated"}, zap.NewNop())

	_, err := w.Process(context.Background(), task)
	require.NoError(t, err)

	stored, ok := store.Get(task.Key())
	require.True(t, ok)
	require.Equal(t, "rec-9", stored.ID)

	_, ok = blobs.Object("kent/maidstone/bridging-loans.json")
	require.True(t, ok)

	msgs := pub.Messages("content-generated")
	require.Len(t, msgs, 1)
	require.JSONEq(t, `{
		"key": "kent/maidstone/bridging-loans",
		"county_key": "kent",
		"town_key": "maidstone",
		"service_key": "bridging-loans",
		"id": "rec-9",
		"generated_at": "2026-03-01T09:30:00Z",
		"archive_uri": "memory://kent/maidstone/bridging-loans.json"
	}`, string(msgs[0].Data))
}

func TestProcessGenerationFailure(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("gave up")}
	store := &fakeWriter{}
	blobs := newFakeBlobStore()
	obs := &fakeObserver{}
	w := newTestWorker(gen, store, blobs, &fakePublisher{}, obs)

	_, err := w.Process(context.Background(), task)
	require.EqualError(t, err, "gave up")
	require.Empty(t, store.records)
	require.Empty(t, blobs.objects)
	require.Equal(t, []string{ResultFailure}, obs.results)
}

func TestProcessWriteFailureFailsTask(t *testing.T) {
	t.Parallel()

	store := &fakeWriter{err: errors.New("connection refused")}
	blobs := newFakeBlobStore()
	pub := &fakePublisher{}
	w := newTestWorker(&fakeGenerator{rec: generatedRecord()}, store, blobs, pub, nil)

	_, err := w.Process(context.Background(), task)
	require.ErrorContains(t, err, "write content record kent/maidstone/bridging-loans")
	require.ErrorContains(t, err, "connection refused")
	require.Empty(t, blobs.objects, "nothing is archived for an unwritten record")
	require.Empty(t, pub.messages)
}

func TestProcessArchiveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	blobs := newFakeBlobStore()
	blobs.err = errors.New("bucket missing")
	pub := &fakePublisher{}
	obs := &fakeObserver{}
	store := &fakeWriter{}
	w := newTestWorker(&fakeGenerator{rec: generatedRecord()}, store, blobs, pub, obs)

	_, err := w.Process(context.Background(), task)
	require.NoError(t, err)
	require.Len(t, store.records, 1)
	require.Equal(t, 1, obs.archiveFailures)
	require.Len(t, pub.messages, 1)
	require.NotContains(t, pub.messages[0], "archive_uri")
}

func TestProcessPublishFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{err: errors.New("topic not found")}
	store := &fakeWriter{}
	w := newTestWorker(&fakeGenerator{rec: generatedRecord()}, store, nil, pub, nil)

	_, err := w.Process(context.Background(), task)
	require.NoError(t, err)
	require.Len(t, store.records, 1)
}

func TestProcessIDFailure(t *testing.T) {
	t.Parallel()

	store := &fakeWriter{}
	w := New(&fakeGenerator{rec: generatedRecord()}, store, nil, nil, &fakeIDs{err: errors.New("entropy")},
		&fakeClock{}, nil, Config{}, nil)

	_, err := w.Process(context.Background(), task)
	require.ErrorContains(t, err, "entropy")
	require.Empty(t, store.records)
}

func TestArchivePath(t *testing.T) {
	t.Parallel()

	key := task.Key()
	require.Equal(t, "kent/maidstone/bridging-loans.json", New(nil, nil, nil, nil, nil, nil, nil, Config{}, nil).ArchivePath(key))
	require.Equal(t, "a/b/kent/maidstone/bridging-loans.json",
		New(nil, nil, nil, nil, nil, nil, nil, Config{ArchivePrefix: "a/b/"}, nil).ArchivePath(key))
}

type fakeGenerator struct {
	rec content.Record
	err error
}

func (g *fakeGenerator) Generate(context.Context, content.Task) (content.Record, error) {
	if g.err != nil {
		return content.Record{}, g.err
	}
	return g.rec, nil
}

type fakeWriter struct {
	mu      sync.Mutex
	records []content.Record
	err     error
}

func (f *fakeWriter) WriteContentRecord(_ context.Context, rec content.Record) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

type fakeBlobStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	lastPath string
	lastType string
	err      error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) PutObject(_ context.Context, path string, contentType string, data io.Reader) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[path] = body
	b.lastPath = path
	b.lastType = contentType
	return "memory://" + path, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	topic    string
	messages []map[string]any
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload any) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	if m, ok := payload.(map[string]any); ok {
		p.messages = append(p.messages, m)
	}
	return "msgid", nil
}

type fakeIDs struct {
	id  string
	err error
}

func (f *fakeIDs) NewID() (string, error) {
	return f.id, f.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeObserver struct {
	mu              sync.Mutex
	active          int
	peak            int
	results         []string
	archiveFailures int
}

func (o *fakeObserver) IncActive() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active++
	o.peak = max(o.peak, o.active)
}

func (o *fakeObserver) DecActive() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active--
}

func (o *fakeObserver) ObserveTask(result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func (o *fakeObserver) ObserveArchiveFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.archiveFailures++
}
