package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/JakeFAU/areapages/internal/content"
)

// ContentStore keeps content records in-memory for dry runs and tests.
type ContentStore struct {
	mu      sync.RWMutex
	records map[content.Key]content.Record
}

// NewContentStore creates an empty store.
func NewContentStore() *ContentStore {
	return &ContentStore{records: make(map[content.Key]content.Record)}
}

// ListExistingKeys returns a snapshot of the stored keys.
func (s *ContentStore) ListExistingKeys(context.Context) (content.KeySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make(content.KeySet, len(s.records))
	for k := range s.records {
		keys[k] = struct{}{}
	}
	return keys, nil
}

// WriteContentRecord stores rec unless its key is already present.
func (s *ContentStore) WriteContentRecord(_ context.Context, rec content.Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Key]; ok {
		return nil
	}
	s.records[rec.Key] = rec
	return nil
}

// Get returns the record stored for k.
func (s *ContentStore) Get(k content.Key) (content.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[k]
	return rec, ok
}

// Len reports how many records are stored.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close is a no-op.
func (s *ContentStore) Close() error {
	return nil
}
