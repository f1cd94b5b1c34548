package content

import (
	"context"
	"io"
	"time"
)

// Generator produces a validated record for one task.
type Generator interface {
	Generate(ctx context.Context, task Task) (Record, error)
}

// KeyLister reads the keys already present in the store.
type KeyLister interface {
	ListExistingKeys(ctx context.Context) (KeySet, error)
}

// Writer persists one record. Implementations must ignore a second write for the same key.
type Writer interface {
	WriteContentRecord(ctx context.Context, record Record) error
}

// Store is the persistence gateway the pipeline depends on.
type Store interface {
	KeyLister
	Writer
	Close() error
}

// BlobStore writes raw artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data io.Reader) (string, error)
}

// Publisher pushes completion events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces record IDs.
type IDGenerator interface {
	NewID() (string, error)
}
