// Package docstore defines the document store port shared by every backend.
package docstore

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=gateway.go -destination=./mocks/mock_gateway.go -package=mocks

// Document is a loosely typed stored body. Values are whatever the backend
// decoded: strings, float64 or int64 numbers, time.Time, nested maps and lists.
type Document = map[string]any

// Snapshot is one stored document together with its store-issued id.
type Snapshot struct {
	ID   string
	Data Document
}

// Gateway is a thin CRUD port over a named collection of documents. Every
// call is a single round trip; callers own retries.
type Gateway interface {
	// Insert stores doc and returns the id issued by the store.
	Insert(ctx context.Context, collection string, doc Document) (string, error)
	GetByID(ctx context.Context, collection, id string) (Document, error)
	// GetAll returns every document in the collection in no guaranteed order.
	GetAll(ctx context.Context, collection string) ([]Snapshot, error)
	// Update replaces the whole body of an existing document.
	Update(ctx context.Context, collection, id string, doc Document) error
	DeleteByID(ctx context.Context, collection, id string) error
	Close() error
}

var (
	ErrNotFound    = errors.New("document_not_found")
	ErrUnavailable = errors.New("store_unavailable")
)

const (
	BackendFirestore = "firestore"
	BackendSQL       = "sql"
	BackendRedis     = "redis"
)

// NotFound reports a missing document.
func NotFound(collection, id string) error {
	return fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// Unavailable wraps a backend failure so callers can match ErrUnavailable
// while the cause stays inspectable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
