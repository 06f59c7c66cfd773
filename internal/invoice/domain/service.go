package domain

import (
	"context"
	"errors"
)

type Service interface {
	Blank() Record
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, id string, rec Record) (Record, error)
	// Save creates the record when id is empty and replaces it otherwise.
	Save(ctx context.Context, id string, rec Record) (Record, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrStoreUnavailable = errors.New("store_unavailable")
)
