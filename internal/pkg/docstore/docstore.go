package docstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrAlreadyExists   = errors.New("document already exists")
	ErrInvalidFilter   = errors.New("invalid query filter")
	ErrInvalidPatch    = errors.New("invalid update patch")
	ErrEmptyID         = errors.New("document id is required")
	ErrEmptyCollection = errors.New("collection name is required")
)

// Document is a stored record: its id plus plain JSON-like field data
// (map[string]any, []any, string, float64, bool, nil).
type Document struct {
	ID   string
	Data map[string]any
}

// Transactor runs fn atomically. Every Store call made with the ctx passed to
// fn participates in the same transaction; if fn returns an error nothing is
// written.
type Transactor interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is the record repository contract the services depend on.
type Store interface {
	Transactor

	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Set(ctx context.Context, collection, id string, data map[string]any) error
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// NewID returns a time-ordered document id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
