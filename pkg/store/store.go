// Package store persists computed layouts so they can be fetched again by
// ID, typically by the HTTP API handing out stable layout URLs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jentor/strata/pkg/errors"
	"github.com/jentor/strata/pkg/graph"
	"github.com/jentor/strata/pkg/layout"
)

// Record is one stored layout: the input document, the configuration it was
// computed with, and the resulting geometry.
type Record struct {
	ID        string         `bson:"_id" json:"id"`
	DocHash   string         `bson:"doc_hash" json:"doc_hash"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	Document  graph.Document `bson:"document" json:"document"`
	Config    layout.Config  `bson:"config" json:"config"`
	Layout    layout.Result  `bson:"layout" json:"layout"`
}

// NewID generates a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// Store is the persistence interface for layout records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts a record. Records are immutable; saving an existing ID
	// is an error.
	Save(ctx context.Context, rec *Record) error

	// Get fetches a record by ID. A missing ID surfaces as NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// ErrNotFound builds the standard missing-record error.
func ErrNotFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %q not found", id)
}
