// Package store holds the authoritative server-side datasets that the
// editing engine fetches pages from. Two implementations are provided:
// an in-memory store for demos and tests, and a Postgres store that
// keeps each dataset as a jsonb document.
package store

import (
	"context"
	"errors"

	"github.com/pagegrid/pagegrid/internal/grid"
)

// ErrNotFound is returned when no dataset exists for a file ID.
var ErrNotFound = errors.New("file not found")

// ErrUnsupportedFormat is returned for export formats the store cannot
// produce (currently everything except csv).
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Query is the server-delegated view of a page fetch: pagination plus
// at most one of Search or FilterColumn/FilterValues.
type Query struct {
	Page         int
	PageSize     int
	Search       string
	FilterColumn string
	FilterValues []string
}

// Store is the server-side persistence boundary the web layer serves
// from.
type Store interface {
	// Create registers a new dataset and returns its file ID.
	Create(ctx context.Context, ds *Dataset) (string, error)

	// GetPage returns one filtered, paginated page of the dataset.
	GetPage(ctx context.Context, fileID string, q Query) (*grid.Page, error)

	// ColumnValues returns the distinct values of a column, narrowed by
	// the cascade filters, sorted ascending.
	ColumnValues(ctx context.Context, fileID, column string, cascade map[string][]string) ([]string, error)

	// Replace overwrites the dataset with the given snapshot.
	Replace(ctx context.Context, fileID string, snap grid.Snapshot) error

	// Export renders the full dataset in the given format. Returns the
	// bytes and a content type.
	Export(ctx context.Context, fileID, format string) ([]byte, string, error)
}
