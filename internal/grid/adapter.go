package grid

import "context"

// Adapter is the persistence contract the engine depends on. The server
// behind it owns the authoritative dataset and its large-scale filtering;
// the engine only ever sees one page at a time.
//
// Implementations must return a *FetchError for transport/HTTP failures
// so the engine can apply its degradation policy.
type Adapter interface {
	// GetPage fetches one page of the dataset. At most one of req.Search
	// or req.FilterColumn is set.
	GetPage(ctx context.Context, fileID string, req PageRequest) (*Page, error)

	// GetColumnValues lists the distinct values selectable for a column
	// filter, narrowed by the other currently active column filters.
	GetColumnValues(ctx context.Context, fileID, column string, cascade map[string][]string) ([]string, error)

	// Save replaces the remote dataset with the given snapshot.
	Save(ctx context.Context, fileID string, snap Snapshot) error

	// Download exports the dataset in the given format ("csv" or "xlsx").
	Download(ctx context.Context, fileID, format string) ([]byte, error)
}
