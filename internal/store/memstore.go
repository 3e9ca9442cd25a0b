package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pagegrid/pagegrid/internal/grid"
)

// MemStore keeps datasets in process memory. Used for demo mode and
// tests; it implements the same contract as the Postgres store.
type MemStore struct {
	mu    sync.RWMutex
	files map[string]*Dataset
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string]*Dataset)}
}

// Create registers a new dataset under a fresh UUID.
func (m *MemStore) Create(ctx context.Context, ds *Dataset) (string, error) {
	id := uuid.New().String()
	m.mu.Lock()
	m.files[id] = ds
	m.mu.Unlock()
	return id, nil
}

// Seed registers a dataset under a caller-chosen ID. Demo and test
// convenience; Create is the normal path.
func (m *MemStore) Seed(fileID string, ds *Dataset) {
	m.mu.Lock()
	m.files[fileID] = ds
	m.mu.Unlock()
}

// GetPage returns one filtered, paginated page.
func (m *MemStore) GetPage(ctx context.Context, fileID string, q Query) (*grid.Page, error) {
	m.mu.RLock()
	ds, ok := m.files[fileID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return ds.PageOf(q), nil
}

// ColumnValues returns the cascading value list for a column filter.
func (m *MemStore) ColumnValues(ctx context.Context, fileID, column string, cascade map[string][]string) ([]string, error) {
	m.mu.RLock()
	ds, ok := m.files[fileID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return ds.ColumnValues(column, cascade), nil
}

// Replace overwrites the stored dataset with the snapshot.
func (m *MemStore) Replace(ctx context.Context, fileID string, snap grid.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[fileID]; !ok {
		return ErrNotFound
	}
	m.files[fileID] = FromSnapshot(snap)
	return nil
}

// Export renders the dataset. Only csv is supported; xlsx returns
// ErrUnsupportedFormat so clients fall back to local synthesis.
func (m *MemStore) Export(ctx context.Context, fileID, format string) ([]byte, string, error) {
	m.mu.RLock()
	ds, ok := m.files[fileID]
	m.mu.RUnlock()
	if !ok {
		return nil, "", ErrNotFound
	}
	if format != "csv" {
		return nil, "", ErrUnsupportedFormat
	}
	data, err := grid.ExportCSV(ds.Snapshot())
	if err != nil {
		return nil, "", err
	}
	return data, "text/csv", nil
}
