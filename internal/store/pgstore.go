package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pagegrid/pagegrid/internal/grid"
)

// PGStore persists each dataset as one jsonb document in Postgres.
// Documents are page-scale (a few hundred rows), so the store loads the
// document and filters in memory rather than pushing predicates over
// arbitrary user-named columns into SQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore wraps a connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureSchema creates the pages table if it does not exist.
func (p *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pages (
			id         uuid PRIMARY KEY,
			data       jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Create inserts a new dataset document and returns its ID.
func (p *PGStore) Create(ctx context.Context, ds *Dataset) (string, error) {
	doc, err := json.Marshal(ds)
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}

	id := uuid.New().String()
	_, err = p.pool.Exec(ctx,
		`INSERT INTO pages (id, data) VALUES ($1, $2)`, id, doc)
	if err != nil {
		return "", fmt.Errorf("insert page: %w", err)
	}
	return id, nil
}

// GetPage loads the document and returns one filtered, paginated page.
func (p *PGStore) GetPage(ctx context.Context, fileID string, q Query) (*grid.Page, error) {
	ds, err := p.load(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return ds.PageOf(q), nil
}

// ColumnValues loads the document and returns the cascading value list.
func (p *PGStore) ColumnValues(ctx context.Context, fileID, column string, cascade map[string][]string) ([]string, error) {
	ds, err := p.load(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return ds.ColumnValues(column, cascade), nil
}

// Replace overwrites the document with the snapshot.
func (p *PGStore) Replace(ctx context.Context, fileID string, snap grid.Snapshot) error {
	doc, err := json.Marshal(FromSnapshot(snap))
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE pages SET data = $2, updated_at = now() WHERE id = $1`, fileID, doc)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Export renders the dataset. Only csv is supported.
func (p *PGStore) Export(ctx context.Context, fileID, format string) ([]byte, string, error) {
	ds, err := p.load(ctx, fileID)
	if err != nil {
		return nil, "", err
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

func (p *PGStore) load(ctx context.Context, fileID string) (*Dataset, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM pages WHERE id = $1`, fileID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(doc, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	return &ds, nil
}
