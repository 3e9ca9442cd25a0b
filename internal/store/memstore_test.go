package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pagegrid/pagegrid/internal/grid"
)

func TestMemStore_CreateAndGetPage(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()

	id, err := m.Create(ctx, cityDataset())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("create returned empty ID")
	}

	p, err := m.GetPage(ctx, id, Query{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if p.TotalRows != 5 {
		t.Errorf("total = %d, want 5", p.TotalRows)
	}
}

func TestMemStore_UnknownFile(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()

	if _, err := m.GetPage(ctx, "missing", Query{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPage: got %v, want ErrNotFound", err)
	}
	if err := m.Replace(ctx, "missing", grid.Snapshot{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replace: got %v, want ErrNotFound", err)
	}
	if _, _, err := m.Export(ctx, "missing", "csv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Export: got %v, want ErrNotFound", err)
	}
}

func TestMemStore_ReplaceOverwrites(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()
	m.Seed("f", cityDataset())

	snap := grid.Snapshot{
		Columns: []string{"only"},
		Rows:    []grid.Row{{"only": "1"}},
	}
	if err := m.Replace(ctx, "f", snap); err != nil {
		t.Fatalf("replace: %v", err)
	}

	p, err := m.GetPage(ctx, "f", Query{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if p.TotalRows != 1 || len(p.Columns) != 1 || p.Columns[0] != "only" {
		t.Errorf("replace did not take effect: %+v", p)
	}
}

func TestMemStore_Export(t *testing.T) {
	m := NewMemStore()
	ctx := context.Background()
	m.Seed("f", &Dataset{
		Columns: []string{"a"},
		Rows:    []grid.Row{{"a": "1"}},
	})

	data, contentType, err := m.Export(ctx, "f", "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("content type = %q, want text/csv", contentType)
	}
	if !strings.HasPrefix(string(data), "a\n") {
		t.Errorf("csv = %q", string(data))
	}

	// xlsx is not produced server-side; clients synthesize locally.
	if _, _, err := m.Export(ctx, "f", "xlsx"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("xlsx export: got %v, want ErrUnsupportedFormat", err)
	}
}
