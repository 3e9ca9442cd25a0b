package store

import (
	"sort"
	"strings"

	"github.com/pagegrid/pagegrid/internal/grid"
)

// Dataset is one stored file: the full authoritative rows and columns.
// Page-scale data (tens to a few hundred rows per page) is assumed, so
// filtering happens in memory over the whole document.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    []grid.Row `json:"rows"`
}

// PageOf applies the server-delegated filter tier and pagination,
// returning one page plus the authoritative filtered total.
func (d *Dataset) PageOf(q Query) *grid.Page {
	filtered := d.filter(q.Search, q.FilterColumn, q.FilterValues)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = grid.DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	rows := make([]grid.Row, end-start)
	for i, r := range filtered[start:end] {
		rows[i] = r.Clone()
	}

	return &grid.Page{
		Rows:      rows,
		Columns:   append([]string(nil), d.Columns...),
		TotalRows: len(filtered),
	}
}

// ColumnValues returns the distinct values of a column after applying
// the cascade filters, sorted ascending. Rows with an empty value for
// the column are skipped.
func (d *Dataset) ColumnValues(column string, cascade map[string][]string) []string {
	seen := make(map[string]struct{})
	for _, row := range d.Rows {
		if !matchesCascade(row, cascade) {
			continue
		}
		v := cellText(row[column])
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Snapshot converts the dataset to an engine snapshot.
func (d *Dataset) Snapshot() grid.Snapshot {
	return grid.Snapshot{Rows: d.Rows, Columns: d.Columns}.Clone()
}

// FromSnapshot builds a dataset from an engine snapshot.
func FromSnapshot(snap grid.Snapshot) *Dataset {
	c := snap.Clone()
	return &Dataset{Columns: c.Columns, Rows: c.Rows}
}

// filter applies at most one of the free-text search or the
// column-value membership filter.
func (d *Dataset) filter(search, filterColumn string, filterValues []string) []grid.Row {
	if search == "" && filterColumn == "" {
		return d.Rows
	}

	out := make([]grid.Row, 0, len(d.Rows))
	for _, row := range d.Rows {
		switch {
		case search != "":
			if matchesSearch(row, d.Columns, search) {
				out = append(out, row)
			}
		default:
			if matchesMembership(row, filterColumn, filterValues) {
				out = append(out, row)
			}
		}
	}
	return out
}

// matchesSearch tests the free-text term against every column,
// case-insensitively.
func matchesSearch(row grid.Row, columns []string, term string) bool {
	needle := strings.ToLower(term)
	for _, col := range columns {
		if strings.Contains(strings.ToLower(cellText(row[col])), needle) {
			return true
		}
	}
	return false
}

// matchesMembership is the exact-match value filter for one column.
func matchesMembership(row grid.Row, column string, values []string) bool {
	v := cellText(row[column])
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}

// matchesCascade applies every cascade column filter to the row.
func matchesCascade(row grid.Row, cascade map[string][]string) bool {
	for col, values := range cascade {
		if len(values) == 0 {
			continue
		}
		if !matchesMembership(row, col, values) {
			return false
		}
	}
	return true
}

func cellText(v any) string {
	return grid.CellText(v)
}
