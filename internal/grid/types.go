// Package grid provides the in-memory tabular page editing engine.
// This package has no UI or transport dependencies and can be driven
// by any frontend.
package grid

// Row is a single row of data as column-name/value pairs.
// Values are scalars: string, float64, or nil.
type Row map[string]any

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Snapshot is an immutable capture of the page's rows and columns at one
// point in history. Columns are ordered; position determines the
// Excel-style letter label.
type Snapshot struct {
	Rows    []Row
	Columns []string
}

// Clone returns a deep copy of the snapshot. History stores full
// snapshots rather than diffs, so restoring one must never alias the
// live rows.
func (s Snapshot) Clone() Snapshot {
	rows := make([]Row, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = r.Clone()
	}
	cols := make([]string, len(s.Columns))
	copy(cols, s.Columns)
	return Snapshot{Rows: rows, Columns: cols}
}

// Page is one fetched page of a remote dataset. TotalRows is the
// authoritative row count of the full (server-filtered) dataset, not the
// length of Rows.
type Page struct {
	Rows      []Row    `json:"rows"`
	Columns   []string `json:"columns"`
	TotalRows int      `json:"totalRows"`
}

// PageRequest describes the server-delegated view of a page fetch:
// pagination plus at most one of Search or FilterColumn/FilterValues.
type PageRequest struct {
	Page         int      `json:"page"`
	PageSize     int      `json:"pageSize"`
	Search       string   `json:"search,omitempty"`
	FilterColumn string   `json:"filterColumn,omitempty"`
	FilterValues []string `json:"filterValues,omitempty"`
}

// CellText converts a cell value to its string form: nil reads as the
// empty string, numbers print without a trailing ".0". Used for
// comparison, filtering, and export.
func CellText(v any) string {
	return cellString(v)
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return formatScalar(v)
}
