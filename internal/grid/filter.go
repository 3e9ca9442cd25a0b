package grid

import "strings"

// ColumnFilter is the server-delegated exact-match filter: rows whose
// value in Column is a member of Values.
type ColumnFilter struct {
	Column string
	Values []string
}

// FilterState combines the two filter tiers. Search and ColumnFilter are
// server-delegated and mutually exclusive; TextFilters is the always
// client-side per-column substring tier and composes with either.
type FilterState struct {
	Search       string
	ColumnFilter ColumnFilter
	TextFilters  map[string]string
}

// SetSearch activates the free-text search tier, clearing any active
// column-value filter.
func (f *FilterState) SetSearch(term string) {
	f.Search = term
	f.ColumnFilter = ColumnFilter{}
}

// SetColumnFilter activates the column-value filter tier, clearing any
// active search term. An empty values slice clears the filter entirely.
func (f *FilterState) SetColumnFilter(column string, values []string) {
	f.Search = ""
	if len(values) == 0 {
		f.ColumnFilter = ColumnFilter{}
		return
	}
	f.ColumnFilter = ColumnFilter{Column: column, Values: values}
}

// SetTextFilter sets or clears the client-side substring filter for a
// column. An empty substring removes the entry.
func (f *FilterState) SetTextFilter(column, substring string) {
	if f.TextFilters == nil {
		f.TextFilters = make(map[string]string)
	}
	if substring == "" {
		delete(f.TextFilters, column)
		return
	}
	f.TextFilters[column] = substring
}

// ActiveCount returns the number of active filters across both tiers.
func (f *FilterState) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if f.ColumnFilter.Column != "" {
		n++
	}
	for _, sub := range f.TextFilters {
		if sub != "" {
			n++
		}
	}
	return n
}

// Clear resets every filter in both tiers.
func (f *FilterState) Clear() {
	f.Search = ""
	f.ColumnFilter = ColumnFilter{}
	f.TextFilters = nil
}

// applyTextFilters returns the indices of rows that match every
// client-side substring filter (case-insensitive). With no filters
// active, every index is returned.
func applyTextFilters(rows []Row, filters map[string]string) []int {
	idx := make([]int, 0, len(rows))
	for i, row := range rows {
		if matchesTextFilters(row, filters) {
			idx = append(idx, i)
		}
	}
	return idx
}

func matchesTextFilters(row Row, filters map[string]string) bool {
	for col, sub := range filters {
		if sub == "" {
			continue
		}
		val := strings.ToLower(cellString(row[col]))
		if !strings.Contains(val, strings.ToLower(sub)) {
			return false
		}
	}
	return true
}
