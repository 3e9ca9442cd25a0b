package grid

import "sort"

// Selection tracks the selected row and column indices. Indices are
// positions in the currently displayed row list and the column list;
// they are not stable identities, so any structural edit or reload
// clears the selection rather than trying to remap it.
type Selection struct {
	rows map[int]struct{}
	cols map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{
		rows: make(map[int]struct{}),
		cols: make(map[int]struct{}),
	}
}

// ToggleRow adds or removes a displayed row index from the selection.
func (s *Selection) ToggleRow(i int) {
	if _, ok := s.rows[i]; ok {
		delete(s.rows, i)
		return
	}
	s.rows[i] = struct{}{}
}

// ToggleColumn adds or removes a column index from the selection.
func (s *Selection) ToggleColumn(i int) {
	if _, ok := s.cols[i]; ok {
		delete(s.cols, i)
		return
	}
	s.cols[i] = struct{}{}
}

// RowSelected reports whether the displayed row index is selected.
func (s *Selection) RowSelected(i int) bool {
	_, ok := s.rows[i]
	return ok
}

// ColumnSelected reports whether the column index is selected.
func (s *Selection) ColumnSelected(i int) bool {
	_, ok := s.cols[i]
	return ok
}

// Rows returns the selected row indices in ascending order.
func (s *Selection) Rows() []int { return sortedKeys(s.rows) }

// Columns returns the selected column indices in ascending order.
func (s *Selection) Columns() []int { return sortedKeys(s.cols) }

// RowCount returns the number of selected rows.
func (s *Selection) RowCount() int { return len(s.rows) }

// ColumnCount returns the number of selected columns.
func (s *Selection) ColumnCount() int { return len(s.cols) }

// Clear empties both selection sets.
func (s *Selection) Clear() {
	s.rows = make(map[int]struct{})
	s.cols = make(map[int]struct{})
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// removeRowsAt deletes the rows at the given indices and returns the
// remainder. Indices are removed in descending order so that removing a
// higher index never shifts a not-yet-removed lower one; this ordering
// is a correctness requirement.
func removeRowsAt(rows []Row, indices []int) []Row {
	desc := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))

	out := append([]Row(nil), rows...)
	for _, i := range desc {
		if i < 0 || i >= len(out) {
			continue
		}
		out = append(out[:i], out[i+1:]...)
	}
	return out
}

// removeColumnsAt deletes the columns at the given indices, stripping
// each deleted column's key from every row. Same descending-order rule
// as removeRowsAt.
func removeColumnsAt(columns []string, rows []Row, indices []int) ([]string, []Row) {
	desc := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))

	outCols := append([]string(nil), columns...)
	outRows := make([]Row, len(rows))
	for i, r := range rows {
		outRows[i] = r.Clone()
	}

	for _, i := range desc {
		if i < 0 || i >= len(outCols) {
			continue
		}
		name := outCols[i]
		outCols = append(outCols[:i], outCols[i+1:]...)
		for _, r := range outRows {
			delete(r, name)
		}
	}
	return outCols, outRows
}
