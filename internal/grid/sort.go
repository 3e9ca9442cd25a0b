package grid

import (
	"sort"
	"strconv"
	"strings"
)

// SortState tracks the current sort column and direction. An empty
// Column means no sort is applied.
type SortState struct {
	Column string
	Dir    string // "asc" or "desc"
}

// nextDirection implements the toggle rule: re-selecting the column that
// is currently sorted ascending flips to descending; any other prior
// state resets to ascending.
func nextDirection(prev SortState, column string) string {
	if prev.Column == column && prev.Dir == "asc" {
		return "desc"
	}
	return "asc"
}

// SortRows returns a new slice with rows ordered by the given column.
// The sort is stable so rows that compare equal keep their original
// relative order, which keeps snapshots reproducible.
func SortRows(rows []Row, column, dir string) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareCells(out[i][column], out[j][column])
		if dir == "desc" {
			return c > 0
		}
		return c < 0
	})
	return out
}

// compareCells orders two cell values: numerically when both parse as
// numbers, otherwise as lower-cased strings. Missing and nil values
// compare as the empty string.
func compareCells(a, b any) int {
	as, bs := cellString(a), cellString(b)

	an, aerr := strconv.ParseFloat(as, 64)
	bn, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

// formatScalar renders a non-string scalar cell value. Floats that hold
// whole numbers print without a trailing ".0" to match the wire form.
func formatScalar(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}
