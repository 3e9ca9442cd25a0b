package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func amountRows(values ...any) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{"amount": v}
	}
	return rows
}

func amountValues(rows []Row) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["amount"]
	}
	return out
}

func TestSortRows_NumericBeforeLexicographic(t *testing.T) {
	// Numeric values order numerically; non-numeric values fall into
	// lower-cased string comparison. This exact ordering is pinned.
	rows := amountRows("10", "2", "abc", "1")

	sorted := SortRows(rows, "amount", "asc")

	want := []any{"1", "2", "10", "abc"}
	if diff := cmp.Diff(want, amountValues(sorted)); diff != "" {
		t.Errorf("ascending sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRows_Descending(t *testing.T) {
	rows := amountRows("10", "2", "abc", "1")

	sorted := SortRows(rows, "amount", "desc")

	want := []any{"abc", "10", "2", "1"}
	if diff := cmp.Diff(want, amountValues(sorted)); diff != "" {
		t.Errorf("descending sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRows_NilAndMissingAsEmptyString(t *testing.T) {
	rows := []Row{
		{"amount": "b"},
		{"amount": nil},
		{}, // key missing entirely
		{"amount": "a"},
	}

	sorted := SortRows(rows, "amount", "asc")

	got := []string{}
	for _, r := range sorted {
		got = append(got, cellString(r["amount"]))
	}
	want := []string{"", "", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nil handling mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRows_StableForEqualValues(t *testing.T) {
	rows := []Row{
		{"amount": "1", "tag": "first"},
		{"amount": "1", "tag": "second"},
		{"amount": "1", "tag": "third"},
	}

	sorted := SortRows(rows, "amount", "asc")

	want := []string{"first", "second", "third"}
	for i, r := range sorted {
		if r["tag"] != want[i] {
			t.Fatalf("stability broken at %d: got %v, want %v", i, r["tag"], want[i])
		}
	}
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := amountRows("2", "1")
	SortRows(rows, "amount", "asc")

	if rows[0]["amount"] != "2" {
		t.Error("SortRows mutated its input slice")
	}
}

func TestNextDirection(t *testing.T) {
	tests := []struct {
		name   string
		prev   SortState
		column string
		want   string
	}{
		{"no prior sort", SortState{}, "amount", "asc"},
		{"same column ascending flips", SortState{Column: "amount", Dir: "asc"}, "amount", "desc"},
		{"same column descending resets", SortState{Column: "amount", Dir: "desc"}, "amount", "asc"},
		{"different column resets", SortState{Column: "amount", Dir: "asc"}, "status", "asc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextDirection(tt.prev, tt.column); got != tt.want {
				t.Errorf("nextDirection(%v, %q) = %q, want %q", tt.prev, tt.column, got, tt.want)
			}
		})
	}
}

func TestCompareCells_MixedTypes(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"both numeric strings", "2", "10", -1},
		{"float64 against string number", float64(5), "10", -1},
		{"case-insensitive strings", "Apple", "apple", 0},
		{"nil sorts first", nil, "a", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareCells(tt.a, tt.b)
			if sign(got) != tt.want {
				t.Errorf("compareCells(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
