package grid

import "testing"

func TestColumnLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := ColumnLabel(tt.index); got != tt.want {
			t.Errorf("ColumnLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
