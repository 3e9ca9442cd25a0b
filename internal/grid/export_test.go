package grid

import (
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	snap := Snapshot{
		Columns: []string{"name", "amount"},
		Rows: []Row{
			{"name": "Alice", "amount": "10"},
			{"name": "Bob", "amount": float64(2)},
			{"name": nil},
		},
	}

	data, err := ExportCSV(snap)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	want := "name,amount\nAlice,10\nBob,2\n,\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", string(data), want)
	}
}

func TestExportCSV_QuotesEmbeddedDelimiters(t *testing.T) {
	snap := Snapshot{
		Columns: []string{"note"},
		Rows: []Row{
			{"note": "a,b"},
			{"note": "line1\nline2"},
		},
	}

	data, err := ExportCSV(snap)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"a,b"`) {
		t.Errorf("embedded comma not quoted: %q", out)
	}
	if !strings.Contains(out, "\"line1\nline2\"") {
		t.Errorf("embedded newline not quoted: %q", out)
	}
}
