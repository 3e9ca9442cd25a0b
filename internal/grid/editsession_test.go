package grid

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// loadedSession builds a session over a static page for edit tests.
func loadedSession(t *testing.T, page *Page) *Session {
	t.Helper()
	s := NewSession(&fakeAdapter{page: page}, "file-1", Options{})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestCellEdit_CommitWritesDraftAndPushes(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"name"},
		Rows:      []Row{{"name": "old"}},
		TotalRows: 1,
	})

	if !s.BeginCellEdit(0, 0) {
		t.Fatal("BeginCellEdit refused valid indices")
	}
	s.SetCellDraft("new")
	s.CommitCellEdit()

	if got := s.DisplayedRows()[0]["name"]; got != "new" {
		t.Errorf("cell = %v, want %q", got, "new")
	}
	if !s.CanUndo() {
		t.Error("commit should push a snapshot")
	}
	if _, _, _, active := s.CellDraft(); active {
		t.Error("session should return to idle after commit")
	}
}

func TestCellEdit_SeedsDraftFromCurrentValue(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"a", "b"},
		Rows:      []Row{{"a": "seeded"}},
		TotalRows: 1,
	})

	s.BeginCellEdit(0, 0)
	if _, _, draft, _ := s.CellDraft(); draft != "seeded" {
		t.Errorf("draft = %q, want %q", draft, "seeded")
	}
	s.CancelCellEdit()

	// Absent cell seeds an empty draft.
	s.BeginCellEdit(0, 1)
	if _, _, draft, _ := s.CellDraft(); draft != "" {
		t.Errorf("draft for absent cell = %q, want empty", draft)
	}
}

func TestCellEdit_CancelLeavesStoreUntouched(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"name"},
		Rows:      []Row{{"name": "old"}},
		TotalRows: 1,
	})

	s.BeginCellEdit(0, 0)
	s.SetCellDraft("discarded")
	s.CancelCellEdit()

	if got := s.DisplayedRows()[0]["name"]; got != "old" {
		t.Errorf("cell = %v, want unchanged %q", got, "old")
	}
	if s.CanUndo() {
		t.Error("cancel must not push a snapshot")
	}
}

func TestRenameColumn_MovesRowKeys(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"Amt", "Status"},
		Rows:      []Row{{"Amt": "10", "Status": "ok"}, {"Amt": "20", "Status": "ok"}},
		TotalRows: 2,
	})

	s.BeginRenameColumn(0)
	s.SetRenameDraft("Amount")
	if err := s.CommitRenameColumn(); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if diff := cmp.Diff([]string{"Amount", "Status"}, s.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	for i, row := range s.DisplayedRows() {
		if _, ok := row["Amt"]; ok {
			t.Errorf("row %d still has old key", i)
		}
		if row["Amount"] == nil {
			t.Errorf("row %d missing value under new key", i)
		}
	}
	if !s.CanUndo() {
		t.Error("rename should push a snapshot")
	}
}

func TestRenameColumn_CollisionRejectedSessionStaysOpen(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"Amt", "Amount"},
		Rows:      []Row{{"Amt": "10", "Amount": "20"}},
		TotalRows: 1,
	})

	s.BeginRenameColumn(0)
	s.SetRenameDraft("Amount")

	err := s.CommitRenameColumn()
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Session stays open for correction; state is unchanged.
	if _, _, active := s.RenameDraft(); !active {
		t.Error("rename session should stay open after a collision")
	}
	if diff := cmp.Diff([]string{"Amt", "Amount"}, s.Columns()); diff != "" {
		t.Errorf("columns changed on rejected rename (-want +got):\n%s", diff)
	}
	if s.CanUndo() {
		t.Error("rejected rename must not push a snapshot")
	}
}

func TestRenameColumn_EmptyNameRejected(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"Amt"},
		Rows:      []Row{},
		TotalRows: 0,
	})

	s.BeginRenameColumn(0)
	s.SetRenameDraft("")

	if err := s.CommitRenameColumn(); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}
}

func TestRenameColumn_SameNameIsNoOp(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"Amt"},
		Rows:      []Row{{"Amt": "1"}},
		TotalRows: 1,
	})

	s.BeginRenameColumn(0)
	if err := s.CommitRenameColumn(); err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
	if s.CanUndo() {
		t.Error("unchanged rename must not push a snapshot")
	}
}

func TestAddColumn_ValidatesName(t *testing.T) {
	s := loadedSession(t, &Page{
		Columns:   []string{"a"},
		Rows:      []Row{{"a": "1"}},
		TotalRows: 1,
	})

	if err := s.AddColumn(""); !IsValidationError(err) {
		t.Errorf("empty name: got %v, want ValidationError", err)
	}
	if err := s.AddColumn("a"); !IsValidationError(err) {
		t.Errorf("duplicate name: got %v, want ValidationError", err)
	}

	if err := s.AddColumn("b"); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}
