package grid

// cellEdit is the single-cell editing state machine:
// idle -> editing(row, col, draft) -> commit/cancel -> idle.
type cellEdit struct {
	active bool
	row    int // displayed row index
	col    int // column index
	draft  string
}

// renameEdit is the column-header renaming state machine. It is distinct
// from cellEdit: commit validates the draft name and a collision keeps
// the session open.
type renameEdit struct {
	active bool
	col    int
	draft  string
}

// BeginCellEdit enters the editing state for the cell at the displayed
// row and column index, seeding the draft from the current value (empty
// string if the cell is absent). A rename session in progress is
// cancelled first; only one edit session is active at a time.
func (s *Session) BeginCellEdit(dispRow, col int) bool {
	if dispRow < 0 || dispRow >= len(s.displayed) || col < 0 || col >= len(s.columns) {
		return false
	}
	s.rename = renameEdit{}
	s.edit = cellEdit{
		active: true,
		row:    dispRow,
		col:    col,
		draft:  cellString(s.rows[s.displayed[dispRow]][s.columns[col]]),
	}
	return true
}

// SetCellDraft replaces the draft value of the active cell edit.
func (s *Session) SetCellDraft(value string) {
	if s.edit.active {
		s.edit.draft = value
	}
}

// CellDraft returns the active cell edit's position and draft value.
func (s *Session) CellDraft() (row, col int, value string, active bool) {
	return s.edit.row, s.edit.col, s.edit.draft, s.edit.active
}

// CommitCellEdit writes the draft into a copy of the target row, pushes
// a snapshot, and returns to idle. No-op when no edit is active.
func (s *Session) CommitCellEdit() {
	if !s.edit.active {
		return
	}
	e := s.edit
	s.edit = cellEdit{}

	if e.row >= len(s.displayed) || e.col >= len(s.columns) {
		return
	}
	src := s.displayed[e.row]
	updated := s.rows[src].Clone()
	updated[s.columns[e.col]] = e.draft
	s.rows[src] = updated

	s.pushSnapshot()
	s.recomputeDisplayed()
}

// CancelCellEdit discards the draft and returns to idle without
// mutating the data store.
func (s *Session) CancelCellEdit() {
	s.edit = cellEdit{}
}

// BeginRenameColumn enters the renaming state for the column at index,
// seeding the draft with the current name.
func (s *Session) BeginRenameColumn(col int) bool {
	if col < 0 || col >= len(s.columns) {
		return false
	}
	s.edit = cellEdit{}
	s.rename = renameEdit{active: true, col: col, draft: s.columns[col]}
	return true
}

// SetRenameDraft replaces the draft name of the active rename session.
func (s *Session) SetRenameDraft(name string) {
	if s.rename.active {
		s.rename.draft = name
	}
}

// RenameDraft returns the active rename session's column and draft name.
func (s *Session) RenameDraft() (col int, name string, active bool) {
	return s.rename.col, s.rename.draft, s.rename.active
}

// CommitRenameColumn validates the draft and applies the rename: the
// column entry is replaced and every row's value moves from the old key
// to the new one. On a ValidationError the session stays open so the
// user can correct the draft; state is untouched.
func (s *Session) CommitRenameColumn() error {
	if !s.rename.active {
		return nil
	}
	col, draft := s.rename.col, s.rename.draft

	if err := s.validateColumnName(draft, col); err != nil {
		return err
	}

	old := s.columns[col]
	s.rename = renameEdit{}
	if draft == old {
		return nil
	}

	s.columns[col] = draft
	for i, row := range s.rows {
		updated := row.Clone()
		if v, ok := updated[old]; ok {
			updated[draft] = v
			delete(updated, old)
		}
		s.rows[i] = updated
	}

	s.pushSnapshot()
	s.recomputeDisplayed()
	return nil
}

// CancelRenameColumn discards the draft name and returns to idle.
func (s *Session) CancelRenameColumn() {
	s.rename = renameEdit{}
}

// validateColumnName rejects empty names and case-sensitive exact
// collisions with any column other than the one at exceptIndex. Pass a
// negative exceptIndex when adding a new column.
func (s *Session) validateColumnName(name string, exceptIndex int) error {
	if name == "" {
		return &ValidationError{Field: "column name", Reason: "name must not be empty"}
	}
	for i, c := range s.columns {
		if i != exceptIndex && c == name {
			return &ValidationError{Field: "column name", Reason: "column " + name + " already exists"}
		}
	}
	return nil
}
