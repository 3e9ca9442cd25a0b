package grid

import (
	"context"
	"time"
)

// SearchDebounce is how long a caller should wait after the last
// keystroke before invoking Search. Debouncing bounds request volume; it
// is not needed for correctness because stale responses are discarded.
const SearchDebounce = 500 * time.Millisecond

// DefaultPageSize is used when Options does not specify one.
const DefaultPageSize = 50

// Options configures a Session.
type Options struct {
	// PageSize is the rows-per-page requested from the adapter.
	PageSize int

	// AllowLocalSave clears the unsaved flag even when Save fails at
	// the adapter (offline/demo mode). Without it a failed save keeps
	// the flag set and surfaces the error.
	AllowLocalSave bool
}

// Session is the editing engine for one page of a remote tabular
// dataset. It owns the data store, history, selection, filter, sort,
// and layout state, and coordinates them so that indices stay valid
// across mutations and out-of-order fetch completions are discarded.
//
// A Session is single-threaded: one logical caller drives it, and
// adapter calls are the only suspension points.
type Session struct {
	adapter Adapter
	fileID  string

	rows    []Row
	columns []string

	history *History
	sel     *Selection
	filters FilterState
	sortBy  SortState
	layout  *Layout

	edit   cellEdit
	rename renameEdit

	page      int
	pageSize  int
	totalRows int

	// displayed holds indices into rows after the client-side filter
	// tier; selections and cell edits address rows through it.
	displayed []int

	// gen counts page fetches. A fetch that returns when a newer one
	// has been issued is stale and its result is dropped.
	gen uint64

	allowLocalSave bool
	lastErr        error
}

// NewSession creates an empty session for the given file. Call Load to
// populate it.
func NewSession(adapter Adapter, fileID string, opts Options) *Session {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s := &Session{
		adapter:        adapter,
		fileID:         fileID,
		history:        NewHistory(Snapshot{}),
		sel:            NewSelection(),
		layout:         NewLayout(),
		page:           1,
		pageSize:       pageSize,
		allowLocalSave: opts.AllowLocalSave,
	}
	s.recomputeDisplayed()
	return s
}

// Load fetches the current page through the adapter and replaces the
// data store with the result. On a FetchError the session degrades to an
// empty placeholder page and retains the error for display; the caller
// can retry. A stale completion returns ErrStaleResponse and leaves all
// state untouched.
func (s *Session) Load(ctx context.Context) error {
	return s.reload(ctx)
}

// Retry re-runs the last fetch after a load failure.
func (s *Session) Retry(ctx context.Context) error {
	return s.reload(ctx)
}

func (s *Session) reload(ctx context.Context) error {
	s.gen++
	gen := s.gen

	req := PageRequest{
		Page:         s.page,
		PageSize:     s.pageSize,
		Search:       s.filters.Search,
		FilterColumn: s.filters.ColumnFilter.Column,
		FilterValues: s.filters.ColumnFilter.Values,
	}

	page, err := s.adapter.GetPage(ctx, s.fileID, req)

	// A newer request was issued while this one was in flight; its
	// result must not clobber fresher state.
	if gen != s.gen {
		return ErrStaleResponse
	}

	if err != nil {
		s.lastErr = err
		s.installPage(&Page{Rows: []Row{}, Columns: []string{}})
		return err
	}

	s.lastErr = nil
	s.installPage(page)
	return nil
}

// installPage replaces the data store with a fetched page. The reload is
// a structural change: selection and edit sessions are cleared, history
// restarts from the fetched snapshot, and the displayed set is
// recomputed.
func (s *Session) installPage(page *Page) {
	s.rows = page.Rows
	s.columns = page.Columns
	s.totalRows = page.TotalRows

	s.history = NewHistory(s.snapshot())
	s.sel.Clear()
	s.edit = cellEdit{}
	s.rename = renameEdit{}
	s.recomputeDisplayed()
}

// Search activates the free-text search tier and refetches. Setting a
// search term clears any active column-value filter and resets the page
// to 1. Callers should debounce keystrokes by SearchDebounce.
func (s *Session) Search(ctx context.Context, term string) error {
	s.filters.SetSearch(term)
	s.page = 1
	return s.reload(ctx)
}

// SetColumnFilter activates the column-value filter tier and refetches.
// Setting it clears any active search term and resets the page to 1.
func (s *Session) SetColumnFilter(ctx context.Context, column string, values []string) error {
	s.filters.SetColumnFilter(column, values)
	s.page = 1
	return s.reload(ctx)
}

// SetColumnTextFilter sets the client-side substring filter for a
// column and recomputes the displayed rows. No page reset, no fetch.
func (s *Session) SetColumnTextFilter(column, substring string) {
	s.filters.SetTextFilter(column, substring)
	s.sel.Clear()
	s.recomputeDisplayed()
}

// ClearFilters resets both filter tiers, the sort state, and the page,
// then refetches.
func (s *Session) ClearFilters(ctx context.Context) error {
	s.filters.Clear()
	s.sortBy = SortState{}
	s.page = 1
	return s.reload(ctx)
}

// ActiveFilterCount returns the number of active filters across tiers.
func (s *Session) ActiveFilterCount() int {
	return s.filters.ActiveCount()
}

// ColumnValues lists the selectable values for a column filter,
// cascading on the currently active column filter (if it targets a
// different column).
func (s *Session) ColumnValues(ctx context.Context, column string) ([]string, error) {
	cascade := map[string][]string{}
	if cf := s.filters.ColumnFilter; cf.Column != "" && cf.Column != column {
		cascade[cf.Column] = cf.Values
	}
	values, err := s.adapter.GetColumnValues(ctx, s.fileID, column, cascade)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// SetPage navigates to the given page and refetches. The page number is
// clamped to the valid range for the current totals.
func (s *Session) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if tp := s.TotalPages(); page > tp {
		page = tp
	}
	s.page = page
	return s.reload(ctx)
}

// SetPageSize changes the rows-per-page and refetches from page 1.
func (s *Session) SetPageSize(ctx context.Context, size int) error {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.pageSize = size
	s.page = 1
	return s.reload(ctx)
}

// SortColumn sorts the rows by the named column. Re-selecting the
// column currently sorted ascending flips to descending; anything else
// resets to ascending. The reorder is a content change and pushes a
// snapshot.
func (s *Session) SortColumn(column string) {
	dir := nextDirection(s.sortBy, column)
	s.sortBy = SortState{Column: column, Dir: dir}

	s.rows = SortRows(s.rows, column, dir)
	s.sel.Clear()
	s.pushSnapshot()
	s.recomputeDisplayed()
}

// Sort returns the current sort state.
func (s *Session) Sort() SortState { return s.sortBy }

// ToggleRowSelection toggles the displayed row index in the selection.
func (s *Session) ToggleRowSelection(dispRow int) {
	if dispRow < 0 || dispRow >= len(s.displayed) {
		return
	}
	s.sel.ToggleRow(dispRow)
}

// ToggleColumnSelection toggles the column index in the selection.
func (s *Session) ToggleColumnSelection(col int) {
	if col < 0 || col >= len(s.columns) {
		return
	}
	s.sel.ToggleColumn(col)
}

// Selection returns the session's selection sets.
func (s *Session) Selection() *Selection { return s.sel }

// DeleteSelectedRows removes every selected row from the data store,
// clears the selection, and pushes a snapshot. Displayed indices are
// translated to underlying row positions before removal.
func (s *Session) DeleteSelectedRows() {
	selected := s.sel.Rows()
	if len(selected) == 0 {
		return
	}

	underlying := make([]int, 0, len(selected))
	for _, d := range selected {
		if d >= 0 && d < len(s.displayed) {
			underlying = append(underlying, s.displayed[d])
		}
	}

	s.rows = removeRowsAt(s.rows, underlying)
	s.sel.Clear()
	s.pushSnapshot()
	s.recomputeDisplayed()
}

// DeleteSelectedColumns removes every selected column from the column
// list and strips the corresponding key from every row, then clears the
// selection and pushes a snapshot. Stored column widths are shifted to
// keep tracking the survivors.
func (s *Session) DeleteSelectedColumns() {
	selected := s.sel.Columns()
	if len(selected) == 0 {
		return
	}

	s.columns, s.rows = removeColumnsAt(s.columns, s.rows, selected)
	for i := len(selected) - 1; i >= 0; i-- {
		s.layout.DropColumn(selected[i])
	}
	s.sel.Clear()
	s.pushSnapshot()
	s.recomputeDisplayed()
}

// AddColumn appends a new, empty column. An empty name gets the next
// free spreadsheet-style letter label; explicit names are validated
// like a rename: non-empty and not already present. Inserts are
// structural edits, so the selection is cleared.
func (s *Session) AddColumn(name string) error {
	if name == "" {
		name = s.nextColumnLabel()
	}
	if err := s.validateColumnName(name, -1); err != nil {
		return err
	}
	s.columns = append(s.columns, name)
	s.sel.Clear()
	s.pushSnapshot()
	s.recomputeDisplayed()
	return nil
}

// nextColumnLabel returns the first letter label (A, B, ..., AA, ...)
// not already used as a column name.
func (s *Session) nextColumnLabel() string {
	for i := len(s.columns); ; i++ {
		label := ColumnLabel(i)
		if s.validateColumnName(label, -1) == nil {
			return label
		}
	}
}

// AddRow appends an empty row and pushes a snapshot. Like all
// structural edits, the insert clears the selection.
func (s *Session) AddRow() {
	s.rows = append(s.rows, Row{})
	s.sel.Clear()
	s.pushSnapshot()
	s.recomputeDisplayed()
}

// Undo restores the previous snapshot. Selections are cleared because
// row and column indices are not stable across the restore.
func (s *Session) Undo() bool {
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot after an undo.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Unsaved reports whether there are changes since the last save.
func (s *Session) Unsaved() bool { return s.history.Unsaved() }

// Save persists the current snapshot through the adapter. On success
// the unsaved flag clears. On a FetchError the in-memory state is kept
// intact; with AllowLocalSave the flag still clears (local-only
// success), otherwise the error is returned for notification.
func (s *Session) Save(ctx context.Context) error {
	err := s.adapter.Save(ctx, s.fileID, s.snapshot())
	if err != nil {
		if s.allowLocalSave && IsFetchError(err) {
			s.history.MarkSaved()
			return nil
		}
		return err
	}
	s.history.MarkSaved()
	return nil
}

// Download exports the dataset in the given format through the adapter.
// If the adapter cannot produce the export, a CSV of the current
// snapshot is synthesized locally instead.
func (s *Session) Download(ctx context.Context, format string) ([]byte, error) {
	data, err := s.adapter.Download(ctx, s.fileID, format)
	if err == nil {
		return data, nil
	}
	if IsFetchError(err) {
		return ExportCSV(s.snapshot())
	}
	return nil, err
}

// Layout returns the session's column layout manager.
func (s *Session) Layout() *Layout { return s.layout }

// AutoFitColumn sizes the column at index to its content, sampling the
// currently displayed rows.
func (s *Session) AutoFitColumn(col int) int {
	if col < 0 || col >= len(s.columns) {
		return 0
	}
	return s.layout.AutoFit(col, s.columns[col], s.DisplayedRows())
}

// Columns returns the current column names in order.
func (s *Session) Columns() []string {
	return append([]string(nil), s.columns...)
}

// DisplayedRows materializes the rows after the client-side filter
// tier, in display order.
func (s *Session) DisplayedRows() []Row {
	out := make([]Row, len(s.displayed))
	for i, idx := range s.displayed {
		out[i] = s.rows[idx]
	}
	return out
}

// RowCount returns the number of rows on the loaded page before
// client-side filtering.
func (s *Session) RowCount() int { return len(s.rows) }

// Page returns the current page number.
func (s *Session) Page() int { return s.page }

// PageSize returns the configured rows-per-page.
func (s *Session) PageSize() int { return s.pageSize }

// TotalRows returns the server-authoritative total row count.
func (s *Session) TotalRows() int { return s.totalRows }

// TotalPages derives the page count from the authoritative total.
func (s *Session) TotalPages() int {
	tp := (s.totalRows + s.pageSize - 1) / s.pageSize
	if tp < 1 {
		tp = 1
	}
	return tp
}

// Filters returns a copy of the current filter state.
func (s *Session) Filters() FilterState {
	f := s.filters
	if f.TextFilters != nil {
		tf := make(map[string]string, len(f.TextFilters))
		for k, v := range f.TextFilters {
			tf[k] = v
		}
		f.TextFilters = tf
	}
	return f
}

// LastError returns the retained error from the most recent failed
// fetch, or nil. Used to drive the error banner and retry action.
func (s *Session) LastError() error { return s.lastErr }

// Snapshot returns a deep copy of the current data store state.
func (s *Session) Snapshot() Snapshot { return s.snapshot() }

func (s *Session) snapshot() Snapshot {
	return Snapshot{Rows: s.rows, Columns: s.columns}.Clone()
}

// pushSnapshot records the resulting state of a mutation. Every
// content-changing or structural operation calls this exactly once,
// after the mutation.
func (s *Session) pushSnapshot() {
	s.history.Push(s.snapshot())
}

// restore replaces the data store from a history snapshot and
// invalidates everything derived from row/column indices.
func (s *Session) restore(snap Snapshot) {
	s.rows = snap.Rows
	s.columns = snap.Columns
	s.sel.Clear()
	s.edit = cellEdit{}
	s.rename = renameEdit{}
	s.recomputeDisplayed()
}

// recomputeDisplayed re-derives the displayed row set from the loaded
// rows and the client-side text filters. Invoked explicitly after any
// filter, sort, or data store change.
func (s *Session) recomputeDisplayed() {
	s.displayed = applyTextFilters(s.rows, s.filters.TextFilters)
}
