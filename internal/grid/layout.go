package grid

const (
	// DefaultColumnWidth is used for columns with no stored width.
	DefaultColumnWidth = 150

	// MinColumnWidth is the floor for manual drag resizing.
	MinColumnWidth = 50

	// Auto-fit clamps its estimate to [AutoFitMinWidth, AutoFitMaxWidth].
	AutoFitMinWidth = 80
	AutoFitMaxWidth = 400

	// autoFitSampleRows bounds how many displayed rows auto-fit inspects.
	autoFitSampleRows = 100

	// Width estimate: per-character pixel constant plus a fixed margin
	// for cell padding and the sort affordance.
	autoFitCharWidth = 8
	autoFitMargin    = 24
)

// ResizeSession is the state of an in-progress drag resize. Only one
// resize can be active at a time; all pointer movement during the
// session applies to the captured column.
type ResizeSession struct {
	Active     bool
	Index      int
	StartX     int
	StartWidth int
}

// Layout tracks per-column pixel widths and the exclusive drag-resize
// session. Layout mutations are presentation state and never touch
// history.
type Layout struct {
	widths map[int]int
	drag   ResizeSession
}

// NewLayout returns a layout with no stored widths.
func NewLayout() *Layout {
	return &Layout{widths: make(map[int]int)}
}

// Width returns the stored width for a column, or the default.
func (l *Layout) Width(index int) int {
	if w, ok := l.widths[index]; ok {
		return w
	}
	return DefaultColumnWidth
}

// SetWidth stores an explicit width, clamped to the minimum.
func (l *Layout) SetWidth(index, width int) {
	if width < MinColumnWidth {
		width = MinColumnWidth
	}
	l.widths[index] = width
}

// StartResize begins a drag-resize session for the column at index,
// capturing the pointer's starting position. Returns false if a session
// is already active; the existing session keeps ownership.
func (l *Layout) StartResize(index, pointerX int) bool {
	if l.drag.Active {
		return false
	}
	l.drag = ResizeSession{
		Active:     true,
		Index:      index,
		StartX:     pointerX,
		StartWidth: l.Width(index),
	}
	return true
}

// MoveResize applies a pointer move to the captured column. Moves
// outside an active session are ignored.
func (l *Layout) MoveResize(pointerX int) {
	if !l.drag.Active {
		return
	}
	w := l.drag.StartWidth + (pointerX - l.drag.StartX)
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	l.widths[l.drag.Index] = w
}

// EndResize releases the drag capture.
func (l *Layout) EndResize() {
	l.drag = ResizeSession{}
}

// Resizing reports whether a drag session is active and for which column.
func (l *Layout) Resizing() (int, bool) {
	return l.drag.Index, l.drag.Active
}

// AutoFit estimates a width for the column from its name and the
// stringified values of up to the first 100 displayed rows, then stores
// the estimate clamped to [AutoFitMinWidth, AutoFitMaxWidth].
func (l *Layout) AutoFit(index int, name string, rows []Row) int {
	longest := len(name)
	for i, row := range rows {
		if i >= autoFitSampleRows {
			break
		}
		if n := len(cellString(row[name])); n > longest {
			longest = n
		}
	}

	w := longest*autoFitCharWidth + autoFitMargin
	if w < AutoFitMinWidth {
		w = AutoFitMinWidth
	}
	if w > AutoFitMaxWidth {
		w = AutoFitMaxWidth
	}
	l.widths[index] = w
	return w
}

// DropColumn forgets stored widths at and above the deleted index,
// shifting higher entries down by one. Called after a column deletion so
// widths keep tracking the surviving columns.
func (l *Layout) DropColumn(index int) {
	out := make(map[int]int, len(l.widths))
	for i, w := range l.widths {
		switch {
		case i < index:
			out[i] = w
		case i > index:
			out[i-1] = w
		}
	}
	l.widths = out
}

// Reset clears all stored widths and any active drag session.
func (l *Layout) Reset() {
	l.widths = make(map[int]int)
	l.drag = ResizeSession{}
}
