package grid

import "testing"

func TestLayout_WidthDefaults(t *testing.T) {
	l := NewLayout()

	if got := l.Width(3); got != DefaultColumnWidth {
		t.Errorf("default width = %d, want %d", got, DefaultColumnWidth)
	}

	l.SetWidth(3, 220)
	if got := l.Width(3); got != 220 {
		t.Errorf("stored width = %d, want 220", got)
	}

	l.SetWidth(3, 10)
	if got := l.Width(3); got != MinColumnWidth {
		t.Errorf("width below floor = %d, want %d", got, MinColumnWidth)
	}
}

func TestLayout_ResizeSession(t *testing.T) {
	l := NewLayout()

	if !l.StartResize(1, 300) {
		t.Fatal("StartResize refused with no active session")
	}

	// A second session cannot start while one is active.
	if l.StartResize(2, 500) {
		t.Error("second StartResize should be refused")
	}

	l.MoveResize(340)
	if got := l.Width(1); got != DefaultColumnWidth+40 {
		t.Errorf("width after move = %d, want %d", got, DefaultColumnWidth+40)
	}

	// Dragging far left clamps at the floor instead of going negative.
	l.MoveResize(0)
	if got := l.Width(1); got != MinColumnWidth {
		t.Errorf("width after hard-left drag = %d, want %d", got, MinColumnWidth)
	}

	l.EndResize()
	if _, active := l.Resizing(); active {
		t.Error("session should be released after EndResize")
	}

	// Moves outside a session are ignored.
	l.MoveResize(1000)
	if got := l.Width(1); got != MinColumnWidth {
		t.Errorf("width changed outside session: %d", got)
	}
}

func TestLayout_AutoFit(t *testing.T) {
	l := NewLayout()
	rows := []Row{
		{"Status": "Active"},
		{"Status": "Pending"},
	}

	got := l.AutoFit(0, "Status", rows)

	if got < AutoFitMinWidth || got > AutoFitMaxWidth {
		t.Fatalf("auto-fit width %d outside [%d,%d]", got, AutoFitMinWidth, AutoFitMaxWidth)
	}
	// "Pending" is the longest sample; the estimate must cover it.
	if min := len("Pending") * autoFitCharWidth; got < min {
		t.Errorf("auto-fit width %d below content width %d", got, min)
	}
	if l.Width(0) != got {
		t.Error("auto-fit result was not stored")
	}
}

func TestLayout_AutoFitClampsLongValues(t *testing.T) {
	l := NewLayout()
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	rows := []Row{{"notes": string(long)}}

	if got := l.AutoFit(0, "notes", rows); got != AutoFitMaxWidth {
		t.Errorf("auto-fit = %d, want clamp at %d", got, AutoFitMaxWidth)
	}
}

func TestLayout_AutoFitSamplesFirstHundredRows(t *testing.T) {
	l := NewLayout()
	rows := make([]Row, 150)
	for i := range rows {
		rows[i] = Row{"v": "ab"}
	}
	// A very long value beyond the sample window must not affect the fit.
	rows[120] = Row{"v": string(make([]byte, 300))}

	if got := l.AutoFit(0, "v", rows); got == AutoFitMaxWidth {
		t.Errorf("auto-fit sampled past the first %d rows", autoFitSampleRows)
	}
}

func TestLayout_DropColumnShiftsWidths(t *testing.T) {
	l := NewLayout()
	l.SetWidth(0, 100)
	l.SetWidth(1, 200)
	l.SetWidth(2, 300)

	l.DropColumn(1)

	if got := l.Width(0); got != 100 {
		t.Errorf("width(0) = %d, want 100", got)
	}
	if got := l.Width(1); got != 300 {
		t.Errorf("width(1) = %d, want shifted 300", got)
	}
	if got := l.Width(2); got != DefaultColumnWidth {
		t.Errorf("width(2) = %d, want default after shift", got)
	}
}
