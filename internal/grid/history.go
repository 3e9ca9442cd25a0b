package grid

// History is a linear undo/redo stack of full snapshots. The cursor
// points at the currently active snapshot; pushing truncates everything
// after the cursor, so there is no redo tree.
type History struct {
	snapshots []Snapshot
	cursor    int
	unsaved   bool
}

// NewHistory creates a history seeded with the initial snapshot. The
// seed is position zero and is never considered an unsaved change.
func NewHistory(initial Snapshot) *History {
	return &History{
		snapshots: []Snapshot{initial.Clone()},
		cursor:    0,
	}
}

// Push records a new snapshot after a content or structural change.
// Any snapshots beyond the cursor are discarded first.
func (h *History) Push(snap Snapshot) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snap.Clone())
	h.cursor = len(h.snapshots) - 1
	h.unsaved = true
}

// Undo steps the cursor back one snapshot and returns it. The second
// return is false when already at the oldest snapshot.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor <= 0 {
		return Snapshot{}, false
	}
	h.cursor--
	h.unsaved = h.cursor > 0
	return h.snapshots[h.cursor].Clone(), true
}

// Redo steps the cursor forward one snapshot and returns it. The second
// return is false when already at the newest snapshot.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return Snapshot{}, false
	}
	h.cursor++
	h.unsaved = true
	return h.snapshots[h.cursor].Clone(), true
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Unsaved reports whether the active snapshot differs from the last
// saved state.
func (h *History) Unsaved() bool { return h.unsaved }

// MarkSaved clears the unsaved flag after a successful save.
func (h *History) MarkSaved() { h.unsaved = false }

// Len returns the number of snapshots currently held.
func (h *History) Len() int { return len(h.snapshots) }
