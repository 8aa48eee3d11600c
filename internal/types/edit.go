package types

import "strings"

// EditResult describes one applied buffer mutation. Every structural edit
// returns one, and dependents (history, cursors, folds, search) reconcile
// their derived state from it instead of re-reading shared state.
type EditResult struct {
	Start  int // Rune offset where the edit began
	OldEnd int // End of the replaced range, in pre-edit offsets
	NewEnd int // End of the inserted text, in post-edit offsets
	Delta  int // NewEnd - OldEnd

	StartLine int // Line containing Start
	LineDelta int // Newlines inserted minus newlines removed

	Removed  string
	Inserted string
}

// IsZero reports whether the result describes no change at all.
func (e EditResult) IsZero() bool {
	return e.Start == e.OldEnd && e.Inserted == ""
}

// TouchesLines reports whether the edit added or removed a line break.
func (e EditResult) TouchesLines() bool {
	return strings.ContainsRune(e.Removed, '\n') || strings.ContainsRune(e.Inserted, '\n')
}
