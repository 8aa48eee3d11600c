package core

import (
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Copy puts the selected text on the clipboard, one piece per selection.
// It reports false when nothing is selected.
func (e *Editor) Copy() bool {
	pieces := e.SelectedText()
	if len(pieces) == 0 {
		return false
	}
	e.clipboard.Copy(pieces)
	return true
}

// Cut copies the selections and deletes them as one undo step.
func (e *Editor) Cut() (bool, error) {
	if !e.Copy() {
		return false, nil
	}
	err := e.replaceSelections(func(r types.Range, _ int) (string, bool) {
		return "", !r.IsEmpty()
	})
	e.cursors.CollapseToEnd()
	return err == nil, err
}

// Paste inserts the clipboard at every cursor, replacing selections. A
// clipboard copied from as many cursors as there are now is pasted piece
// by piece.
func (e *Editor) Paste() (bool, error) {
	pieces := e.clipboard.PasteFor(e.cursors.Len())
	empty := true
	for _, p := range pieces {
		if p != "" {
			empty = false
			break
		}
	}
	if empty {
		logger.DebugTagf("core", "Paste: clipboard empty")
		return false, nil
	}
	err := e.replaceSelections(func(_ types.Range, i int) (string, bool) {
		return pieces[i], true
	})
	e.cursors.CollapseToEnd()
	return err == nil, err
}
