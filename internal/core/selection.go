package core

import (
	"github.com/bethropolis/tidecore/internal/types"
)

// HasSelection returns true if any cursor selects text.
func (e *Editor) HasSelection() bool {
	return e.cursors.HasSelection()
}

// Selections returns the normalized range of every cursor.
func (e *Editor) Selections() []types.Range {
	return e.cursors.Selections()
}

// SelectedText returns the text under each non-empty selection, in
// document order.
func (e *Editor) SelectedText() []string {
	runes := e.buffer.Runes()
	var out []string
	for _, r := range e.cursors.Selections() {
		if !r.IsEmpty() {
			out = append(out, string(runes[r.Start:r.End]))
		}
	}
	return out
}

// SelectAll replaces the cursors with a single selection of the document.
func (e *Editor) SelectAll() {
	_ = e.cursors.SelectRanges([]types.Range{{Start: 0, End: e.buffer.Len()}})
	e.cursorMoved()
}

// SelectLine selects line, including its trailing newline if any.
func (e *Editor) SelectLine(line int) error {
	start, err := e.buffer.LineStart(line)
	if err != nil {
		return err
	}
	end := e.buffer.Len()
	if line+1 < e.buffer.LineCount() {
		if end, err = e.buffer.LineStart(line + 1); err != nil {
			return err
		}
	}
	if err := e.cursors.SelectRanges([]types.Range{{Start: start, End: end}}); err != nil {
		return err
	}
	e.cursorMoved()
	return nil
}
