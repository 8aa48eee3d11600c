package core

import (
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Cursors returns all cursors ordered by start offset.
func (e *Editor) Cursors() []cursor.Cursor {
	return e.cursors.Cursors()
}

// PrimaryCursor returns the cursor that navigation and search follow.
func (e *Editor) PrimaryCursor() cursor.Cursor {
	return e.cursors.Primary()
}

// AddCursor adds a caret at offset.
func (e *Editor) AddCursor(offset int) error {
	if err := e.cursors.AddCursor(offset); err != nil {
		return err
	}
	e.cursorMoved()
	return nil
}

// AddSelection adds a cursor selecting from anchor to head.
func (e *Editor) AddSelection(anchor, head int) error {
	if err := e.cursors.AddSelection(anchor, head); err != nil {
		return err
	}
	e.cursorMoved()
	return nil
}

// MoveCursor moves the cursor at index to offset, extending its selection
// when extend is set.
func (e *Editor) MoveCursor(index, offset int, extend bool) error {
	if err := e.cursors.MoveCursor(index, offset, extend); err != nil {
		return err
	}
	e.cursorMoved()
	return nil
}

// MoveCursorTo moves the primary cursor to a line/column position.
func (e *Editor) MoveCursorTo(pos types.Position, extend bool) error {
	offset, err := e.buffer.PositionToOffset(pos)
	if err != nil {
		return err
	}
	return e.MoveCursor(e.cursors.PrimaryIndex(), offset, extend)
}

// MoveCursors shifts every cursor head by delta runes, clamped to the
// document.
func (e *Editor) MoveCursors(delta int, extend bool) {
	e.cursors.MoveAll(delta, extend)
	logger.DebugTagf("core", "MoveCursors: delta %d, %d cursor(s)", delta, e.cursors.Len())
	e.cursorMoved()
}

// RemoveCursor removes the cursor at index; the last cursor cannot go.
func (e *Editor) RemoveCursor(index int) error {
	if err := e.cursors.RemoveCursor(index); err != nil {
		return err
	}
	e.cursorMoved()
	return nil
}

// ClearSecondaryCursors keeps only the primary cursor.
func (e *Editor) ClearSecondaryCursors() {
	e.cursors.ClearSecondary()
	e.cursorMoved()
}
