package modehandler

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/types"
)

// visibleRow returns the index of line in visible. A line hidden in a
// collapsed region maps to the visible line above it.
func visibleRow(visible []int, line int) int {
	i := sort.SearchInts(visible, line)
	if (i == len(visible) || visible[i] != line) && i > 0 {
		i--
	}
	return i
}

// moveVertical moves the primary cursor by steps visible lines, keeping
// its column where the target line allows.
func (mh *ModeHandler) moveVertical(steps int, extend bool) error {
	ed := mh.editor
	pos, err := ed.PositionOf(ed.PrimaryCursor().Head)
	if err != nil {
		return err
	}
	visible := ed.VisibleLines()
	if len(visible) == 0 {
		return nil
	}
	row := visibleRow(visible, pos.Line) + steps
	if row < 0 {
		row = 0
	}
	if row >= len(visible) {
		row = len(visible) - 1
	}
	return mh.moveTo(visible[row], pos.Col, extend)
}

// moveInLine moves the primary cursor to col on its line; a negative col
// means the end of the line.
func (mh *ModeHandler) moveInLine(col int, extend bool) error {
	pos, err := mh.editor.PositionOf(mh.editor.PrimaryCursor().Head)
	if err != nil {
		return err
	}
	return mh.moveTo(pos.Line, col, extend)
}

func (mh *ModeHandler) moveTo(line, col int, extend bool) error {
	text, err := mh.editor.GetBuffer().Line(line)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(text); col < 0 || col > n {
		col = n
	}
	return mh.editor.MoveCursorTo(types.Position{Line: line, Col: col}, extend)
}
