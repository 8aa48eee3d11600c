package modehandler

import (
	"unicode"

	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
)

// handleActionFind handles actions in ModeFind.
func (mh *ModeHandler) handleActionFind(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionInsertRune:
		mh.findBuffer = append(mh.findBuffer, ae.Rune)
	case input.ActionDeleteCharBackward:
		if len(mh.findBuffer) == 0 {
			mh.leaveInput()
			return true
		}
		mh.findBuffer = mh.findBuffer[:len(mh.findBuffer)-1]
	case input.ActionInsertNewLine:
		pattern := string(mh.findBuffer)
		mh.leaveInput()
		if pattern == "" {
			mh.editor.ClearSearch()
			return true
		}
		mh.startFind(pattern)
		return true
	case input.ActionQuit:
		mh.leaveInput()
		logger.Debugf("ModeHandler: Canceled Find Mode")
		return true
	default:
		return false
	}
	mh.statusBar.SetInput("/" + string(mh.findBuffer))
	return true
}

// startFind activates a literal search. The search is case-insensitive
// unless the pattern contains an upper-case letter.
func (mh *ModeHandler) startFind(pattern string) {
	q := find.Query{Pattern: pattern}
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			q.CaseSensitive = true
			break
		}
	}
	if err := mh.editor.SetQuery(q); err != nil {
		mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
		return
	}
	mh.executeFind(true)
}

// executeFind moves to the next or previous match of the active query.
func (mh *ModeHandler) executeFind(forward bool) {
	q, ok := mh.editor.Search().Query()
	if !ok {
		mh.statusBar.SetTemporaryMessage("No search term")
		return
	}
	var found bool
	if forward {
		_, found = mh.editor.FindNextFromCursor()
	} else {
		_, found = mh.editor.FindPreviousFromCursor()
	}
	if !found {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", q.Pattern)
		logger.Debugf("ModeHandler: Pattern not found: '%s'", q.Pattern)
		return
	}
	s := mh.editor.Search()
	mh.statusBar.SetTemporaryMessage("Match %d/%d", s.CurrentIndex()+1, s.MatchCount())
}
