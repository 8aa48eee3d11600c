package modehandler

import (
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
)

// handleActionNormal handles actions in ModeNormal.
func (mh *ModeHandler) handleActionNormal(ae input.ActionEvent) bool {
	ed := mh.editor
	processed := true
	var err error

	switch ae.Action {
	// --- Mode Switching ---
	case input.ActionEnterCommandMode:
		mh.setMode(ModeCommand)
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetInput(":")
	case input.ActionEnterFindMode:
		mh.setMode(ModeFind)
		mh.findBuffer = mh.findBuffer[:0]
		mh.statusBar.SetInput("/")

	// --- Quit/Save ---
	case input.ActionQuit:
		if ed.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.quit()
		return false
	case input.ActionForceQuit:
		mh.quit()
		return false
	case input.ActionSave:
		if err := mh.save(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Buffer saved to %s", ed.FilePath())
		}

	// --- Movement ---
	case input.ActionMoveLeft:
		ed.MoveCursors(-1, ae.Extend)
	case input.ActionMoveRight:
		ed.MoveCursors(1, ae.Extend)
	case input.ActionMoveUp:
		err = mh.moveVertical(-1, ae.Extend)
	case input.ActionMoveDown:
		err = mh.moveVertical(1, ae.Extend)
	case input.ActionMovePageUp:
		err = mh.moveVertical(-mh.pageSize(), ae.Extend)
	case input.ActionMovePageDown:
		err = mh.moveVertical(mh.pageSize(), ae.Extend)
	case input.ActionMoveHome:
		err = mh.moveInLine(0, ae.Extend)
	case input.ActionMoveEnd:
		err = mh.moveInLine(-1, ae.Extend)
	case input.ActionSelectAll:
		ed.SelectAll()

	// --- Text Modification ---
	case input.ActionInsertRune:
		err = ed.InsertAtCursors(string(ae.Rune))
	case input.ActionInsertNewLine:
		err = ed.InsertAtCursors("\n")
	case input.ActionDeleteCharBackward:
		err = ed.DeleteAtCursors(false)
	case input.ActionDeleteCharForward:
		err = ed.DeleteAtCursors(true)
	case input.ActionUndo:
		var ok bool
		if ok, err = ed.Undo(); err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		var ok bool
		if ok, err = ed.Redo(); err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// --- Clipboard ---
	case input.ActionCopy:
		if ed.Copy() {
			mh.statusBar.SetTemporaryMessage("Selection copied")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionCut:
		var ok bool
		if ok, err = ed.Cut(); err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}
	case input.ActionPaste:
		var ok bool
		if ok, err = ed.Paste(); err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
		}

	// --- Search and Folds ---
	case input.ActionFindNext:
		mh.executeFind(true)
	case input.ActionFindPrevious:
		mh.executeFind(false)
	case input.ActionToggleFold:
		mh.toggleFold()

	default:
		processed = false
	}

	if err != nil {
		logger.Debugf("ModeHandler: %v failed: %v", ae.Action, err)
		mh.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	if processed {
		mh.forceQuitPending = false
	}
	return processed
}

func (mh *ModeHandler) toggleFold() {
	pos, err := mh.editor.PositionOf(mh.editor.PrimaryCursor().Head)
	if err != nil {
		return
	}
	if err := mh.editor.ToggleFoldAt(pos.Line); err != nil {
		mh.statusBar.SetTemporaryMessage("No fold at line %d", pos.Line+1)
	}
}
