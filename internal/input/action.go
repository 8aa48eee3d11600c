// internal/input/action.go
package input

// Action represents an operation the key handler performs on the session.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit           // Esc; cancels command/find input first
	ActionForceQuit      // quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // beginning of line
	ActionMoveEnd  // end of line
	ActionSelectAll

	// --- Text Manipulation ---
	ActionInsertRune // requires Rune
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	// --- Search and Folds ---
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrevious
	ActionToggleFold

	// --- Editor Mode ---
	ActionEnterCommandMode
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
	Extend bool // Shift held on a movement key
}
