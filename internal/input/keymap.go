// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action
type ModKeymap map[tcell.ModMask]Keymap // keys combined with modifiers

// InputProcessor translates tcell events into ActionEvents. Modes are not
// handled here; the mode handler interprets actions per mode.
type InputProcessor struct {
	keymap    Keymap
	modKeymap ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertRune
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyF3] = ActionFindNext

	ctrlMap := Keymap{
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlQ: ActionForceQuit,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlC: ActionCopy,
		tcell.KeyCtrlX: ActionCut,
		tcell.KeyCtrlV: ActionPaste,
		tcell.KeyCtrlA: ActionSelectAll,
		tcell.KeyCtrlF: ActionEnterFindMode,
		tcell.KeyCtrlN: ActionFindNext,
		tcell.KeyCtrlP: ActionFindPrevious,
		tcell.KeyCtrlK: ActionToggleFold,
		tcell.KeyCtrlE: ActionEnterCommandMode,
	}
	p.modKeymap[tcell.ModCtrl] = ctrlMap
	p.modKeymap[tcell.ModShift] = Keymap{tcell.KeyF3: ActionFindPrevious}
}

// ProcessEvent returns the ActionEvent for a key event.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// 1. Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Control keys arrive both with and without ModCtrl depending on the
	// terminal; KeyCtrlS alone already implies it.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 2. Simple keys; Shift only extends movement.
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			ae := ActionEvent{Action: action, Extend: mod == tcell.ModShift && isMovement(action)}
			if key == tcell.KeyTab {
				ae.Rune = '\t'
			}
			return ae
		}
	}

	// 3. Plain runes are insertion requests.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}

	return ActionEvent{Action: ActionUnknown}
}

func isMovement(a Action) bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMovePageUp, ActionMovePageDown, ActionMoveHome, ActionMoveEnd:
		return true
	}
	return false
}
