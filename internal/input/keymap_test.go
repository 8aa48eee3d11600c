package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"ctrl+s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionEvent{Action: ActionSave}},
		{"ctrl+z without mod", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModNone), ActionEvent{Action: ActionUndo}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'a'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'A'}},
		{"colon inserts", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: ':'}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: '\t'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionEvent{Action: ActionDeleteCharBackward}},
		{"shift+right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionEvent{Action: ActionMoveRight, Extend: true}},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionEvent{Action: ActionMoveRight}},
		{"shift+f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModShift), ActionEvent{Action: ActionFindPrevious}},
		{"alt+rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}
