package app

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/tui"
	"github.com/gdamore/tcell/v2"
)

const statusBarHeight = 1

// Run opens the terminal and edits interactively until quit.
func (a *App) Run() error {
	t, err := tui.New()
	if err != nil {
		return fmt.Errorf("TUI initialization failed: %w", err)
	}
	return a.RunWith(t)
}

// RunWith edits interactively on t, closing it on return. Key handling,
// drawing and fold updates all happen on the calling goroutine.
func (a *App) RunWith(t *tui.TUI) error {
	a.tuiManager = t
	defer t.Close()

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := t.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("Ctrl+S Save | Ctrl+E Command | Ctrl+F Find | ESC Quit")
	a.drawEditor()

	for {
		select {
		case <-a.quit:
			logger.Infof("App: quitting")
			return nil
		case ev := <-events:
			a.handleTermEvent(ev)
		case <-a.editor.FoldsReady():
			if a.editor.PollFolds() {
				a.drawEditor()
			}
		}
	}
}

func (a *App) handleTermEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
	case *tcell.EventKey:
		a.modeHandler.HandleKeyEvent(ev)
		a.idle()
	default:
		return
	}
	select {
	case <-a.quit:
		return
	default:
	}
	a.drawEditor()
}

// pageSize is the number of text rows on screen.
func (a *App) pageSize() int {
	if a.tuiManager == nil {
		return 10
	}
	_, h := a.tuiManager.Size()
	if h -= statusBarHeight; h < 1 {
		return 1
	}
	return h
}

// drawEditor clears the screen and redraws all components.
func (a *App) drawEditor() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := height - statusBarHeight
	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d", width, height, viewHeight)

	a.tuiManager.Clear()
	a.painter.Draw(screen, a.editor, viewHeight)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}
