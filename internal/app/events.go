package app

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/event"
)

// subscribeStatus keeps the status bar in step with the session.
func (a *App) subscribeStatus() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferChangedForStatus)
	a.eventManager.Subscribe(event.TypeSearchChanged, a.handleSearchChangedForStatus)
	a.eventManager.Subscribe(event.TypeFoldsChanged, a.handleFoldsChangedForStatus)
}

func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.Primary, data.Count)
	}
	return false // Not consumed
}

// handleBufferChangedForStatus refreshes file and cursor info; edits move
// cursors without a CursorMoved event.
func (a *App) handleBufferChangedForStatus(e event.Event) bool {
	a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
	if pos, err := a.editor.PositionOf(a.editor.PrimaryCursor().Head); err == nil {
		a.statusBar.SetCursorInfo(pos, len(a.editor.Cursors()))
	}
	return false
}

func (a *App) handleSearchChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.SearchChangedData); ok {
		a.statusBar.SetSearchInfo(data.Matches, data.Current)
	}
	return false
}

func (a *App) handleFoldsChangedForStatus(e event.Event) bool {
	data, ok := e.Data.(event.FoldsChangedData)
	if !ok {
		return false
	}
	switch {
	case data.Regions == 0:
		a.statusBar.SetFoldInfo("")
	case data.Collapsed == 0:
		a.statusBar.SetFoldInfo(fmt.Sprintf("%d folds", data.Regions))
	default:
		a.statusBar.SetFoldInfo(fmt.Sprintf("%d folds, %d collapsed", data.Regions, data.Collapsed))
	}
	return false
}
