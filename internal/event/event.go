// internal/event/event.go
package event

import "github.com/bethropolis/tidecore/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Buffer lifecycle
	TypeBufferModified // content changed through ReplaceRange, Undo or Redo
	TypeBufferLoaded   // LoadFromText installed new content
	TypeBufferSaved    // MarkSaved reset the modification baseline

	// Derived state
	TypeCursorMoved   // cursor set changed without a content change
	TypeSearchChanged // query or current match changed
	TypeFoldsChanged  // fold regions re-derived or collapsed state toggled

	// Application
	TypeAppReady // plugins initialized, first document loaded
	TypeIdle     // a command or key finished; edits in between are complete
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeBufferLoaded:   "BufferLoaded",
	TypeBufferSaved:    "BufferSaved",
	TypeCursorMoved:    "CursorMoved",
	TypeSearchChanged:  "SearchChanged",
	TypeFoldsChanged:   "FoldsChanged",
	TypeAppReady:       "AppReady",
	TypeIdle:           "Idle",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the applied edit.
type BufferModifiedData struct {
	Edit     types.EditResult
	Revision uint64
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
	Lines    int
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData holds the primary caret position.
type CursorMovedData struct {
	Primary types.Position
	Count   int
}

// SearchChangedData describes the search state after a change.
type SearchChangedData struct {
	Pattern string
	Matches int
	Current int // -1 when no match is current
}

// FoldsChangedData reports the number of regions and collapsed ones.
type FoldsChangedData struct {
	Regions   int
	Collapsed int
}
