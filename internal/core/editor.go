// internal/core/editor.go
package core

import (
	"time"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/clipboard"
	"github.com/bethropolis/tidecore/internal/core/cursor"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

const (
	DefaultTabWidth     = 4
	DefaultFoldDebounce = 150 * time.Millisecond
)

// Options configure an Editor.
type Options struct {
	HistoryDepth  int
	TabWidth      int
	FoldMode      fold.Mode
	AsyncFolds    bool          // derive folds on a background goroutine
	FoldDebounce  time.Duration // delay before a background derivation starts
	SearchHistory int
	SearchTimeout time.Duration

	Clipboard *clipboard.Manager // nil uses an in-process register
	Events    *event.Manager     // nil disables event dispatch
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HistoryDepth:  history.DefaultMaxHistory,
		TabWidth:      DefaultTabWidth,
		FoldMode:      fold.ModeIndent,
		FoldDebounce:  DefaultFoldDebounce,
		SearchHistory: find.DefaultHistorySize,
		SearchTimeout: find.DefaultTimeout,
	}
}

// Editor is one editing session: a buffer and the state derived from it.
// All structural changes go through ReplaceRange, which hands the
// resulting EditResult to every dependent. An Editor is not safe for
// concurrent use; only fold derivation may run in the background.
type Editor struct {
	buffer    buffer.Buffer
	history   *history.Manager
	cursors   *cursor.Set
	folds     *fold.Model
	deriver   *fold.Deriver // nil unless folds are derived asynchronously
	foldDelay time.Duration
	search    *find.Engine
	clipboard *clipboard.Manager
	events    *event.Manager

	// Open edit group; its edits share one undo snapshot.
	grouping      bool
	groupSnapshot string
	groupChanged  bool
}

// NewEditor creates an editor over buf. A nil buf starts an empty buffer.
func NewEditor(buf buffer.Buffer, opts Options) *Editor {
	if buf == nil {
		buf = buffer.NewSliceBuffer()
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewManager(nil)
	}

	e := &Editor{
		buffer:    buf,
		history:   history.NewManager(opts.HistoryDepth),
		folds:     fold.NewModel(opts.FoldMode, opts.TabWidth),
		foldDelay: opts.FoldDebounce,
		clipboard: opts.Clipboard,
		events:    opts.Events,
	}
	e.cursors = cursor.NewSet(buf)
	e.search = find.NewEngine(e, find.Options{
		HistorySize: opts.SearchHistory,
		Timeout:     opts.SearchTimeout,
	})
	if opts.AsyncFolds {
		e.deriver = fold.NewDeriver(opts.FoldMode, opts.TabWidth, opts.FoldDebounce)
	}
	logger.Debugf("Editor: created (fold mode %s, async folds %v)", opts.FoldMode, opts.AsyncFolds)
	return e
}

// Close stops background work.
func (e *Editor) Close() {
	if e.deriver != nil {
		e.deriver.Close()
	}
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.events = mgr
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// LoadFromText installs text as a freshly loaded document. History, search
// state and fold state are cleared, cursors reset and folds scheduled for
// derivation. path is an opaque label kept for the caller.
func (e *Editor) LoadFromText(text, path string) error {
	if err := e.buffer.SetContent(text, true); err != nil {
		return err
	}
	e.buffer.SetFilePath(path)
	e.history.Clear()
	e.cursors.Reset()
	_, hadQuery := e.search.Query()
	e.search.Reset()
	e.folds.Reset()
	e.requestFolds()

	logger.Infof("Editor: loaded %q (%d lines)", path, e.buffer.LineCount())
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path, Lines: e.buffer.LineCount()})
	if hadQuery {
		e.searchChanged()
	}
	return nil
}

// MarkSaved makes the current content the unmodified baseline.
func (e *Editor) MarkSaved() {
	e.buffer.MarkSaved()
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
}

func (e *Editor) Content() string  { return e.buffer.Content() }
func (e *Editor) Runes() []rune    { return e.buffer.Runes() }
func (e *Editor) Len() int         { return e.buffer.Len() }
func (e *Editor) Revision() uint64 { return e.buffer.Revision() }
func (e *Editor) IsModified() bool { return e.buffer.IsModified() }
func (e *Editor) FilePath() string { return e.buffer.FilePath() }
func (e *Editor) LineCount() int   { return e.buffer.LineCount() }
func (e *Editor) CanUndo() bool    { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool    { return e.history.CanRedo() }

// SetFilePath relabels the document.
func (e *Editor) SetFilePath(path string) {
	e.buffer.SetFilePath(path)
}

// dispatch is a no-op without an event manager.
func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.events != nil {
		e.events.Dispatch(t, data)
	}
}

// cursorMoved reports the primary caret after a cursor-only change.
func (e *Editor) cursorMoved() {
	if e.events == nil {
		return
	}
	pos, err := e.buffer.OffsetToPosition(e.cursors.Primary().Head)
	if err != nil {
		logger.Warnf("Editor: primary cursor off buffer: %v", err)
		return
	}
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{Primary: pos, Count: e.cursors.Len()})
}

// PositionOf converts a rune offset into a line/column position.
func (e *Editor) PositionOf(offset int) (types.Position, error) {
	return e.buffer.OffsetToPosition(offset)
}
