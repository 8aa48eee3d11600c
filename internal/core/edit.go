package core

import (
	"fmt"
	"sort"

	"github.com/bethropolis/tidecore/internal/core/text"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// ReplaceRange replaces [start, end) with text. It is the only way content
// changes structurally: the pre-edit snapshot goes to the undo history and
// the resulting EditResult is reconciled into cursors, folds and search.
func (e *Editor) ReplaceRange(start, end int, text string) (types.EditResult, error) {
	snapshot := ""
	if !e.grouping {
		snapshot = e.buffer.Content()
	}
	edit, err := e.buffer.ReplaceRange(start, end, text)
	if err != nil {
		return types.EditResult{}, fmt.Errorf("replace [%d, %d): %w", start, end, err)
	}
	if edit.IsZero() {
		return edit, nil
	}
	if e.grouping {
		e.groupChanged = true
	} else {
		e.history.RecordBeforeMutation(snapshot)
	}
	e.reconcile(edit)
	return edit, nil
}

// reconcile feeds one applied edit to every dependent.
func (e *Editor) reconcile(edit types.EditResult) {
	e.cursors.Reposition(edit)
	e.folds.Reconcile(edit)
	e.search.Invalidate(edit)
	if e.folds.Dirty() {
		e.requestFolds()
	}
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit, Revision: e.buffer.Revision()})
}

// group runs fn with all its edits sharing a single undo snapshot. Groups
// do not nest; an inner call joins the outer group.
func (e *Editor) group(fn func() error) error {
	if e.grouping {
		return fn()
	}
	e.grouping = true
	e.groupSnapshot = e.buffer.Content()
	e.groupChanged = false
	defer func() {
		if e.groupChanged {
			e.history.RecordBeforeMutation(e.groupSnapshot)
		}
		e.grouping = false
		e.groupSnapshot = ""
	}()
	return fn()
}

// replaceSelections replaces each cursor's range with the text returned
// by fn, last range first so earlier offsets stay valid. fn returning
// false skips a range. Ranges that overlap a later one are clipped to it.
func (e *Editor) replaceSelections(fn func(r types.Range, i int) (string, bool)) error {
	ranges := e.cursors.Selections()
	return e.group(func() error {
		limit := e.buffer.Len()
		for i := len(ranges) - 1; i >= 0; i-- {
			r := ranges[i]
			if r.End > limit {
				r.End = limit
			}
			if r.Start > r.End {
				continue
			}
			replacement, ok := fn(r, i)
			if !ok {
				continue
			}
			if _, err := e.ReplaceRange(r.Start, r.End, replacement); err != nil {
				return err
			}
			limit = r.Start
		}
		return nil
	})
}

// InsertAtCursors types text at every cursor, replacing selections. Each
// cursor ends up as a caret after its inserted text.
func (e *Editor) InsertAtCursors(text string) error {
	err := e.replaceSelections(func(types.Range, int) (string, bool) { return text, true })
	e.cursors.CollapseToEnd()
	return err
}

// DeleteAtCursors deletes each selection, or one character before
// (after, if forward) each caret.
func (e *Editor) DeleteAtCursors(forward bool) error {
	n := e.buffer.Len()
	ranges := e.cursors.Selections()
	for i, r := range ranges {
		if !r.IsEmpty() {
			continue
		}
		switch {
		case forward && r.Start < n:
			ranges[i].End = r.Start + 1
		case !forward && r.Start > 0:
			ranges[i].Start = r.Start - 1
		}
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	err := e.group(func() error {
		limit := n
		for i := len(ranges) - 1; i >= 0; i-- {
			r := ranges[i]
			if r.End > limit {
				r.End = limit
			}
			if r.Start >= r.End {
				continue
			}
			if _, err := e.ReplaceRange(r.Start, r.End, ""); err != nil {
				return err
			}
			limit = r.Start
		}
		return nil
	})
	e.cursors.CollapseToEnd()
	return err
}

// Undo restores the previous snapshot. It reports false when there was
// nothing to undo.
func (e *Editor) Undo() (bool, error) {
	edit, ok, err := e.history.Undo(e.buffer)
	if err != nil || !ok {
		return false, err
	}
	e.reconcile(edit)
	return true, nil
}

// Redo re-applies the last undone change.
func (e *Editor) Redo() (bool, error) {
	edit, ok, err := e.history.Redo(e.buffer)
	if err != nil || !ok {
		return false, err
	}
	e.reconcile(edit)
	return true, nil
}

// ApplyTransform runs t over every non-empty selection, or over the whole
// document when nothing is selected. Unchanged text is left alone, so a
// transform that changes nothing records no undo step.
func (e *Editor) ApplyTransform(t text.Transform) error {
	if !e.cursors.HasSelection() {
		content := e.buffer.Content()
		out := t(content)
		if out == content {
			return nil
		}
		return e.restore(out)
	}

	runes := e.buffer.Runes()
	return e.replaceSelections(func(r types.Range, _ int) (string, bool) {
		if r.IsEmpty() {
			return "", false
		}
		in := string(runes[r.Start:r.End])
		out := t(in)
		return out, out != in
	})
}

// restore swaps in a whole new document as one undoable edit covering
// only the part that differs.
func (e *Editor) restore(text string) error {
	snapshot := e.buffer.Content()
	edit, err := e.buffer.Restore(text)
	if err != nil {
		return fmt.Errorf("restore document: %w", err)
	}
	if edit.IsZero() {
		return nil
	}
	if e.grouping {
		e.groupChanged = true
	} else {
		e.history.RecordBeforeMutation(snapshot)
	}
	logger.DebugTagf("core", "Document rewritten: [%d,%d) -> %d runes", edit.Start, edit.OldEnd, edit.NewEnd-edit.Start)
	e.reconcile(edit)
	return nil
}
