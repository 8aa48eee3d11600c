package core

import (
	"context"

	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Search exposes the engine for history and query inspection.
func (e *Editor) Search() *find.Engine {
	return e.search
}

// SetQuery activates q. On error the previous search stays active.
func (e *Editor) SetQuery(q find.Query) error {
	return e.SetQueryContext(context.Background(), q)
}

// SetQueryContext is SetQuery with a cancellable scan.
func (e *Editor) SetQueryContext(ctx context.Context, q find.Query) error {
	if err := e.search.SetQueryContext(ctx, q); err != nil {
		return err
	}
	e.searchChanged()
	return nil
}

func (e *Editor) Matches() []types.Range { return e.search.Matches() }

// CurrentMatch returns the current match, if any.
func (e *Editor) CurrentMatch() (types.Range, bool) {
	return e.search.CurrentMatch()
}

// FindNextFromCursor selects the first match at or after the end of the
// primary selection, wrapping around the document.
func (e *Editor) FindNextFromCursor() (types.Range, bool) {
	m, ok := e.search.FindNext(e.cursors.Primary().End())
	if ok {
		e.selectPrimary(m)
	}
	e.searchChanged()
	return m, ok
}

// FindPreviousFromCursor selects the last match ending at or before the
// start of the primary selection, wrapping around the document.
func (e *Editor) FindPreviousFromCursor() (types.Range, bool) {
	m, ok := e.search.FindPrevious(e.cursors.Primary().Start())
	if ok {
		e.selectPrimary(m)
	}
	e.searchChanged()
	return m, ok
}

// ReplaceCurrent replaces the current match as one undo step and selects
// the match that follows it.
func (e *Editor) ReplaceCurrent(replacement string) (bool, error) {
	var replaced bool
	err := e.group(func() error {
		var err error
		replaced, err = e.search.ReplaceCurrent(replacement)
		return err
	})
	if m, ok := e.search.CurrentMatch(); ok {
		e.selectPrimary(m)
	}
	e.searchChanged()
	return replaced, err
}

// ReplaceAll replaces every match as one undo step.
func (e *Editor) ReplaceAll(replacement string) (int, error) {
	var count int
	err := e.group(func() error {
		var err error
		count, err = e.search.ReplaceAll(replacement)
		return err
	})
	if count > 0 {
		logger.Infof("Editor: replaced %d match(es)", count)
	}
	e.searchChanged()
	return count, err
}

// SelectAllMatches puts a selection on every match. It returns the number
// of cursors created; zero leaves the cursors as they were.
func (e *Editor) SelectAllMatches() (int, error) {
	matches := e.search.Matches()
	if len(matches) == 0 {
		return 0, nil
	}
	if err := e.cursors.SelectRanges(matches); err != nil {
		return 0, err
	}
	e.cursorMoved()
	return e.cursors.Len(), nil
}

// ClearSearch drops the active query. History is kept.
func (e *Editor) ClearSearch() {
	e.search.Reset()
	e.searchChanged()
}

// selectPrimary makes r the primary cursor's selection.
func (e *Editor) selectPrimary(r types.Range) {
	e.cursors.ClearSecondary()
	if err := e.cursors.MoveCursor(0, r.Start, false); err != nil {
		logger.Warnf("Editor: cannot select match %v: %v", r, err)
		return
	}
	if err := e.cursors.MoveCursor(0, r.End, true); err != nil {
		logger.Warnf("Editor: cannot select match %v: %v", r, err)
		return
	}
	e.cursorMoved()
}

func (e *Editor) searchChanged() {
	if e.events == nil {
		return
	}
	q, _ := e.search.Query()
	e.dispatch(event.TypeSearchChanged, event.SearchChangedData{
		Pattern: q.Pattern,
		Matches: e.search.MatchCount(),
		Current: e.search.CurrentIndex(),
	})
}
