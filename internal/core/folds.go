package core

import (
	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
)

// requestFolds schedules a background derivation when folds are async.
// Synchronous folds are derived lazily on the next read.
func (e *Editor) requestFolds() {
	if e.deriver != nil {
		e.deriver.Request(e.buffer.Content(), e.buffer.Revision())
	}
}

// FoldRegions returns the current fold regions. With synchronous folding
// they are re-derived first if an edit made them stale; with background
// folding any finished proposal is installed.
func (e *Editor) FoldRegions() []fold.Region {
	if e.deriver != nil {
		e.PollFolds()
	} else {
		e.RefreshFolds()
	}
	return e.folds.Regions()
}

// RefreshFolds derives regions now if they are stale, ignoring any
// background deriver. It reports whether a derivation ran.
func (e *Editor) RefreshFolds() bool {
	if !e.folds.Refresh(e.buffer.Content()) {
		return false
	}
	e.foldsChanged()
	return true
}

// PollFolds installs a finished background proposal. A proposal for an
// older revision is discarded and a new derivation requested.
func (e *Editor) PollFolds() bool {
	if e.deriver == nil {
		return false
	}
	p, ok := e.deriver.Poll()
	if !ok {
		return false
	}
	if !e.folds.Apply(p, e.buffer.Revision()) {
		e.requestFolds()
		return false
	}
	e.foldsChanged()
	return true
}

// FoldsReady is signalled when a background proposal can be polled. It is
// nil with synchronous folding.
func (e *Editor) FoldsReady() <-chan struct{} {
	if e.deriver == nil {
		return nil
	}
	return e.deriver.Ready()
}

// ToggleFold flips the collapsed state of the region with id. Stale
// regions are re-derived first, so id is looked up in the current structure.
func (e *Editor) ToggleFold(id fold.RegionID) error {
	e.FoldRegions()
	if err := e.folds.Toggle(id); err != nil {
		return err
	}
	e.foldsChanged()
	return nil
}

// ToggleFoldAt toggles the innermost region containing line.
func (e *Editor) ToggleFoldAt(line int) error {
	e.FoldRegions()
	regions := e.folds.RegionsAt(line)
	if len(regions) == 0 {
		return fold.ErrUnknownRegion
	}
	return e.ToggleFold(regions[len(regions)-1].ID())
}

func (e *Editor) CollapseAllFolds() {
	e.FoldRegions()
	e.folds.CollapseAll()
	e.foldsChanged()
}

func (e *Editor) ExpandAllFolds() {
	e.FoldRegions()
	e.folds.ExpandAll()
	e.foldsChanged()
}

// CollapseFoldLevel collapses regions at level and shallower and expands
// deeper ones.
func (e *Editor) CollapseFoldLevel(level int) {
	e.FoldRegions()
	e.folds.CollapseLevel(level)
	e.foldsChanged()
}

// SetFoldMode switches between indent and bracket folding.
func (e *Editor) SetFoldMode(mode fold.Mode) {
	if e.folds.Mode() == mode {
		return
	}
	e.folds.SetMode(mode)
	if e.deriver != nil {
		e.deriver.Close()
		e.deriver = fold.NewDeriver(mode, e.folds.TabWidth(), e.foldDelay)
		e.requestFolds()
	}
	logger.DebugTagf("core", "Fold mode set to %s", mode)
}

// VisibleLines lists the lines not hidden inside collapsed regions.
func (e *Editor) VisibleLines() []int {
	e.FoldRegions()
	return e.folds.VisibleLines(e.buffer.LineCount())
}

func (e *Editor) foldsChanged() {
	if e.events == nil {
		return
	}
	regions := e.folds.Regions()
	collapsed := 0
	for _, r := range regions {
		if r.Collapsed {
			collapsed++
		}
	}
	e.dispatch(event.TypeFoldsChanged, event.FoldsChangedData{Regions: len(regions), Collapsed: collapsed})
}
