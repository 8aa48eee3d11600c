// Package fold derives collapsible line regions from indentation or bracket
// structure and remembers which of them the user collapsed.
package fold

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// ErrUnknownRegion is returned when a region id no longer exists after a
// re-derivation.
var ErrUnknownRegion = errors.New("unknown fold region")

// RegionID identifies a region across re-derivations. It is a heuristic
// key: a region keeps its collapsed state if a region with the same start
// line and level is derived again.
type RegionID struct {
	StartLine int
	Level     int
}

// Region is a foldable run of lines, StartLine < EndLine. When collapsed
// only StartLine stays visible.
type Region struct {
	StartLine int
	EndLine   int
	Level     int
	Collapsed bool
}

func (r Region) ID() RegionID {
	return RegionID{StartLine: r.StartLine, Level: r.Level}
}

// Contains reports whether line falls inside the region, inclusive.
func (r Region) Contains(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// Model holds the derived regions and the collapsed set.
type Model struct {
	mode     Mode
	tabWidth int

	regions   []Region
	collapsed map[RegionID]bool
	dirty     bool
}

// NewModel creates an empty model. It starts dirty so the first Refresh
// derives regions.
func NewModel(mode Mode, tabWidth int) *Model {
	return &Model{
		mode:      mode,
		tabWidth:  tabWidth,
		collapsed: make(map[RegionID]bool),
		dirty:     true,
	}
}

func (m *Model) Mode() Mode    { return m.mode }
func (m *Model) TabWidth() int { return m.tabWidth }

// SetMode switches the structural cue and marks the model dirty.
func (m *Model) SetMode(mode Mode) {
	if m.mode != mode {
		m.mode = mode
		m.dirty = true
	}
}

// DeriveRegions rebuilds the region list from content. Collapsed state
// carries over to regions whose id survived; stale ids are forgotten.
// Calling it twice on the same content yields the same regions.
func (m *Model) DeriveRegions(content string) {
	regions, _ := derive(context.Background(), content, m.mode, m.tabWidth)
	m.install(regions)
}

// install swaps in a freshly derived region list.
func (m *Model) install(regions []Region) {
	next := make(map[RegionID]bool)
	for i := range regions {
		id := regions[i].ID()
		if m.collapsed[id] {
			regions[i].Collapsed = true
			next[id] = true
		}
	}
	m.regions = regions
	m.collapsed = next
	m.dirty = false
	logger.DebugTagf("fold", "Derived %d regions (%s), %d collapsed", len(regions), m.mode, len(next))
}

// Refresh re-derives only when the model is dirty. It reports whether a
// derivation ran.
func (m *Model) Refresh(content string) bool {
	if !m.dirty {
		return false
	}
	m.DeriveRegions(content)
	return true
}

// Reset forgets all regions and collapsed state, as for a new document.
func (m *Model) Reset() {
	m.regions = nil
	m.collapsed = make(map[RegionID]bool)
	m.dirty = true
}

// MarkDirty flags that structure may have changed.
func (m *Model) MarkDirty() { m.dirty = true }

// Dirty reports whether the regions may be stale.
func (m *Model) Dirty() bool { return m.dirty }

// Affects reports whether an edit can change fold structure. Plain
// character edits inside a line do not, so typing does not trigger a
// re-derivation.
func (m *Model) Affects(edit types.EditResult) bool {
	if edit.IsZero() {
		return false
	}
	if edit.TouchesLines() {
		return true
	}
	cues := " \t"
	if m.mode == ModeBracket {
		cues = "()[]{}"
	}
	return strings.ContainsAny(edit.Inserted, cues) || strings.ContainsAny(edit.Removed, cues)
}

// Reconcile consumes an edit. Line numbers after the edit are shifted so
// regions and remembered collapsed state keep pointing at the same text
// until the next derivation; the model is marked dirty if the edit is
// structural.
func (m *Model) Reconcile(edit types.EditResult) {
	if edit.IsZero() {
		return
	}
	if edit.LineDelta != 0 {
		m.shiftLines(edit)
	}
	if m.Affects(edit) {
		m.dirty = true
	}
}

// shiftLine maps a line number through an edit. Lines removed by the edit
// report false.
func shiftLine(line int, edit types.EditResult) (int, bool) {
	if line <= edit.StartLine {
		return line, true
	}
	if edit.LineDelta < 0 && line <= edit.StartLine-edit.LineDelta {
		return edit.StartLine, false
	}
	return line + edit.LineDelta, true
}

func (m *Model) shiftLines(edit types.EditResult) {
	next := make(map[RegionID]bool, len(m.collapsed))
	for id := range m.collapsed {
		if line, ok := shiftLine(id.StartLine, edit); ok {
			next[RegionID{StartLine: line, Level: id.Level}] = true
		}
	}
	m.collapsed = next

	kept := m.regions[:0]
	for _, r := range m.regions {
		start, ok := shiftLine(r.StartLine, edit)
		if !ok {
			continue
		}
		end, _ := shiftLine(r.EndLine, edit)
		if start >= end {
			continue
		}
		r.StartLine, r.EndLine = start, end
		kept = append(kept, r)
	}
	m.regions = kept
}

// Regions returns a copy of the regions ordered by start line, outer
// regions first.
func (m *Model) Regions() []Region {
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}

func (m *Model) find(id RegionID) (int, error) {
	for i, r := range m.regions {
		if r.ID() == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: line %d level %d", ErrUnknownRegion, id.StartLine, id.Level)
}

// Toggle flips the collapsed state of a region.
func (m *Model) Toggle(id RegionID) error {
	i, err := m.find(id)
	if err != nil {
		return err
	}
	m.setCollapsed(i, !m.regions[i].Collapsed)
	return nil
}

// SetCollapsed sets the collapsed state of a region.
func (m *Model) SetCollapsed(id RegionID, collapsed bool) error {
	i, err := m.find(id)
	if err != nil {
		return err
	}
	m.setCollapsed(i, collapsed)
	return nil
}

func (m *Model) setCollapsed(i int, collapsed bool) {
	m.regions[i].Collapsed = collapsed
	id := m.regions[i].ID()
	if collapsed {
		m.collapsed[id] = true
	} else {
		delete(m.collapsed, id)
	}
}

// ExpandAll expands every region.
func (m *Model) ExpandAll() {
	for i := range m.regions {
		m.setCollapsed(i, false)
	}
}

// CollapseAll collapses every region.
func (m *Model) CollapseAll() {
	for i := range m.regions {
		m.setCollapsed(i, true)
	}
}

// CollapseLevel collapses regions at or above nesting level and expands the
// deeper ones.
func (m *Model) CollapseLevel(level int) {
	for i := range m.regions {
		m.setCollapsed(i, m.regions[i].Level <= level)
	}
}

// ExpandLevel expands regions at or above nesting level.
func (m *Model) ExpandLevel(level int) {
	for i := range m.regions {
		if m.regions[i].Level <= level {
			m.setCollapsed(i, false)
		}
	}
}

// RegionsAt returns the regions containing line, outermost first.
func (m *Model) RegionsAt(line int) []Region {
	var out []Region
	for _, r := range m.regions {
		if r.Contains(line) {
			out = append(out, r)
		}
	}
	return out
}

// VisibleLines lists the lines not hidden inside a collapsed region.
func (m *Model) VisibleLines(lineCount int) []int {
	hidden := make([]bool, lineCount)
	for _, r := range m.regions {
		if !r.Collapsed {
			continue
		}
		for l := r.StartLine + 1; l <= r.EndLine && l < lineCount; l++ {
			hidden[l] = true
		}
	}
	out := make([]int, 0, lineCount)
	for l, h := range hidden {
		if !h {
			out = append(out, l)
		}
	}
	return out
}
