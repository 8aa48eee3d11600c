// Package cursor manages the primary cursor plus any secondary cursors and
// selections, kept valid against the buffer across edits.
package cursor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

var (
	// ErrOutOfRange is returned for offsets outside [0, len(content)] and for
	// unknown cursor indices.
	ErrOutOfRange = errors.New("cursor out of range")
	// ErrLastCursor is returned when removing the only remaining cursor.
	ErrLastCursor = errors.New("cannot remove the last cursor")
)

// Bounds is what the cursor set needs from the buffer.
type Bounds interface {
	Len() int
}

// record is one slot in the cursor arena. IDs survive sorting and merging
// so the primary flag follows the right cursor.
type record struct {
	id int
	Cursor
}

// Set is an ordered collection of cursors, sorted by start offset, with
// exactly one primary. Indices passed to and returned from Set methods
// refer to that sorted order.
type Set struct {
	bounds  Bounds
	records []record
	primary int // id of the primary record
	nextID  int
}

// NewSet creates a set holding a single primary caret at offset 0.
func NewSet(bounds Bounds) *Set {
	s := &Set{bounds: bounds}
	s.Reset()
	return s
}

// Reset drops every cursor and leaves one primary caret at offset 0.
func (s *Set) Reset() {
	s.records = s.records[:0]
	s.primary = s.push(Caret(0))
	logger.DebugTagf("cursor", "Reset to single cursor")
}

func (s *Set) push(c Cursor) int {
	id := s.nextID
	s.nextID++
	s.records = append(s.records, record{id: id, Cursor: c})
	return id
}

func (s *Set) inBounds(offset int) bool {
	return offset >= 0 && offset <= s.bounds.Len()
}

func (s *Set) checkIndex(index int) error {
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("%w: cursor index %d (have %d)", ErrOutOfRange, index, len(s.records))
	}
	return nil
}

// AddCursor adds a caret at offset. Adding one where a caret already sits
// is a no-op.
func (s *Set) AddCursor(offset int) error {
	return s.AddSelection(offset, offset)
}

// AddSelection adds a secondary cursor selecting from anchor to head.
func (s *Set) AddSelection(anchor, head int) error {
	if !s.inBounds(anchor) || !s.inBounds(head) {
		return fmt.Errorf("%w: [%d, %d] in buffer of length %d", ErrOutOfRange, anchor, head, s.bounds.Len())
	}
	c := Cursor{Anchor: anchor, Head: head}
	for _, r := range s.records {
		if r.Cursor == c {
			return nil
		}
	}
	s.push(c)
	s.normalize()
	logger.DebugTagf("cursor", "Added cursor %v, now %d", c, len(s.records))
	return nil
}

// MoveCursor moves the head of the cursor at index. Without extend the
// anchor follows, collapsing any selection.
func (s *Set) MoveCursor(index, offset int, extend bool) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if !s.inBounds(offset) {
		return fmt.Errorf("%w: offset %d in buffer of length %d", ErrOutOfRange, offset, s.bounds.Len())
	}
	r := &s.records[index]
	r.Head = offset
	if !extend {
		r.Anchor = offset
	}
	s.normalize()
	return nil
}

// MoveAll shifts every head by delta, clamped to the buffer.
func (s *Set) MoveAll(delta int, extend bool) {
	limit := s.bounds.Len()
	for i := range s.records {
		r := &s.records[i]
		r.Head = clamp(r.Head+delta, 0, limit)
		if !extend {
			r.Anchor = r.Head
		}
	}
	s.normalize()
}

// CollapseToEnd turns every selection into a caret at its end.
func (s *Set) CollapseToEnd() {
	for i := range s.records {
		end := s.records[i].End()
		s.records[i].Cursor = Caret(end)
	}
	s.normalize()
}

// RemoveCursor removes the cursor at index. If it was primary, the cursor
// now at the same index (or the last one) becomes primary.
func (s *Set) RemoveCursor(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if len(s.records) == 1 {
		return ErrLastCursor
	}
	wasPrimary := s.records[index].id == s.primary
	s.records = append(s.records[:index], s.records[index+1:]...)
	if wasPrimary {
		if index >= len(s.records) {
			index = len(s.records) - 1
		}
		s.primary = s.records[index].id
	}
	s.assertInvariants()
	return nil
}

// ClearSecondary keeps only the primary cursor.
func (s *Set) ClearSecondary() {
	idx := s.PrimaryIndex()
	s.records = []record{s.records[idx]}
}

// SetPrimary marks the cursor at index as primary.
func (s *Set) SetPrimary(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.primary = s.records[index].id
	return nil
}

// SelectRanges replaces all cursors with one selection per range. The
// first range becomes primary. An empty list leaves the set unchanged.
func (s *Set) SelectRanges(ranges []types.Range) error {
	if len(ranges) == 0 {
		return nil
	}
	for _, rg := range ranges {
		if rg.Start > rg.End || !s.inBounds(rg.Start) || !s.inBounds(rg.End) {
			return fmt.Errorf("%w: range [%d, %d)", ErrOutOfRange, rg.Start, rg.End)
		}
	}
	s.records = s.records[:0]
	for i, rg := range ranges {
		id := s.push(Cursor{Anchor: rg.Start, Head: rg.End})
		if i == 0 {
			s.primary = id
		}
	}
	s.normalize()
	return nil
}

// Len returns the number of cursors.
func (s *Set) Len() int {
	return len(s.records)
}

// PrimaryIndex returns the index of the primary cursor.
func (s *Set) PrimaryIndex() int {
	for i, r := range s.records {
		if r.id == s.primary {
			return i
		}
	}
	panic("cursor: primary cursor missing from set")
}

// Primary returns the primary cursor.
func (s *Set) Primary() Cursor {
	return s.records[s.PrimaryIndex()].Cursor
}

// Cursors returns a copy of all cursors in order.
func (s *Set) Cursors() []Cursor {
	out := make([]Cursor, len(s.records))
	for i, r := range s.records {
		out[i] = r.Cursor
	}
	return out
}

// Selections returns the normalized ranges of all cursors in order.
func (s *Set) Selections() []types.Range {
	out := make([]types.Range, len(s.records))
	for i, r := range s.records {
		out[i] = r.Range()
	}
	return out
}

// HasSelection reports whether any cursor selects text.
func (s *Set) HasSelection() bool {
	for _, r := range s.records {
		if r.IsSelection() {
			return true
		}
	}
	return false
}

// Reposition applies an edit to every cursor endpoint, then merges any
// cursors the edit collapsed together.
func (s *Set) Reposition(edit types.EditResult) {
	for i := range s.records {
		s.records[i].Cursor = s.records[i].Reposition(edit)
	}
	s.normalize()
}

// Clamp forces every endpoint into the current buffer bounds. Used when
// content is replaced without an edit description.
func (s *Set) Clamp() {
	limit := s.bounds.Len()
	for i := range s.records {
		r := &s.records[i]
		r.Anchor = clamp(r.Anchor, 0, limit)
		r.Head = clamp(r.Head, 0, limit)
	}
	s.normalize()
}

// MergeOverlapping sorts the cursors and collapses any two whose ranges
// overlap or start at the same offset. The merged cursor keeps the primary
// flag if either had it.
func (s *Set) MergeOverlapping() {
	sort.SliceStable(s.records, func(i, j int) bool {
		a, b := s.records[i], s.records[j]
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() < b.End()
	})

	merged := s.records[:0]
	for _, r := range s.records {
		if len(merged) == 0 {
			merged = append(merged, r)
			continue
		}
		last := &merged[len(merged)-1]
		if r.Start() < last.End() || r.Start() == last.Start() {
			*last = s.merge(*last, r)
			continue
		}
		merged = append(merged, r)
	}
	if dropped := len(s.records) - len(merged); dropped > 0 {
		logger.DebugTagf("cursor", "Merged %d overlapping cursor(s)", dropped)
	}
	s.records = merged
}

// merge unions two overlapping records. The keeper (primary if either is,
// else the earlier one) donates its id and direction.
func (s *Set) merge(a, b record) record {
	keeper := a
	if b.id == s.primary {
		keeper = b
	}
	start, end := a.Start(), a.End()
	if b.Start() < start {
		start = b.Start()
	}
	if b.End() > end {
		end = b.End()
	}
	if keeper.Backward() {
		return record{id: keeper.id, Cursor: Cursor{Anchor: end, Head: start}}
	}
	return record{id: keeper.id, Cursor: Cursor{Anchor: start, Head: end}}
}

func (s *Set) normalize() {
	s.MergeOverlapping()
	s.assertInvariants()
}

// assertInvariants panics when the set is corrupt. Reaching it means a
// caller fed an edit that does not match the buffer, which is a bug.
func (s *Set) assertInvariants() {
	limit := s.bounds.Len()
	primaries := 0
	for i, r := range s.records {
		if r.Anchor < 0 || r.Anchor > limit || r.Head < 0 || r.Head > limit {
			panic(fmt.Sprintf("cursor: %v outside buffer of length %d", r.Cursor, limit))
		}
		if i > 0 && s.records[i-1].Start() > r.Start() {
			panic("cursor: set is not sorted")
		}
		if r.id == s.primary {
			primaries++
		}
	}
	if primaries != 1 {
		panic(fmt.Sprintf("cursor: %d primary cursors", primaries))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
