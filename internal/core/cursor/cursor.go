package cursor

import "github.com/bethropolis/tidecore/internal/types"

// Cursor is a caret or a selection. Anchor == Head is a plain caret;
// otherwise the selection runs from Anchor to Head (Head may be before
// Anchor for a backward selection).
type Cursor struct {
	Anchor int
	Head   int
}

// Caret returns a degenerate cursor at offset.
func Caret(offset int) Cursor {
	return Cursor{Anchor: offset, Head: offset}
}

// Start returns the smaller endpoint.
func (c Cursor) Start() int {
	if c.Anchor < c.Head {
		return c.Anchor
	}
	return c.Head
}

// End returns the larger endpoint.
func (c Cursor) End() int {
	if c.Anchor > c.Head {
		return c.Anchor
	}
	return c.Head
}

// IsSelection reports whether the cursor covers any text.
func (c Cursor) IsSelection() bool {
	return c.Anchor != c.Head
}

// Backward reports whether the head precedes the anchor.
func (c Cursor) Backward() bool {
	return c.Head < c.Anchor
}

// Range returns the normalized selected range.
func (c Cursor) Range() types.Range {
	return types.Range{Start: c.Start(), End: c.End()}
}

// RepositionOffset maps an offset through an edit:
//   - a pure insertion shifts offsets at or after the insertion point
//   - otherwise offsets at or before the edit start are unchanged, offsets
//     at or after the old end shift by the delta and offsets inside the
//     replaced range clamp to the edit start
func RepositionOffset(p int, edit types.EditResult) int {
	if edit.Start == edit.OldEnd {
		if p >= edit.Start {
			return p + edit.Delta
		}
		return p
	}
	switch {
	case p <= edit.Start:
		return p
	case p >= edit.OldEnd:
		return p + edit.Delta
	default:
		return edit.Start
	}
}

// Reposition maps both endpoints through an edit.
func (c Cursor) Reposition(edit types.EditResult) Cursor {
	return Cursor{
		Anchor: RepositionOffset(c.Anchor, edit),
		Head:   RepositionOffset(c.Head, edit),
	}
}
