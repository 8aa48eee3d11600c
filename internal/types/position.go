// internal/types/position.go
package types

// Position is a line/column location in the buffer.
// Line is the 0-based line index.
// Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int
}

// Range is a half-open [Start, End) span of rune offsets.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no runes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside [Start, End).
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}
