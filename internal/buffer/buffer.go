// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tidecore/internal/types"
)

var (
	// ErrRangeOutOfBounds is returned when a requested offset or range does
	// not fit the current content. It is always a caller bug.
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	// ErrInvalidEncoding is returned when text handed to the buffer is not
	// valid UTF-8 or carries an embedded NUL.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Buffer defines the text buffer operations the editor core relies on.
// Offsets are rune indices into the content.
type Buffer interface {
	SetContent(text string, baseline bool) error
	ReplaceRange(start, end int, text string) (types.EditResult, error)
	Restore(text string) (types.EditResult, error)
	MarkSaved()

	Content() string
	OriginalContent() string
	Runes() []rune
	Len() int
	Slice(start, end int) (string, error)
	IsModified() bool
	Revision() uint64

	LineCount() int
	Line(index int) (string, error)
	LineStart(index int) (int, error)
	OffsetToPosition(offset int) (types.Position, error)
	PositionToOffset(pos types.Position) (int, error)

	FilePath() string
	SetFilePath(path string)
}
