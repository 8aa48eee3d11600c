// internal/buffer/slice_buffer.go
package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// SliceBuffer keeps the document as a flat rune slice. It is the single
// source of truth for content; nothing else holds a second copy.
type SliceBuffer struct {
	content  []rune
	original string // Baseline from the last load/save
	filePath string // Opaque label owned by the file-I/O collaborator
	revision uint64

	lineStarts []int // Lazily rebuilt; nil means stale
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		content: []rune{},
	}
}

// validateText rejects data the buffer cannot hold as text.
func validateText(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidEncoding)
	}
	if i := strings.IndexByte(text, 0); i >= 0 {
		return fmt.Errorf("%w: embedded NUL at byte %d", ErrInvalidEncoding, i)
	}
	return nil
}

// SetContent replaces the content wholesale. When baseline is true the new
// text also becomes the load/save baseline used by IsModified.
func (sb *SliceBuffer) SetContent(text string, baseline bool) error {
	if err := validateText(text); err != nil {
		return err
	}
	sb.content = []rune(text)
	if baseline {
		sb.original = text
	}
	sb.touch()
	logger.DebugTagf("buffer", "SetContent: %d runes (baseline=%v)", len(sb.content), baseline)
	return nil
}

// ReplaceRange is the single structural mutation primitive. It replaces
// [start, end) with text and reports what changed.
func (sb *SliceBuffer) ReplaceRange(start, end int, text string) (types.EditResult, error) {
	if start < 0 || start > end || end > len(sb.content) {
		return types.EditResult{}, fmt.Errorf("%w: [%d, %d) in buffer of length %d",
			ErrRangeOutOfBounds, start, end, len(sb.content))
	}
	if err := validateText(text); err != nil {
		return types.EditResult{}, err
	}

	startPos, _ := sb.OffsetToPosition(start)
	removed := string(sb.content[start:end])
	inserted := []rune(text)

	next := make([]rune, 0, len(sb.content)-(end-start)+len(inserted))
	next = append(next, sb.content[:start]...)
	next = append(next, inserted...)
	next = append(next, sb.content[end:]...)
	sb.content = next
	sb.touch()

	edit := types.EditResult{
		Start:     start,
		OldEnd:    end,
		NewEnd:    start + len(inserted),
		Delta:     len(inserted) - (end - start),
		StartLine: startPos.Line,
		LineDelta: strings.Count(text, "\n") - strings.Count(removed, "\n"),
		Removed:   removed,
		Inserted:  text,
	}
	logger.DebugTagf("buffer", "ReplaceRange [%d,%d) -> %d runes, delta %d", start, end, len(inserted), edit.Delta)
	return edit, nil
}

// Restore swaps in a complete snapshot. The change is expressed as the
// smallest differing middle range so observers can reposition instead of
// collapsing everything to offset zero.
func (sb *SliceBuffer) Restore(text string) (types.EditResult, error) {
	if err := validateText(text); err != nil {
		return types.EditResult{}, err
	}
	target := []rune(text)

	prefix := 0
	for prefix < len(sb.content) && prefix < len(target) && sb.content[prefix] == target[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(sb.content)-prefix && suffix < len(target)-prefix &&
		sb.content[len(sb.content)-1-suffix] == target[len(target)-1-suffix] {
		suffix++
	}

	return sb.ReplaceRange(prefix, len(sb.content)-suffix, string(target[prefix:len(target)-suffix]))
}

// MarkSaved makes the current content the new baseline.
func (sb *SliceBuffer) MarkSaved() {
	sb.original = string(sb.content)
}

// Content returns the full text.
func (sb *SliceBuffer) Content() string {
	return string(sb.content)
}

// OriginalContent returns the load/save baseline.
func (sb *SliceBuffer) OriginalContent() string {
	return sb.original
}

// Runes returns a copy of the content as runes.
func (sb *SliceBuffer) Runes() []rune {
	out := make([]rune, len(sb.content))
	copy(out, sb.content)
	return out
}

// Len returns the content length in runes.
func (sb *SliceBuffer) Len() int {
	return len(sb.content)
}

// Slice returns the text in [start, end).
func (sb *SliceBuffer) Slice(start, end int) (string, error) {
	if start < 0 || start > end || end > len(sb.content) {
		return "", fmt.Errorf("%w: [%d, %d) in buffer of length %d",
			ErrRangeOutOfBounds, start, end, len(sb.content))
	}
	return string(sb.content[start:end]), nil
}

// IsModified reports whether the content differs from the baseline.
func (sb *SliceBuffer) IsModified() bool {
	return string(sb.content) != sb.original
}

// Revision increases on every mutation. Background work compares it to
// decide whether its result still applies.
func (sb *SliceBuffer) Revision() uint64 {
	return sb.revision
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

func (sb *SliceBuffer) SetFilePath(path string) {
	sb.filePath = path
}

// --- Line Access ---

func (sb *SliceBuffer) touch() {
	sb.revision++
	sb.lineStarts = nil
}

func (sb *SliceBuffer) lines() []int {
	if sb.lineStarts == nil {
		starts := []int{0}
		for i, r := range sb.content {
			if r == '\n' {
				starts = append(starts, i+1)
			}
		}
		sb.lineStarts = starts
	}
	return sb.lineStarts
}

// LineCount returns the number of lines. An empty buffer has one line.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines())
}

// LineStart returns the offset of the first rune of line index.
func (sb *SliceBuffer) LineStart(index int) (int, error) {
	starts := sb.lines()
	if index < 0 || index >= len(starts) {
		return 0, fmt.Errorf("%w: line %d (0-%d)", ErrRangeOutOfBounds, index, len(starts)-1)
	}
	return starts[index], nil
}

// lineEnd returns the offset just before the line's terminating newline.
func (sb *SliceBuffer) lineEnd(index int) int {
	starts := sb.lines()
	if index+1 < len(starts) {
		return starts[index+1] - 1
	}
	return len(sb.content)
}

// Line returns the text of line index without its newline.
func (sb *SliceBuffer) Line(index int) (string, error) {
	start, err := sb.LineStart(index)
	if err != nil {
		return "", err
	}
	return string(sb.content[start:sb.lineEnd(index)]), nil
}

// OffsetToPosition converts a rune offset to a line/column position.
func (sb *SliceBuffer) OffsetToPosition(offset int) (types.Position, error) {
	if offset < 0 || offset > len(sb.content) {
		return types.Position{}, fmt.Errorf("%w: offset %d in buffer of length %d",
			ErrRangeOutOfBounds, offset, len(sb.content))
	}
	starts := sb.lines()
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return types.Position{Line: lo, Col: offset - starts[lo]}, nil
}

// PositionToOffset converts a line/column position to a rune offset.
// Columns past the end of the line are rejected rather than clamped.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) (int, error) {
	start, err := sb.LineStart(pos.Line)
	if err != nil {
		return 0, err
	}
	if pos.Col < 0 || start+pos.Col > sb.lineEnd(pos.Line) {
		return 0, fmt.Errorf("%w: column %d on line %d", ErrRangeOutOfBounds, pos.Col, pos.Line)
	}
	return start + pos.Col, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
