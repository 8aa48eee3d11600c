package buffer

import (
	"testing"

	"github.com/bethropolis/tidecore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffer(t *testing.T, text string) *SliceBuffer {
	t.Helper()
	sb := NewSliceBuffer()
	require.NoError(t, sb.SetContent(text, true))
	return sb
}

func TestReplaceRangeInsertsAndReportsDelta(t *testing.T) {
	sb := newBuffer(t, "abc")

	edit, err := sb.ReplaceRange(1, 2, "XYZ")
	require.NoError(t, err)

	assert.Equal(t, "aXYZc", sb.Content())
	assert.Equal(t, 2, edit.Delta)
	assert.Equal(t, 1, edit.Start)
	assert.Equal(t, 2, edit.OldEnd)
	assert.Equal(t, 4, edit.NewEnd)
	assert.Equal(t, "b", edit.Removed)
	assert.Equal(t, "XYZ", edit.Inserted)
}

func TestReplaceRangeBounds(t *testing.T) {
	sb := newBuffer(t, "hello")

	tests := []struct {
		name       string
		start, end int
	}{
		{"start after end", 3, 2},
		{"end past length", 0, 6},
		{"negative start", -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sb.ReplaceRange(tt.start, tt.end, "x")
			assert.ErrorIs(t, err, ErrRangeOutOfBounds)
			assert.Equal(t, "hello", sb.Content(), "failed edit must not mutate")
		})
	}

	_, err := sb.ReplaceRange(5, 5, "!")
	assert.NoError(t, err, "insert at end of content is valid")
	assert.Equal(t, "hello!", sb.Content())
}

func TestOffsetsAreRunes(t *testing.T) {
	sb := newBuffer(t, "héllo wörld")
	assert.Equal(t, 11, sb.Len())

	_, err := sb.ReplaceRange(1, 2, "e")
	require.NoError(t, err)
	assert.Equal(t, "hello wörld", sb.Content())
}

func TestSetContentRejectsInvalidText(t *testing.T) {
	sb := newBuffer(t, "keep")

	assert.ErrorIs(t, sb.SetContent("bad\x00text", false), ErrInvalidEncoding)
	assert.ErrorIs(t, sb.SetContent(string([]byte{0xff, 0xfe}), false), ErrInvalidEncoding)
	_, err := sb.ReplaceRange(0, 0, "\x00")
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	assert.Equal(t, "keep", sb.Content())
}

func TestIsModifiedTracksBaseline(t *testing.T) {
	sb := newBuffer(t, "abc")
	assert.False(t, sb.IsModified())

	_, err := sb.ReplaceRange(0, 1, "z")
	require.NoError(t, err)
	assert.True(t, sb.IsModified())

	_, err = sb.ReplaceRange(0, 1, "a")
	require.NoError(t, err)
	assert.False(t, sb.IsModified(), "content equal to baseline is unmodified")

	require.NoError(t, sb.SetContent("other", false))
	assert.True(t, sb.IsModified(), "non-baseline SetContent keeps the old baseline")

	sb.MarkSaved()
	assert.False(t, sb.IsModified())
	assert.Equal(t, "other", sb.OriginalContent())
}

func TestRestoreUsesMinimalRange(t *testing.T) {
	sb := newBuffer(t, "one two three")

	edit, err := sb.Restore("one 2 three")
	require.NoError(t, err)

	assert.Equal(t, "one 2 three", sb.Content())
	assert.Equal(t, 4, edit.Start)
	assert.Equal(t, 7, edit.OldEnd)
	assert.Equal(t, "two", edit.Removed)
	assert.Equal(t, "2", edit.Inserted)
}

func TestRestoreRepeatedRunes(t *testing.T) {
	sb := newBuffer(t, "aaaa")

	edit, err := sb.Restore("aa")
	require.NoError(t, err)
	assert.Equal(t, "aa", sb.Content())
	assert.Equal(t, -2, edit.Delta)
	assert.Equal(t, 2, edit.Start)
}

func TestLineAccess(t *testing.T) {
	sb := newBuffer(t, "first\nsecond\n\nlast")

	assert.Equal(t, 4, sb.LineCount())
	line, err := sb.Line(1)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = sb.Line(2)
	require.NoError(t, err)
	assert.Equal(t, "", line)

	_, err = sb.Line(4)
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	pos, err := sb.OffsetToPosition(8)
	require.NoError(t, err)
	assert.Equal(t, types.Position{Line: 1, Col: 2}, pos)

	off, err := sb.PositionToOffset(types.Position{Line: 3, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, sb.Len(), off)

	_, err = sb.PositionToOffset(types.Position{Line: 0, Col: 6})
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestLineIndexFollowsEdits(t *testing.T) {
	sb := newBuffer(t, "a\nb")
	assert.Equal(t, 2, sb.LineCount())

	edit, err := sb.ReplaceRange(1, 1, "\nx\n")
	require.NoError(t, err)
	assert.Equal(t, 2, edit.LineDelta)
	assert.Equal(t, 0, edit.StartLine)
	assert.True(t, edit.TouchesLines())
	assert.Equal(t, 4, sb.LineCount())
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	sb := newBuffer(t, "x")
	rev := sb.Revision()

	_, err := sb.ReplaceRange(0, 0, "y")
	require.NoError(t, err)
	assert.Greater(t, sb.Revision(), rev)

	rev = sb.Revision()
	_, err = sb.ReplaceRange(5, 6, "")
	assert.Error(t, err)
	assert.Equal(t, rev, sb.Revision())
}
