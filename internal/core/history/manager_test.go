package history

import (
	"testing"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edit applies one replacement the way the editor session does: snapshot
// first, then mutate.
func edit(t *testing.T, m *Manager, sb *buffer.SliceBuffer, start, end int, text string) {
	t.Helper()
	m.RecordBeforeMutation(sb.Content())
	_, err := sb.ReplaceRange(start, end, text)
	require.NoError(t, err)
}

func newBuffer(t *testing.T, text string) *buffer.SliceBuffer {
	t.Helper()
	sb := buffer.NewSliceBuffer()
	require.NoError(t, sb.SetContent(text, true))
	return sb
}

func TestUndoRestoresPreviousContent(t *testing.T) {
	sb := newBuffer(t, "abc")
	m := NewManager(10)

	edit(t, m, sb, 1, 2, "XYZ")
	assert.Equal(t, "aXYZc", sb.Content())
	assert.Equal(t, 1, m.UndoDepth())

	_, ok, err := m.Undo(sb)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", sb.Content())
	assert.True(t, m.CanRedo())

	_, ok, err = m.Redo(sb)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "aXYZc", sb.Content())
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	sb := newBuffer(t, "abc")
	m := NewManager(10)

	_, ok, err := m.Undo(sb)
	assert.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = m.Redo(sb)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "abc", sb.Content())
}

func TestNewEditClearsRedo(t *testing.T) {
	sb := newBuffer(t, "abc")
	m := NewManager(10)

	edit(t, m, sb, 0, 0, "1")
	_, _, err := m.Undo(sb)
	require.NoError(t, err)
	require.True(t, m.CanRedo())

	edit(t, m, sb, 3, 3, "2")
	assert.False(t, m.CanRedo())
	assert.Equal(t, "abc2", sb.Content())
}

func TestRoundTripSequence(t *testing.T) {
	sb := newBuffer(t, "the quick brown fox")
	m := NewManager(50)
	before := sb.Content()

	edits := []struct {
		start, end int
		text       string
	}{
		{0, 3, "a"},
		{2, 7, ""},
		{0, 0, "\n\n"},
		{5, 5, "jumps "},
		{1, 4, "ü"},
	}
	for _, e := range edits {
		edit(t, m, sb, e.start, e.end, e.text)
	}
	for range edits {
		_, ok, err := m.Undo(sb)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, before, sb.Content())
	assert.False(t, m.CanUndo())
	assert.Equal(t, len(edits), m.RedoDepth())
}

func TestEvictionDropsOldest(t *testing.T) {
	sb := newBuffer(t, "")
	m := NewManager(3)

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		edit(t, m, sb, sb.Len(), sb.Len(), s)
	}
	assert.Equal(t, 3, m.UndoDepth())

	for m.CanUndo() {
		_, _, err := m.Undo(sb)
		require.NoError(t, err)
	}
	assert.Equal(t, "ab", sb.Content(), "snapshots older than the depth limit are gone")
}

func TestClear(t *testing.T) {
	sb := newBuffer(t, "x")
	m := NewManager(0)
	edit(t, m, sb, 0, 1, "y")
	_, _, err := m.Undo(sb)
	require.NoError(t, err)
	edit(t, m, sb, 0, 1, "z")

	m.Clear()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}
