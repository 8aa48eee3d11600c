package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	noop := func([]string) error { return nil }

	require.NoError(t, r.Register("b", noop))
	require.NoError(t, r.Register("a", noop))
	assert.Error(t, r.Register("a", noop))
	assert.Error(t, r.Register("", noop))
	assert.Error(t, r.Register("c", nil))
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry()
	var got []string
	require.NoError(t, r.Register("echo", func(args []string) error {
		got = args
		return nil
	}))
	require.NoError(t, r.Register("s", func(args []string) error {
		got = args
		return nil
	}))
	boom := errors.New("boom")
	require.NoError(t, r.Register("fail", func([]string) error { return boom }))

	require.NoError(t, r.Execute(":echo  one   two "))
	assert.Equal(t, []string{"one", "two"}, got)

	require.NoError(t, r.Execute("s/a b/c d/g"))
	assert.Equal(t, []string{"/a b/c d/g"}, got)

	assert.NoError(t, r.Execute("   "))
	assert.ErrorIs(t, r.Execute("missing"), ErrUnknownCommand)
	assert.ErrorIs(t, r.Execute("fail"), boom)
}

type session struct {
	ed   *core.Editor
	reg  *Registry
	msgs []string
}

func newSession(t *testing.T, content string) *session {
	t.Helper()
	s := &session{ed: core.NewEditor(nil, core.DefaultOptions()), reg: NewRegistry()}
	t.Cleanup(s.ed.Close)
	require.NoError(t, s.ed.LoadFromText(content, "test.txt"))
	RegisterEditorCommands(s.reg, s.ed, func(format string, args ...interface{}) {
		s.msgs = append(s.msgs, fmt.Sprintf(format, args...))
	})
	return s
}

func (s *session) run(t *testing.T, lines ...string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, s.reg.Execute(l), l)
	}
}

func (s *session) lastMsg() string {
	if len(s.msgs) == 0 {
		return ""
	}
	return s.msgs[len(s.msgs)-1]
}

func TestSubstituteCommand(t *testing.T) {
	s := newSession(t, "foo bar foo bar")
	s.run(t, "s/foo bar/X/g")
	assert.Equal(t, "X X", s.ed.Content())
	assert.Equal(t, "Replaced 2 occurrence(s)", s.lastMsg())

	s.run(t, "undo")
	assert.Equal(t, "foo bar foo bar", s.ed.Content())

	s = newSession(t, "foo")
	s.run(t, "s/o/0/")
	assert.Equal(t, "f0o", s.ed.Content())

	assert.Error(t, s.reg.Execute("s/x"))
}

func TestFindCommands(t *testing.T) {
	s := newSession(t, "a b a b")
	s.run(t, "find b")
	assert.Equal(t, "Match 1 of 2", s.lastMsg())
	assert.Equal(t, []string{"b"}, s.ed.SelectedText())

	s.run(t, "next")
	assert.Equal(t, "Match 2 of 2", s.lastMsg())
	assert.Equal(t, 7, s.ed.PrimaryCursor().End())

	s.run(t, "select-matches")
	assert.Equal(t, "2 cursor(s)", s.lastMsg())
	s.run(t, "insert c")
	assert.Equal(t, "a c a c", s.ed.Content())

	s.run(t, "find -i A")
	assert.Contains(t, s.lastMsg(), " of 2")
	assert.Equal(t, []string{"a"}, s.ed.SelectedText())
	assert.Error(t, s.reg.Execute("find -x a"))
}

func TestUndoRedoCount(t *testing.T) {
	s := newSession(t, "abc")
	s.run(t, "insert x", "insert y")
	assert.Equal(t, "xyabc", s.ed.Content())

	s.run(t, "undo 5")
	assert.Equal(t, "abc", s.ed.Content())
	assert.Equal(t, "Undo: 2 step(s)", s.lastMsg())

	s.run(t, "redo")
	assert.Equal(t, "xabc", s.ed.Content())
	s.run(t, "redo", "redo")
	assert.Equal(t, "Redo: nothing to do", s.lastMsg())
	assert.Error(t, s.reg.Execute("undo zero"))
}

func TestCursorCommands(t *testing.T) {
	s := newSession(t, "ab\ncdef")
	s.run(t, "goto 2:3")
	assert.Equal(t, 5, s.ed.PrimaryCursor().Head)
	assert.Error(t, s.reg.Execute("goto 0"))

	s.run(t, "select-line")
	assert.Equal(t, []string{"cdef"}, s.ed.SelectedText())

	s.run(t, "select-all")
	assert.Equal(t, []string{"ab\ncdef"}, s.ed.SelectedText())
}

func TestInsertEscapesAndDelete(t *testing.T) {
	s := newSession(t, "")
	s.run(t, `insert a\nb\tc`)
	assert.Equal(t, "a\nb\tc", s.ed.Content())

	s.run(t, "delete", "goto 1:1", "delete-forward")
	assert.Equal(t, "\nb\t", s.ed.Content())
}

func TestTransformCommands(t *testing.T) {
	s := newSession(t, "ab\ncd")
	s.run(t, "select-line 1", "upper")
	assert.Equal(t, "AB\ncd", s.ed.Content())
	assert.Equal(t, "Applied upper", s.lastMsg())

	s.run(t, "goto 1:1", "transform upper")
	assert.Equal(t, "AB\nCD", s.ed.Content())

	s.run(t, "transform upper")
	assert.Equal(t, "upper: no change", s.lastMsg())

	s.run(t, "indent 2")
	assert.Equal(t, "  AB\n  CD", s.ed.Content())

	assert.Error(t, s.reg.Execute("transform nope"))
	assert.Error(t, s.reg.Execute("transform"))
}

func TestFoldCommands(t *testing.T) {
	s := newSession(t, "a:\n  b\n  c\nd:\n  e\n")
	s.run(t, "fold 1")
	assert.Equal(t, []int{0, 3, 4, 5}, s.ed.VisibleLines())

	s.run(t, "unfold-all")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.ed.VisibleLines())

	s.run(t, "fold-all")
	assert.Equal(t, []int{0, 3, 5}, s.ed.VisibleLines())

	s.run(t, "fold-mode bracket")
	assert.Equal(t, "Fold mode: bracket", s.lastMsg())
	assert.Error(t, s.reg.Execute("fold-mode spiral"))
	assert.Error(t, s.reg.Execute("fold-level x"))
}

func TestClipboardAndDiffCommands(t *testing.T) {
	s := newSession(t, "ab\ncd")
	s.run(t, "diff")
	assert.Equal(t, "No unsaved changes", s.lastMsg())

	s.run(t, "copy")
	assert.Equal(t, "Nothing selected", s.lastMsg())

	s.run(t, "select-line 1", "cut")
	assert.Equal(t, "cd", s.ed.Content())

	s.run(t, "diff")
	assert.Equal(t, "1 changed line(s)", s.lastMsg())

	s.run(t, "paste")
	assert.Equal(t, "ab\ncd", s.ed.Content())
}

func TestChangedLines(t *testing.T) {
	d := "--- a (saved)\n+++ a\n@@ -1,2 +1,2 @@\n-x\n+y\n z\n"
	assert.Equal(t, 2, changedLines(d))
}
