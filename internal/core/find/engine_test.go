package find

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, text string) (*Engine, *buffer.SliceBuffer) {
	t.Helper()
	sb := buffer.NewSliceBuffer()
	require.NoError(t, sb.SetContent(text, true))
	return NewEngine(sb, Options{HistorySize: 5}), sb
}

func literal(p string) Query {
	return Query{Pattern: p, CaseSensitive: true}
}

func TestWholeWordScenario(t *testing.T) {
	e, _ := newEngine(t, "cat cats catalog")

	require.NoError(t, e.SetQuery(literal("cat")))
	assert.Equal(t, []types.Range{{Start: 0, End: 3}, {Start: 4, End: 7}, {Start: 9, End: 12}}, e.Matches())

	q := literal("cat")
	q.WholeWord = true
	require.NoError(t, e.SetQuery(q))
	assert.Equal(t, []types.Range{{Start: 0, End: 3}}, e.Matches())
}

func TestWholeWordSkipsToLaterMatch(t *testing.T) {
	e, _ := newEngine(t, "xfoo foo_bar foo.")
	q := literal("foo")
	q.WholeWord = true
	require.NoError(t, e.SetQuery(q))
	assert.Equal(t, []types.Range{{Start: 13, End: 16}}, e.Matches())
}

func TestLiteralSearchIsComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("ab ")
	for i := 0; i < 200; i++ {
		text := make([]rune, rng.Intn(40))
		for j := range text {
			text[j] = alphabet[rng.Intn(len(alphabet))]
		}
		e, _ := newEngine(t, string(text))
		require.NoError(t, e.SetQuery(literal("ab")))

		var want []types.Range
		s := string(text)
		for off := 0; ; {
			k := strings.Index(s[off:], "ab")
			if k < 0 {
				break
			}
			want = append(want, types.Range{Start: off + k, End: off + k + 2})
			off += k + 2
		}
		assert.Equal(t, len(want), e.MatchCount(), "text %q", s)
		if len(want) > 0 {
			assert.Equal(t, want, e.Matches(), "text %q", s)
		}
	}
}

func TestLiteralEscapesRegexSyntax(t *testing.T) {
	e, _ := newEngine(t, "a.b axb (a.b)")
	require.NoError(t, e.SetQuery(literal("a.b")))
	assert.Equal(t, []types.Range{{Start: 0, End: 3}, {Start: 9, End: 12}}, e.Matches())
}

func TestCaseInsensitive(t *testing.T) {
	e, _ := newEngine(t, "Go go GO")
	require.NoError(t, e.SetQuery(Query{Pattern: "go"}))
	assert.Equal(t, 3, e.MatchCount())
}

func TestRegexQueryUsesRuneOffsets(t *testing.T) {
	e, _ := newEngine(t, "héllo\nwörld 42")
	require.NoError(t, e.SetQuery(Query{Pattern: `^w\w+`, IsRegex: true, CaseSensitive: true}))
	assert.Equal(t, []types.Range{{Start: 6, End: 11}}, e.Matches())
}

func TestInvalidPatternKeepsState(t *testing.T) {
	e, _ := newEngine(t, "one two one")
	require.NoError(t, e.SetQuery(literal("one")))
	_, ok := e.FindNext(0)
	require.True(t, ok)

	err := e.SetQuery(Query{Pattern: "(unclosed", IsRegex: true})
	assert.ErrorIs(t, err, ErrInvalidPattern)

	q, _ := e.Query()
	assert.Equal(t, "one", q.Pattern)
	assert.Equal(t, 2, e.MatchCount())
	assert.Equal(t, 0, e.CurrentIndex())
	assert.Len(t, e.History(), 1, "failed queries are not recorded")

	assert.ErrorIs(t, e.SetQuery(literal("")), ErrEmptyQuery)
}

func TestCancelledScanKeepsState(t *testing.T) {
	e, _ := newEngine(t, "one two one")
	require.NoError(t, e.SetQuery(literal("one")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.SetQueryContext(ctx, literal("two"))
	assert.ErrorIs(t, err, context.Canceled)

	q, _ := e.Query()
	assert.Equal(t, "one", q.Pattern)
}

func TestFindNextWrapsAround(t *testing.T) {
	e, _ := newEngine(t, "x x x")
	require.NoError(t, e.SetQuery(literal("x")))
	matches := e.Matches()
	require.Len(t, matches, 3)

	from := matches[0].Start
	var got []types.Range
	for i := 0; i < len(matches)+1; i++ {
		r, ok := e.FindNext(from)
		require.True(t, ok)
		got = append(got, r)
		from = r.End
	}
	assert.Equal(t, matches[0], got[len(got)-1])
	assert.Equal(t, matches, got[:3])
}

func TestFindPrevious(t *testing.T) {
	e, _ := newEngine(t, "ab ab ab")
	require.NoError(t, e.SetQuery(literal("ab")))

	r, ok := e.FindPrevious(5)
	require.True(t, ok)
	assert.Equal(t, types.Range{Start: 3, End: 5}, r)

	r, ok = e.FindPrevious(1)
	require.True(t, ok)
	assert.Equal(t, types.Range{Start: 6, End: 8}, r, "wraps to the last match")
}

func TestNextPrevious(t *testing.T) {
	e, _ := newEngine(t, "a a")
	require.NoError(t, e.SetQuery(literal("a")))

	r, _ := e.Next()
	assert.Equal(t, 0, r.Start)
	r, _ = e.Next()
	assert.Equal(t, 2, r.Start)
	r, _ = e.Next()
	assert.Equal(t, 0, r.Start)
	r, _ = e.Previous()
	assert.Equal(t, 2, r.Start)
}

func TestNoMatchIsNotAnError(t *testing.T) {
	e, _ := newEngine(t, "abc")
	require.NoError(t, e.SetQuery(literal("zzz")))

	_, ok := e.FindNext(0)
	assert.False(t, ok)
	_, ok = e.CurrentMatch()
	assert.False(t, ok)

	n, err := e.ReplaceAll("y")
	require.NoError(t, err)
	assert.Zero(t, n)

	replaced, err := e.ReplaceCurrent("y")
	require.NoError(t, err)
	assert.False(t, replaced)
}

func TestMatchesFollowEdits(t *testing.T) {
	e, sb := newEngine(t, "foo bar foo")
	require.NoError(t, e.SetQuery(literal("foo")))
	_, ok := e.FindNext(8)
	require.True(t, ok)
	require.Equal(t, 1, e.CurrentIndex())

	edit, err := sb.ReplaceRange(8, 11, "baz")
	require.NoError(t, err)
	e.Invalidate(edit)

	assert.Equal(t, []types.Range{{Start: 0, End: 3}}, e.Matches())
	assert.Equal(t, 0, e.CurrentIndex(), "current index is clamped when matches shrink")

	// A revision change is noticed even without Invalidate.
	_, err = sb.ReplaceRange(0, 3, "xxx")
	require.NoError(t, err)
	assert.Empty(t, e.Matches())
	assert.Equal(t, -1, e.CurrentIndex())
}

func TestReplaceCurrentAdvances(t *testing.T) {
	e, sb := newEngine(t, "a1 a2 a3")
	require.NoError(t, e.SetQuery(literal("a")))
	_, ok := e.FindNext(3)
	require.True(t, ok)

	replaced, err := e.ReplaceCurrent("bb")
	require.NoError(t, err)
	require.True(t, replaced)

	assert.Equal(t, "a1 bb2 a3", sb.Content())
	cur, ok := e.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, types.Range{Start: 7, End: 8}, cur)
}

func TestReplaceCurrentWithoutCurrentUsesFirst(t *testing.T) {
	e, sb := newEngine(t, "aaa")
	require.NoError(t, e.SetQuery(literal("a")))

	_, err := e.ReplaceCurrent("b")
	require.NoError(t, err)
	assert.Equal(t, "baa", sb.Content())

	cur, _ := e.CurrentMatch()
	assert.Equal(t, types.Range{Start: 1, End: 2}, cur)
}

func TestReplaceCurrentWrapsAfterLast(t *testing.T) {
	e, sb := newEngine(t, "a b a")
	require.NoError(t, e.SetQuery(literal("a")))
	_, _ = e.FindNext(4)

	_, err := e.ReplaceCurrent("c")
	require.NoError(t, err)
	assert.Equal(t, "a b c", sb.Content())

	cur, _ := e.CurrentMatch()
	assert.Equal(t, types.Range{Start: 0, End: 1}, cur)
}

// recordingDoc logs the order of replacements.
type recordingDoc struct {
	*buffer.SliceBuffer
	starts []int
}

func (d *recordingDoc) ReplaceRange(start, end int, text string) (types.EditResult, error) {
	d.starts = append(d.starts, start)
	return d.SliceBuffer.ReplaceRange(start, end, text)
}

func TestReplaceAllDescending(t *testing.T) {
	sb := buffer.NewSliceBuffer()
	require.NoError(t, sb.SetContent("x-x-x", true))
	doc := &recordingDoc{SliceBuffer: sb}
	e := NewEngine(doc, Options{})

	require.NoError(t, e.SetQuery(literal("x")))
	n, err := e.ReplaceAll("yy")
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, "yy-yy-yy", sb.Content())
	assert.Equal(t, []int{4, 2, 0}, doc.starts)
	assert.Empty(t, e.Matches())
}

func TestHistoryMovesRepeatsToFront(t *testing.T) {
	e, _ := newEngine(t, "foo bar")
	for _, p := range []string{"foo", "bar", "foo"} {
		require.NoError(t, e.SetQuery(literal(p)))
	}
	assert.Equal(t, []Query{literal("foo"), literal("bar")}, e.History())
}

func TestHistoryIsBounded(t *testing.T) {
	e, _ := newEngine(t, "text")
	for _, p := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, e.SetQuery(literal(p)))
	}
	h := e.History()
	require.Len(t, h, 5)
	assert.Equal(t, "g", h[0].Pattern)
	assert.Equal(t, "c", h[4].Pattern)

	assert.Equal(t, []Query{literal("e")}, e.HistoryMatching("E"))

	e.ClearHistory()
	assert.Empty(t, e.History())
}

func TestCompiledPatternCache(t *testing.T) {
	e, _ := newEngine(t, "abc")
	re1, err := e.compile(literal("b"))
	require.NoError(t, err)
	re2, err := e.compile(literal("b"))
	require.NoError(t, err)
	assert.Same(t, re1, re2)

	q := literal("b")
	q.CaseSensitive = false
	re3, err := e.compile(q)
	require.NoError(t, err)
	assert.NotSame(t, re1, re3, "any field change invalidates the cache")
}

func TestReset(t *testing.T) {
	e, _ := newEngine(t, "abc")
	require.NoError(t, e.SetQuery(literal("b")))
	e.Reset()

	_, has := e.Query()
	assert.False(t, has)
	assert.Empty(t, e.Matches())
	assert.Len(t, e.History(), 1)
}
