// Package find implements the search engine: query compilation, the match
// list, circular navigation, replace, and a bounded query history.
package find

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/dlclark/regexp2"
)

var (
	// ErrInvalidPattern is returned when a regex query does not compile.
	ErrInvalidPattern = errors.New("invalid search pattern")
	// ErrEmptyQuery is returned for a query with an empty pattern.
	ErrEmptyQuery = errors.New("search pattern cannot be empty")
)

const (
	DefaultHistorySize = 50
	DefaultTimeout     = 2 * time.Second
)

// Query describes one search.
type Query struct {
	Pattern       string
	IsRegex       bool
	CaseSensitive bool
	WholeWord     bool
}

// Document is what the engine searches and edits. Replacements go through
// ReplaceRange so history and cursors see them like any other edit.
type Document interface {
	Runes() []rune
	Revision() uint64
	ReplaceRange(start, end int, text string) (types.EditResult, error)
}

// Options configure an Engine.
type Options struct {
	HistorySize int
	Timeout     time.Duration // per-match regex timeout; zero disables it
}

// Engine holds the active query and its matches. Matches are recomputed
// from scratch whenever the query or the document changes, and lazily:
// every read checks the document revision first.
type Engine struct {
	doc  Document
	opts Options

	query    Query
	hasQuery bool
	re       *regexp2.Regexp

	// Compiled-pattern cache, keyed by the exact query.
	cacheKey Query
	cached   *regexp2.Regexp

	matches  []types.Range
	current  int // -1 when no match is current
	revision uint64
	dirty    bool

	history []Query
}

// NewEngine creates an engine over doc.
func NewEngine(doc Document, opts Options) *Engine {
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	return &Engine{doc: doc, opts: opts, current: -1}
}

// compile returns the regex for q, reusing the cached one when the query
// is identical.
func (e *Engine) compile(q Query) (*regexp2.Regexp, error) {
	if e.cached != nil && e.cacheKey == q {
		return e.cached, nil
	}
	expr := q.Pattern
	opts := regexp2.None
	if q.IsRegex {
		opts |= regexp2.Multiline
	} else {
		expr = regexp2.Escape(expr)
	}
	if !q.CaseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, q.Pattern, err)
	}
	if e.opts.Timeout > 0 {
		re.MatchTimeout = e.opts.Timeout
	}
	e.cacheKey, e.cached = q, re
	return re, nil
}

// SetQuery compiles q, recomputes the matches and records q in the
// history. On failure the previous query and matches are left untouched.
func (e *Engine) SetQuery(q Query) error {
	return e.SetQueryContext(context.Background(), q)
}

// SetQueryContext is SetQuery with an abortable scan. A cancelled scan
// leaves the engine on its previous query.
func (e *Engine) SetQueryContext(ctx context.Context, q Query) error {
	if q.Pattern == "" {
		return ErrEmptyQuery
	}
	re, err := e.compile(q)
	if err != nil {
		logger.DebugTagf("find", "SetQuery rejected: %v", err)
		return err
	}
	revision := e.doc.Revision()
	matches, err := scan(ctx, re, e.doc.Runes(), q.WholeWord)
	if err != nil {
		return fmt.Errorf("search for %q: %w", q.Pattern, err)
	}

	e.query, e.hasQuery, e.re = q, true, re
	e.matches, e.revision, e.dirty = matches, revision, false
	e.current = -1
	e.remember(q)
	logger.DebugTagf("find", "Query %q: %d matches", q.Pattern, len(matches))
	return nil
}

// scan collects every non-overlapping, non-empty match in ascending order.
func scan(ctx context.Context, re *regexp2.Regexp, text []rune, wholeWord bool) ([]types.Range, error) {
	var out []types.Range
	pos := 0
	for pos < len(text) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := re.FindRunesMatchStartingAt(text, pos)
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		start, end := m.Index, m.Index+m.Length
		if start == end || (wholeWord && !isWholeWord(text, start, end)) {
			pos = start + 1
			continue
		}
		out = append(out, types.Range{Start: start, End: end})
		pos = end
	}
	return out, nil
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isWholeWord reports whether [start, end) is not flanked by word runes.
func isWholeWord(text []rune, start, end int) bool {
	if start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

// Invalidate consumes an edit. Matches are not patched; the next read
// rescans.
func (e *Engine) Invalidate(edit types.EditResult) {
	if !edit.IsZero() {
		e.dirty = true
	}
}

// refresh rescans if the document changed since the last scan.
func (e *Engine) refresh() {
	if !e.hasQuery {
		return
	}
	revision := e.doc.Revision()
	if !e.dirty && revision == e.revision {
		return
	}
	matches, err := scan(context.Background(), e.re, e.doc.Runes(), e.query.WholeWord)
	if err != nil {
		logger.Warnf("find: rescan for %q failed: %v", e.query.Pattern, err)
		matches = nil
	}
	e.matches, e.revision, e.dirty = matches, revision, false
	switch {
	case len(e.matches) == 0:
		e.current = -1
	case e.current >= len(e.matches):
		e.current = len(e.matches) - 1
	}
}

// Query returns the active query and whether there is one.
func (e *Engine) Query() (Query, bool) {
	return e.query, e.hasQuery
}

// Matches returns a copy of the current match list.
func (e *Engine) Matches() []types.Range {
	e.refresh()
	out := make([]types.Range, len(e.matches))
	copy(out, e.matches)
	return out
}

func (e *Engine) MatchCount() int {
	e.refresh()
	return len(e.matches)
}

// CurrentMatch returns the current match, if any.
func (e *Engine) CurrentMatch() (types.Range, bool) {
	e.refresh()
	if e.current < 0 {
		return types.Range{}, false
	}
	return e.matches[e.current], true
}

// CurrentIndex returns the index of the current match, or -1.
func (e *Engine) CurrentIndex() int {
	e.refresh()
	return e.current
}

// FindNext makes the first match starting at or after from current,
// wrapping to the first match. It returns false only if there are no
// matches.
func (e *Engine) FindNext(from int) (types.Range, bool) {
	e.refresh()
	if len(e.matches) == 0 {
		return types.Range{}, false
	}
	i := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Start >= from })
	if i == len(e.matches) {
		i = 0
	}
	e.current = i
	return e.matches[i], true
}

// FindPrevious makes the last match ending at or before from current,
// wrapping to the last match.
func (e *Engine) FindPrevious(from int) (types.Range, bool) {
	e.refresh()
	if len(e.matches) == 0 {
		return types.Range{}, false
	}
	i := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].End > from }) - 1
	if i < 0 {
		i = len(e.matches) - 1
	}
	e.current = i
	return e.matches[i], true
}

// Next steps to the following match, circularly.
func (e *Engine) Next() (types.Range, bool) {
	e.refresh()
	if len(e.matches) == 0 {
		return types.Range{}, false
	}
	e.current = (e.current + 1) % len(e.matches)
	return e.matches[e.current], true
}

// Previous steps to the preceding match, circularly.
func (e *Engine) Previous() (types.Range, bool) {
	e.refresh()
	if len(e.matches) == 0 {
		return types.Range{}, false
	}
	if e.current <= 0 {
		e.current = len(e.matches) - 1
	} else {
		e.current--
	}
	return e.matches[e.current], true
}

// ReplaceCurrent replaces the current match (the first one if none is
// current) with replacement, taken literally. Afterwards the first match
// at or after the end of the inserted text becomes current. It reports
// whether anything was replaced.
func (e *Engine) ReplaceCurrent(replacement string) (bool, error) {
	e.refresh()
	if len(e.matches) == 0 {
		return false, nil
	}
	idx := e.current
	if idx < 0 {
		idx = 0
	}
	m := e.matches[idx]
	if _, err := e.doc.ReplaceRange(m.Start, m.End, replacement); err != nil {
		return false, fmt.Errorf("replace match at %d: %w", m.Start, err)
	}
	e.dirty = true
	e.refresh()

	after := m.Start + utf8.RuneCountInString(replacement)
	e.current = -1
	if len(e.matches) > 0 {
		i := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].Start >= after })
		if i == len(e.matches) {
			i = 0
		}
		e.current = i
	}
	return true, nil
}

// ReplaceAll replaces every match, last to first so earlier offsets stay
// valid, and returns the count. No matches is not an error.
func (e *Engine) ReplaceAll(replacement string) (int, error) {
	e.refresh()
	matches := make([]types.Range, len(e.matches))
	copy(matches, e.matches)

	count := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if _, err := e.doc.ReplaceRange(m.Start, m.End, replacement); err != nil {
			e.dirty = true
			return count, fmt.Errorf("replace match at %d: %w", m.Start, err)
		}
		count++
	}
	if count > 0 {
		e.dirty = true
		e.refresh()
	}
	e.current = -1
	logger.DebugTagf("find", "ReplaceAll %q: %d replaced", e.query.Pattern, count)
	return count, nil
}

// Reset drops the query and matches. History is kept.
func (e *Engine) Reset() {
	e.query, e.hasQuery, e.re = Query{}, false, nil
	e.matches = nil
	e.current = -1
	e.dirty = false
}

// remember moves q to the front of the history.
func (e *Engine) remember(q Query) {
	for i, h := range e.history {
		if h == q {
			e.history = append(e.history[:i], e.history[i+1:]...)
			break
		}
	}
	e.history = append([]Query{q}, e.history...)
	if len(e.history) > e.opts.HistorySize {
		e.history = e.history[:e.opts.HistorySize]
	}
}

// History returns past queries, most recent first.
func (e *Engine) History() []Query {
	out := make([]Query, len(e.history))
	copy(out, e.history)
	return out
}

// HistoryMatching returns past queries whose pattern contains substr,
// ignoring case.
func (e *Engine) HistoryMatching(substr string) []Query {
	substr = strings.ToLower(substr)
	var out []Query
	for _, h := range e.history {
		if strings.Contains(strings.ToLower(h.Pattern), substr) {
			out = append(out, h)
		}
	}
	return out
}

func (e *Engine) ClearHistory() {
	e.history = nil
}
