package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/bethropolis/tidecore/internal/core/text"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/plugin"
	"github.com/bethropolis/tidecore/internal/types"
)

// RegisterEditorCommands installs the built-in editing commands for ed.
func RegisterEditorCommands(reg *Registry, ed *core.Editor, msg Notifier) {
	if msg == nil {
		msg = func(string, ...interface{}) {}
	}
	c := &editorCommands{ed: ed, msg: msg}

	builtins := map[string]plugin.CommandFunc{
		"s":              c.substitute,
		"find":           c.find,
		"next":           c.next,
		"prev":           c.prev,
		"replace-all":    c.replaceAll,
		"select-matches": c.selectMatches,
		"history":        c.history,
		"undo":           c.undo,
		"redo":           c.redo,
		"goto":           c.gotoLine,
		"select-all":     c.selectAll,
		"select-line":    c.selectLine,
		"insert":         c.insert,
		"delete":         c.deleteBackward,
		"delete-forward": c.deleteForward,
		"transform":      c.transform,
		"fold":           c.fold,
		"fold-all":       c.foldAll,
		"unfold-all":     c.unfoldAll,
		"fold-level":     c.foldLevel,
		"fold-mode":      c.foldMode,
		"copy":           c.copy,
		"cut":            c.cut,
		"paste":          c.paste,
		"diff":           c.diff,
	}
	for name, fn := range builtins {
		if err := reg.Register(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}

	// Every transform is also reachable by its own name.
	for _, name := range text.Names() {
		name := name
		fn := func(args []string) error { return c.transform(append([]string{name}, args...)) }
		if err := reg.Register(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

type editorCommands struct {
	ed  *core.Editor
	msg Notifier
}

func (c *editorCommands) substitute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: s/pattern/replacement/[flags]")
	}
	sub, err := find.ParseSubstitute(args[0])
	if err != nil {
		return err
	}
	if err := c.ed.SetQuery(sub.Query); err != nil {
		return err
	}
	if sub.Global {
		n, err := c.ed.ReplaceAll(sub.Replacement)
		if err != nil {
			return err
		}
		c.msg("Replaced %d occurrence(s)", n)
		return nil
	}
	if _, ok := c.ed.FindNextFromCursor(); !ok {
		c.msg("Pattern not found: %s", sub.Query.Pattern)
		return nil
	}
	if _, err := c.ed.ReplaceCurrent(sub.Replacement); err != nil {
		return err
	}
	c.msg("Replaced 1 occurrence")
	return nil
}

// find [-r] [-i] [-w] pattern...
func (c *editorCommands) find(args []string) error {
	q := find.Query{CaseSensitive: true}
	for len(args) > 0 && strings.HasPrefix(args[0], "-") && len(args[0]) == 2 {
		switch args[0] {
		case "-r":
			q.IsRegex = true
		case "-i":
			q.CaseSensitive = false
		case "-w":
			q.WholeWord = true
		default:
			return fmt.Errorf("unknown flag %s", args[0])
		}
		args = args[1:]
	}
	q.Pattern = strings.Join(args, " ")
	if err := c.ed.SetQuery(q); err != nil {
		return err
	}
	if _, ok := c.ed.FindNextFromCursor(); !ok {
		c.msg("Pattern not found: %s", q.Pattern)
		return nil
	}
	c.reportMatch()
	return nil
}

func (c *editorCommands) next([]string) error {
	if _, ok := c.ed.FindNextFromCursor(); !ok {
		c.msg("No matches")
		return nil
	}
	c.reportMatch()
	return nil
}

func (c *editorCommands) prev([]string) error {
	if _, ok := c.ed.FindPreviousFromCursor(); !ok {
		c.msg("No matches")
		return nil
	}
	c.reportMatch()
	return nil
}

func (c *editorCommands) reportMatch() {
	s := c.ed.Search()
	c.msg("Match %d of %d", s.CurrentIndex()+1, s.MatchCount())
}

func (c *editorCommands) replaceAll(args []string) error {
	n, err := c.ed.ReplaceAll(strings.Join(args, " "))
	if err != nil {
		return err
	}
	c.msg("Replaced %d occurrence(s)", n)
	return nil
}

func (c *editorCommands) selectMatches([]string) error {
	n, err := c.ed.SelectAllMatches()
	if err != nil {
		return err
	}
	c.msg("%d cursor(s)", n)
	return nil
}

func (c *editorCommands) history(args []string) error {
	queries := c.ed.Search().HistoryMatching(strings.Join(args, " "))
	patterns := make([]string, len(queries))
	for i, q := range queries {
		patterns[i] = q.Pattern
	}
	c.msg("Search history: %s", strings.Join(patterns, ", "))
	return nil
}

func (c *editorCommands) undo(args []string) error {
	return c.repeat(args, "Undo", c.ed.Undo)
}

func (c *editorCommands) redo(args []string) error {
	return c.repeat(args, "Redo", c.ed.Redo)
}

// repeat runs step up to n times (args[0], default 1), stopping early
// when it reports there is nothing left to do.
func (c *editorCommands) repeat(args []string, what string, step func() (bool, error)) error {
	n, err := optionalInt(args, 1)
	if err != nil {
		return err
	}
	done := 0
	for ; done < n; done++ {
		ok, err := step()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if done == 0 {
		c.msg("%s: nothing to do", what)
		return nil
	}
	c.msg("%s: %d step(s)", what, done)
	return nil
}

// goto line[:col], both 1-based.
func (c *editorCommands) gotoLine(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: goto line[:col]")
	}
	lineStr, colStr, hasCol := strings.Cut(args[0], ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return fmt.Errorf("invalid line %q", lineStr)
	}
	col := 1
	if hasCol {
		if col, err = strconv.Atoi(colStr); err != nil || col < 1 {
			return fmt.Errorf("invalid column %q", colStr)
		}
	}
	return c.ed.MoveCursorTo(types.Position{Line: line - 1, Col: col - 1}, false)
}

func (c *editorCommands) selectAll([]string) error {
	c.ed.SelectAll()
	return nil
}

// select-line [n], 1-based; defaults to the primary cursor's line.
func (c *editorCommands) selectLine(args []string) error {
	pos, err := c.ed.PositionOf(c.ed.PrimaryCursor().Head)
	if err != nil {
		return err
	}
	line, err := optionalInt(args, pos.Line+1)
	if err != nil {
		return err
	}
	return c.ed.SelectLine(line - 1)
}

var insertEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

// insert text..., with \n and \t escapes.
func (c *editorCommands) insert(args []string) error {
	return c.ed.InsertAtCursors(insertEscapes.Replace(strings.Join(args, " ")))
}

func (c *editorCommands) deleteBackward([]string) error { return c.ed.DeleteAtCursors(false) }
func (c *editorCommands) deleteForward([]string) error  { return c.ed.DeleteAtCursors(true) }

// transform name [width]
func (c *editorCommands) transform(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: transform name [width]; available: %s", strings.Join(text.Names(), ", "))
	}
	width, err := optionalInt(args[1:], 0)
	if err != nil {
		return err
	}
	t, err := text.Lookup(args[0], width)
	if err != nil {
		return err
	}
	before := c.ed.Revision()
	if err := c.ed.ApplyTransform(t); err != nil {
		return err
	}
	if c.ed.Revision() == before {
		c.msg("%s: no change", args[0])
	} else {
		c.msg("Applied %s", args[0])
	}
	return nil
}

// fold [line], 1-based; defaults to the primary cursor's line.
func (c *editorCommands) fold(args []string) error {
	pos, err := c.ed.PositionOf(c.ed.PrimaryCursor().Head)
	if err != nil {
		return err
	}
	line, err := optionalInt(args, pos.Line+1)
	if err != nil {
		return err
	}
	return c.ed.ToggleFoldAt(line - 1)
}

func (c *editorCommands) foldAll([]string) error {
	c.ed.CollapseAllFolds()
	return nil
}

func (c *editorCommands) unfoldAll([]string) error {
	c.ed.ExpandAllFolds()
	return nil
}

func (c *editorCommands) foldLevel(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fold-level N")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 0 {
		return fmt.Errorf("invalid level %q", args[0])
	}
	c.ed.CollapseFoldLevel(level)
	return nil
}

func (c *editorCommands) foldMode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fold-mode indent|bracket")
	}
	mode, err := fold.ParseMode(args[0])
	if err != nil {
		return err
	}
	c.ed.SetFoldMode(mode)
	c.msg("Fold mode: %s", mode)
	return nil
}

func (c *editorCommands) copy([]string) error {
	if !c.ed.Copy() {
		c.msg("Nothing selected")
	}
	return nil
}

func (c *editorCommands) cut([]string) error {
	ok, err := c.ed.Cut()
	if err == nil && !ok {
		c.msg("Nothing selected")
	}
	return err
}

func (c *editorCommands) paste([]string) error {
	ok, err := c.ed.Paste()
	if err == nil && !ok {
		c.msg("Clipboard is empty")
	}
	return err
}

func (c *editorCommands) diff([]string) error {
	d := c.ed.UnsavedDiff()
	if d == "" {
		c.msg("No unsaved changes")
		return nil
	}
	c.msg("%d changed line(s)", changedLines(d))
	return nil
}

// changedLines counts +/- lines of a unified diff, ignoring its headers.
func changedLines(d string) int {
	n := 0
	for _, l := range strings.Split(d, "\n") {
		if strings.HasPrefix(l, "+++") || strings.HasPrefix(l, "---") {
			continue
		}
		if strings.HasPrefix(l, "+") || strings.HasPrefix(l, "-") {
			n++
		}
	}
	return n
}

func optionalInt(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}
