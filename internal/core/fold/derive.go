package fold

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Mode selects the structural cue regions are derived from.
type Mode int

const (
	ModeIndent Mode = iota
	ModeBracket
)

func (m Mode) String() string {
	switch m {
	case ModeIndent:
		return "indent"
	case ModeBracket:
		return "bracket"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a config value to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "indent":
		return ModeIndent, nil
	case "bracket", "brackets":
		return ModeBracket, nil
	default:
		return ModeIndent, fmt.Errorf("unknown fold mode %q", name)
	}
}

// checkEvery is how many lines derivation scans between context checks.
const checkEvery = 256

// derive computes the region list for content. Collapsed flags are left
// false; the model fills them in from its remembered state.
func derive(ctx context.Context, content string, mode Mode, tabWidth int) ([]Region, error) {
	lines := strings.Split(content, "\n")
	var (
		regions []Region
		err     error
	)
	if mode == ModeBracket {
		regions, err = deriveBrackets(ctx, lines)
	} else {
		regions, err = deriveIndent(ctx, lines, tabWidth)
	}
	if err != nil {
		return nil, err
	}
	sortRegions(regions)
	return regions, nil
}

func sortRegions(regions []Region) {
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].StartLine != regions[j].StartLine {
			return regions[i].StartLine < regions[j].StartLine
		}
		return regions[i].Level < regions[j].Level
	})
}

// indentWidth returns the visual width of the line's leading whitespace
// and whether the line holds anything else.
func indentWidth(line string, tabWidth int) (int, bool) {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += tabWidth - width%tabWidth
		case '\r':
		default:
			return width, true
		}
	}
	return width, false
}

type openIndent struct {
	indent int
	line   int
}

// deriveIndent opens a region at every non-blank line followed by deeper
// indented lines. A region ends at the last non-blank line before the
// indentation returns to its level or shallower. Blank lines never end a
// region on their own.
func deriveIndent(ctx context.Context, lines []string, tabWidth int) ([]Region, error) {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	var (
		regions []Region
		stack   []openIndent
	)
	lastText := -1 // last non-blank line seen
	closeAbove := func(indent int) {
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if lastText > top.line {
				regions = append(regions, Region{StartLine: top.line, EndLine: lastText, Level: len(stack)})
			}
		}
	}

	for i, line := range lines {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		indent, ok := indentWidth(line, tabWidth)
		if !ok {
			continue
		}
		closeAbove(indent)
		stack = append(stack, openIndent{indent: indent, line: i})
		lastText = i
	}
	closeAbove(0)
	return regions, nil
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

type openBracket struct {
	char rune
	line int
}

// deriveBrackets opens a region at each bracket whose partner sits on a
// later line. Level is the bracket nesting depth. Unmatched closers are
// ignored.
func deriveBrackets(ctx context.Context, lines []string) ([]Region, error) {
	var (
		regions []Region
		stack   []openBracket
	)
	for i, line := range lines {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for _, r := range line {
			switch r {
			case '(', '[', '{':
				stack = append(stack, openBracket{char: r, line: i})
			case ')', ']', '}':
				if len(stack) == 0 || stack[len(stack)-1].char != closers[r] {
					continue
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if i > top.line {
					regions = append(regions, Region{StartLine: top.line, EndLine: i, Level: len(stack)})
				}
			}
		}
	}
	return trimSameLevel(regions), nil
}

// trimSameLevel keeps same-level regions from sharing lines. "} else {"
// closes one region on the line that opens the next, so the earlier
// region gives up its last line. Regions left without a body are dropped.
func trimSameLevel(regions []Region) []Region {
	sortRegions(regions)
	lastAt := make(map[int]int) // level -> index into out
	out := regions[:0]
	for _, r := range regions {
		if prev, ok := lastAt[r.Level]; ok && out[prev].EndLine >= r.StartLine {
			out[prev].EndLine = r.StartLine - 1
		}
		lastAt[r.Level] = len(out)
		out = append(out, r)
	}
	kept := out[:0]
	for _, r := range out {
		if r.StartLine < r.EndLine {
			kept = append(kept, r)
		}
	}
	return kept
}
