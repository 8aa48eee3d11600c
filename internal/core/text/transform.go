// Package text holds stateless text transformations applied to selections.
package text

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform maps selected text to its replacement.
type Transform func(string) string

const (
	DefaultIndent = 4
	DefaultWrap   = 80
)

// Casers carry state, so each call builds its own.

func Upper(s string) string { return cases.Upper(language.Und).String(s) }
func Lower(s string) string { return cases.Lower(language.Und).String(s) }

// Title capitalises the first letter of each word and lowercases the rest.
func Title(s string) string { return cases.Title(language.Und).String(s) }

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// Camel converts snake_case, kebab-case or spaced words to camelCase.
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(Lower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(Title(w))
	}
	return b.String()
}

// Snake converts camelCase or spaced words to snake_case.
func Snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case isSeparator(r):
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// eachLine applies fn to every line.
func eachLine(s string, fn func(string) string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = fn(l)
	}
	return strings.Join(lines, "\n")
}

func TrimLines(s string) string {
	return eachLine(s, strings.TrimSpace)
}

func TrimLeading(s string) string {
	return eachLine(s, func(l string) string { return strings.TrimLeftFunc(l, unicode.IsSpace) })
}

func TrimTrailing(s string) string {
	return eachLine(s, func(l string) string { return strings.TrimRightFunc(l, unicode.IsSpace) })
}

func SortLines(s string) string {
	lines := strings.Split(s, "\n")
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func SortLinesReverse(s string) string {
	lines := strings.Split(s, "\n")
	sort.Sort(sort.Reverse(sort.StringSlice(lines)))
	return strings.Join(lines, "\n")
}

// SortLinesByLength orders lines by rune count, keeping ties in place.
func SortLinesByLength(s string) string {
	lines := strings.Split(s, "\n")
	sort.SliceStable(lines, func(i, j int) bool {
		return utf8.RuneCountInString(lines[i]) < utf8.RuneCountInString(lines[j])
	})
	return strings.Join(lines, "\n")
}

func ReverseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// RemoveDuplicateLines keeps the first occurrence of every line.
func RemoveDuplicateLines(s string) string {
	lines := strings.Split(s, "\n")
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, l := range lines {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// RemoveEmptyLines drops lines holding only whitespace.
func RemoveEmptyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// Indent prefixes every line with width spaces.
func Indent(width int) Transform {
	prefix := strings.Repeat(" ", width)
	return func(s string) string {
		return eachLine(s, func(l string) string { return prefix + l })
	}
}

// Dedent removes up to width leading spaces, or one leading tab, from
// every line. Whitespace-only lines are emptied.
func Dedent(width int) Transform {
	prefix := strings.Repeat(" ", width)
	return func(s string) string {
		return eachLine(s, func(l string) string {
			switch {
			case strings.TrimSpace(l) == "":
				return ""
			case strings.HasPrefix(l, "\t"):
				return l[1:]
			case strings.HasPrefix(l, prefix):
				return l[width:]
			}
			return strings.TrimLeft(l, " ")
		})
	}
}

// ReverseText reverses the user-perceived characters, so combining marks
// and emoji sequences stay intact.
func ReverseText(s string) string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		b.WriteString(clusters[i])
	}
	return b.String()
}

// JoinLines joins the trimmed non-empty lines with single spaces.
func JoinLines(s string) string {
	var parts []string
	for _, l := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// Wrap reflows words into lines no wider than width display cells. A
// single word wider than width gets a line of its own.
func Wrap(width int) Transform {
	return func(s string) string {
		var (
			lines []string
			cur   strings.Builder
			used  int
		)
		for _, w := range strings.Fields(s) {
			ww := uniseg.StringWidth(w)
			if used > 0 && used+1+ww > width {
				lines = append(lines, cur.String())
				cur.Reset()
				used = 0
			}
			if used > 0 {
				cur.WriteByte(' ')
				used++
			}
			cur.WriteString(w)
			used += ww
		}
		if used > 0 {
			lines = append(lines, cur.String())
		}
		return strings.Join(lines, "\n")
	}
}

// TabsToSpaces expands tabs to the next multiple of width columns.
func TabsToSpaces(width int) Transform {
	if width <= 0 {
		width = DefaultIndent
	}
	return func(s string) string {
		return eachLine(s, func(l string) string {
			if !strings.Contains(l, "\t") {
				return l
			}
			var b strings.Builder
			col := 0
			for _, r := range l {
				if r == '\t' {
					n := width - col%width
					b.WriteString(strings.Repeat(" ", n))
					col += n
					continue
				}
				b.WriteRune(r)
				col++
			}
			return b.String()
		})
	}
}

// SpacesToTabs replaces each leading run of width spaces with a tab.
func SpacesToTabs(width int) Transform {
	if width <= 0 {
		width = DefaultIndent
	}
	prefix := strings.Repeat(" ", width)
	return func(s string) string {
		return eachLine(s, func(l string) string {
			n := 0
			for strings.HasPrefix(l[n*width:], prefix) {
				n++
			}
			return strings.Repeat("\t", n) + l[n*width:]
		})
	}
}
