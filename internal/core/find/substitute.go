package find

import (
	"fmt"
	"strings"
)

// Substitution is a parsed /pattern/replacement/flags command.
type Substitution struct {
	Query       Query
	Replacement string
	Global      bool
}

// ParseSubstitute parses "/pattern/replacement/[flags]". A backslash
// escapes the delimiter. Patterns are regexes unless the l flag is given.
// Flags: g replace all, i ignore case, w whole word, l literal.
func ParseSubstitute(cmd string) (Substitution, error) {
	if !strings.HasPrefix(cmd, "/") {
		return Substitution{}, fmt.Errorf("invalid format: use /pattern/replacement/[flags]")
	}
	parts := splitUnescaped(cmd[1:], '/')
	if len(parts) < 2 || len(parts) > 3 {
		return Substitution{}, fmt.Errorf("invalid format: use /pattern/replacement/[flags]")
	}

	sub := Substitution{
		Query:       Query{Pattern: parts[0], IsRegex: true, CaseSensitive: true},
		Replacement: parts[1],
	}
	if sub.Query.Pattern == "" {
		return Substitution{}, ErrEmptyQuery
	}
	if len(parts) == 3 {
		for _, f := range parts[2] {
			switch f {
			case 'g':
				sub.Global = true
			case 'i':
				sub.Query.CaseSensitive = false
			case 'w':
				sub.Query.WholeWord = true
			case 'l':
				sub.Query.IsRegex = false
			default:
				return Substitution{}, fmt.Errorf("unknown substitute flag %q", f)
			}
		}
	}
	return sub, nil
}

// splitUnescaped splits s on sep, treating a backslash before sep as a
// literal sep. Other backslashes are kept for the regex engine.
func splitUnescaped(s string, sep rune) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) && runes[i+1] == sep {
			cur.WriteRune(sep)
			i++
			continue
		}
		if r == sep {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(parts, cur.String())
}
