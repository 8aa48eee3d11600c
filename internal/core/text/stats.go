package text

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Stats counts the parts of a text.
type Stats struct {
	Lines         int // 0 for empty text
	Words         int // whitespace-separated runs
	Chars         int // runes
	NonSpaceChars int
	Graphemes     int // user-perceived characters
	Bytes         int
}

// Count computes Stats for s.
func Count(s string) Stats {
	st := Stats{
		Words:     len(strings.Fields(s)),
		Chars:     utf8.RuneCountInString(s),
		Graphemes: uniseg.GraphemeClusterCount(s),
		Bytes:     len(s),
	}
	if s != "" {
		st.Lines = strings.Count(s, "\n") + 1
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			st.NonSpaceChars++
		}
	}
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d, Bytes: %d", s.Lines, s.Words, s.Chars, s.Bytes)
}
