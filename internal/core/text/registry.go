package text

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTransform is returned by Lookup for names not in the registry.
var ErrUnknownTransform = errors.New("unknown transform")

var fixed = map[string]Transform{
	"upper":         Upper,
	"lower":         Lower,
	"title":         Title,
	"camel":         Camel,
	"snake":         Snake,
	"trim":          TrimLines,
	"trim-leading":  TrimLeading,
	"trim-trailing": TrimTrailing,
	"sort":          SortLines,
	"sort-reverse":  SortLinesReverse,
	"sort-length":   SortLinesByLength,
	"reverse-lines": ReverseLines,
	"dedupe":        RemoveDuplicateLines,
	"remove-empty":  RemoveEmptyLines,
	"reverse":       ReverseText,
	"join":          JoinLines,
}

// sized transforms take a width argument.
var sized = map[string]struct {
	build func(int) Transform
	def   int
}{
	"indent":         {Indent, DefaultIndent},
	"dedent":         {Dedent, DefaultIndent},
	"wrap":           {Wrap, DefaultWrap},
	"tabs-to-spaces": {TabsToSpaces, DefaultIndent},
	"spaces-to-tabs": {SpacesToTabs, DefaultIndent},
}

// Lookup returns the transform registered under name. Width applies to the
// sized transforms (indent, wrap, tab conversion); zero picks the default.
func Lookup(name string, width int) (Transform, error) {
	if t, ok := fixed[name]; ok {
		return t, nil
	}
	if s, ok := sized[name]; ok {
		if width <= 0 {
			width = s.def
		}
		return s.build(width), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}

// Names lists the registered transform names in order.
func Names() []string {
	names := make([]string, 0, len(fixed)+len(sized))
	for n := range fixed {
		names = append(names, n)
	}
	for n := range sized {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
