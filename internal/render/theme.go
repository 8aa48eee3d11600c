package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// StyleDef is one style override from the [styles] config table. Unset
// fields keep the value of the style being overridden.
type StyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// Style applies d on top of base.
func (d StyleDef) Style(base tcell.Style) (tcell.Style, error) {
	style := base
	if d.Fg != nil {
		color, err := ParseColor(*d.Fg)
		if err != nil {
			return base, fmt.Errorf("invalid foreground color '%s': %w", *d.Fg, err)
		}
		style = style.Foreground(color)
	}
	if d.Bg != nil {
		color, err := ParseColor(*d.Bg)
		if err != nil {
			return base, fmt.Errorf("invalid background color '%s': %w", *d.Bg, err)
		}
		style = style.Background(color)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style, nil
}

// ParseColor accepts #RRGGBB, "default", "reset" and the color names
// tcell knows.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "default":
		return tcell.ColorDefault, nil
	case s == "reset":
		return tcell.ColorReset, nil
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}

// field returns the painter style named key, as written in config.
func (s *Styles) field(key string) *tcell.Style {
	switch key {
	case "text":
		return &s.Text
	case "line_number":
		return &s.LineNumber
	case "fold_marker":
		return &s.FoldMarker
	case "fold_summary":
		return &s.FoldSummary
	case "selection":
		return &s.Selection
	case "match":
		return &s.Match
	case "current_match":
		return &s.CurrentMatch
	case "cursor":
		return &s.Cursor
	}
	return nil
}

// WithOverrides applies the painter entries of defs. Keys the painter does
// not use are ignored. A bad entry is skipped and reported; the others
// still apply.
func (s Styles) WithOverrides(defs map[string]StyleDef) (Styles, error) {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var firstErr error
	for _, key := range keys {
		target := s.field(key)
		if target == nil {
			continue
		}
		style, err := defs[key].Style(*target)
		if err != nil {
			logger.Warnf("Style '%s' skipped: %v", key, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("style %s: %w", key, err)
			}
			continue
		}
		*target = style
	}
	return s, firstErr
}
