package render

import "github.com/gdamore/tcell/v2"

// Styles are the cell styles the painter uses.
type Styles struct {
	Text         tcell.Style
	LineNumber   tcell.Style
	FoldMarker   tcell.Style
	FoldSummary  tcell.Style
	Selection    tcell.Style
	Match        tcell.Style
	CurrentMatch tcell.Style
	Cursor       tcell.Style // secondary cursors; the primary uses the terminal cursor
}

// DefaultStyles provides sensible defaults.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Text:         base,
		LineNumber:   base.Foreground(tcell.ColorGray),
		FoldMarker:   base.Foreground(tcell.ColorTeal),
		FoldSummary:  base.Foreground(tcell.ColorGray).Italic(true),
		Selection:    base.Reverse(true),
		Match:        base.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack),
		CurrentMatch: base.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
		Cursor:       base.Reverse(true).Bold(true),
	}
}
