// Package render paints an editor session onto a tcell screen: visible
// (unfolded) lines, a gutter with line numbers and fold markers,
// selections, search matches and cursors.
package render

import (
	"fmt"
	"sort"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/fold"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const (
	markerCollapsed = '▸'
	markerExpanded  = '▾'
)

// Painter draws one editor into a rectangle at the top of the screen and
// keeps the scroll position between frames.
type Painter struct {
	styles   Styles
	tabWidth int

	top  int // index into the visible line list
	left int // visual column
}

func NewPainter(styles Styles, tabWidth int) *Painter {
	if tabWidth <= 0 {
		tabWidth = core.DefaultTabWidth
	}
	return &Painter{styles: styles, tabWidth: tabWidth}
}

// frame is the per-draw state derived from the editor.
type frame struct {
	ed         *core.Editor
	visible    []int
	folds      map[int]fold.Region // region shown in the gutter for its start line
	selections []types.Range
	matches    []types.Range
	current    types.Range
	hasCurrent bool
	carets     map[int]bool // secondary caret offsets
	gutter     int
	digits     int
}

func (p *Painter) newFrame(ed *core.Editor, width int) *frame {
	f := &frame{
		ed:      ed,
		visible: ed.VisibleLines(),
		folds:   make(map[int]fold.Region),
		matches: ed.Matches(),
		carets:  make(map[int]bool),
	}
	// Regions sharing a start line come outermost first. The outermost
	// collapsed one decides what is hidden; otherwise show the innermost.
	for _, r := range ed.FoldRegions() {
		if prev, ok := f.folds[r.StartLine]; ok && prev.Collapsed {
			continue
		}
		f.folds[r.StartLine] = r
	}
	primary := ed.PrimaryCursor()
	for _, c := range ed.Cursors() {
		if c.IsSelection() {
			f.selections = append(f.selections, c.Range())
		} else if c != primary {
			f.carets[c.Head] = true
		}
	}
	sort.Slice(f.selections, func(i, j int) bool { return f.selections[i].Start < f.selections[j].Start })
	f.current, f.hasCurrent = ed.CurrentMatch()

	f.digits = len(fmt.Sprint(ed.LineCount()))
	f.gutter = f.digits + 2 // number, fold marker, space
	if f.gutter >= width {
		f.gutter = 0
	}
	return f
}

// Draw paints ed into the top height rows of s and positions the terminal
// cursor on the primary cursor's head.
func (p *Painter) Draw(s tcell.Screen, ed *core.Editor, height int) {
	width, _ := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	f := p.newFrame(ed, width)
	textWidth := width - f.gutter

	row, col := p.cursorCell(f)
	p.scrollTo(row, col, height, textWidth)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s.SetContent(x, y, ' ', nil, p.styles.Text)
		}
		idx := p.top + y
		if idx >= len(f.visible) {
			continue
		}
		line := f.visible[idx]
		p.drawGutter(s, f, y, line)
		p.drawLine(s, f, y, line, width)
	}

	cy, cx := row-p.top, col-p.left+f.gutter
	if cy < 0 || cy >= height || cx < f.gutter || cx >= width {
		s.HideCursor()
	} else {
		s.ShowCursor(cx, cy)
	}
}

// cursorCell returns the visible row and visual column of the primary
// head. A head hidden in a collapsed region maps to the region's first line.
func (p *Painter) cursorCell(f *frame) (int, int) {
	pos, err := f.ed.PositionOf(f.ed.PrimaryCursor().Head)
	if err != nil {
		logger.DebugTagf("render", "cursor position: %v", err)
		return 0, 0
	}
	row := sort.SearchInts(f.visible, pos.Line)
	if row == len(f.visible) || f.visible[row] != pos.Line {
		if row > 0 {
			row--
		}
		return row, 0
	}
	text, err := f.ed.GetBuffer().Line(pos.Line)
	if err != nil {
		return row, 0
	}
	return row, p.visualColumn(text, pos.Col)
}

func (p *Painter) scrollTo(row, col, height, width int) {
	if row < p.top {
		p.top = row
	} else if row >= p.top+height {
		p.top = row - height + 1
	}
	if width <= 0 {
		return
	}
	if col < p.left {
		p.left = col
	} else if col >= p.left+width {
		p.left = col - width + 1
	}
}

func (p *Painter) drawGutter(s tcell.Screen, f *frame, y, line int) {
	if f.gutter == 0 {
		return
	}
	num := fmt.Sprintf("%*d", f.digits, line+1)
	for x, r := range num {
		s.SetContent(x, y, r, nil, p.styles.LineNumber)
	}
	if r, ok := f.folds[line]; ok {
		marker := markerExpanded
		if r.Collapsed {
			marker = markerCollapsed
		}
		s.SetContent(f.digits, y, marker, nil, p.styles.FoldMarker)
	}
}

func (p *Painter) drawLine(s tcell.Screen, f *frame, y, line, width int) {
	text, err := f.ed.GetBuffer().Line(line)
	if err != nil {
		logger.DebugTagf("render", "line %d: %v", line, err)
		return
	}
	offset, err := f.ed.GetBuffer().LineStart(line)
	if err != nil {
		return
	}

	visual := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if runes[0] == '\t' {
			w = p.tabWidth - visual%p.tabWidth
		}
		x := visual - p.left + f.gutter
		if x >= width {
			break
		}
		if x >= f.gutter {
			style := p.styleAt(f, offset)
			if runes[0] == '\t' {
				for i := 0; i < w && x+i < width; i++ {
					s.SetContent(x+i, y, ' ', nil, style)
				}
			} else {
				s.SetContent(x, y, runes[0], runes[1:], style)
			}
		}
		visual += w
		offset += len(runes)
	}

	// A secondary caret at the end of the line still needs a cell.
	if x := visual - p.left + f.gutter; f.carets[offset] && x >= f.gutter && x < width {
		s.SetContent(x, y, ' ', nil, p.styles.Cursor)
	}

	if r, ok := f.folds[line]; ok && r.Collapsed {
		summary := fmt.Sprintf(" [+%d]", r.EndLine-r.StartLine)
		x := visual - p.left + f.gutter
		for _, ch := range summary {
			if x >= width {
				break
			}
			if x >= f.gutter {
				s.SetContent(x, y, ch, nil, p.styles.FoldSummary)
			}
			x++
		}
	}
}

// styleAt picks the style for the cell at offset. Selection wins over the
// current match, which wins over other matches.
func (p *Painter) styleAt(f *frame, offset int) tcell.Style {
	switch {
	case f.carets[offset]:
		return p.styles.Cursor
	case covered(f.selections, offset):
		return p.styles.Selection
	case f.hasCurrent && f.current.Contains(offset):
		return p.styles.CurrentMatch
	case covered(f.matches, offset):
		return p.styles.Match
	}
	return p.styles.Text
}

// covered reports whether offset lies in one of the sorted, disjoint ranges.
func covered(ranges []types.Range, offset int) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End > offset })
	return i < len(ranges) && ranges[i].Contains(offset)
}

// visualColumn returns the display column of rune index col in line.
func (p *Painter) visualColumn(line string, col int) int {
	visual, runeIndex := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() && runeIndex < col {
		runes := gr.Runes()
		if runes[0] == '\t' {
			visual += p.tabWidth - visual%p.tabWidth
		} else {
			visual += gr.Width()
		}
		runeIndex += len(runes)
	}
	return visual
}
