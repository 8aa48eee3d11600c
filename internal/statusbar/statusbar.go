// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style // temporary messages
	StyleInput     tcell.Style // command and find input
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleInput:     tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the last screen line: file and cursor information, or a
// temporary message, or the line being typed in command/find mode.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	isModified bool
	cursorPos  types.Position
	cursors    int
	matches    int
	current    int // -1 when no match is current
	foldInfo   string
	editorMode string

	input string // non-empty while typing a command or pattern

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now, cursors: 1, current: -1}
}

// SetFileInfo updates the file path and modified indicator.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the primary cursor position and the cursor count.
func (sb *StatusBar) SetCursorInfo(pos types.Position, count int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.cursors = count
}

// SetSearchInfo updates the match counter.
func (sb *StatusBar) SetSearchInfo(matches, current int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.matches = matches
	sb.current = current
}

// SetFoldInfo updates the fold summary, e.g. "3 folds, 1 closed".
func (sb *StatusBar) SetFoldInfo(info string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.foldInfo = info
}

// SetEditorMode updates the displayed mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetInput shows text being typed; an empty string returns to the normal line.
func (sb *StatusBar) SetInput(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.input = text
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line the status bar would draw now and its style.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.input != "" {
		return sb.input, sb.config.StyleInput
	}
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), sb.config.StyleDefault
}

// defaultText builds the normal status line. Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	text := fPath
	if sb.isModified {
		text += " [Modified]"
	}
	text += fmt.Sprintf(" -- Line: %d, Col: %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
	if sb.cursors > 1 {
		text += fmt.Sprintf(" (%d cursors)", sb.cursors)
	}
	if sb.matches > 0 {
		if sb.current >= 0 {
			text += fmt.Sprintf(" -- Match %d/%d", sb.current+1, sb.matches)
		} else {
			text += fmt.Sprintf(" -- %d matches", sb.matches)
		}
	}
	if sb.foldInfo != "" {
		text += " -- " + sb.foldInfo
	}
	if sb.editorMode != "" {
		text += " -- " + sb.editorMode
	}
	return text
}

// Draw renders the status bar onto the last screen line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
