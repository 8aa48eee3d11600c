// Package clipboard stores copied text for the editor, either in the
// system clipboard or in an in-process register.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/tidecore/internal/logger"
)

// Backend reads and writes clipboard text.
type Backend interface {
	Read() (string, error)
	Write(text string) error
}

// Register is an in-process clipboard.
type Register struct {
	text string
}

func (r *Register) Read() (string, error) { return r.text, nil }

func (r *Register) Write(text string) error {
	r.text = text
	return nil
}

// System is the operating system clipboard.
type System struct{}

func (System) Read() (string, error)   { return clipboard.ReadAll() }
func (System) Write(text string) error { return clipboard.WriteAll(text) }

// SystemAvailable reports whether a system clipboard tool was found.
func SystemAvailable() bool {
	return !clipboard.Unsupported
}

// Manager copies and pastes text for one or more cursors. A copy from N
// cursors is remembered piecewise so pasting into N cursors hands each
// its own piece.
type Manager struct {
	backend  Backend
	register *Register // used when the backend fails
	pieces   []string
}

// NewManager creates a manager on backend. A nil backend uses the register.
func NewManager(backend Backend) *Manager {
	reg := &Register{}
	if backend == nil {
		backend = reg
	}
	return &Manager{backend: backend, register: reg}
}

// NewDefault picks the system clipboard when asked for and available.
func NewDefault(useSystem bool) *Manager {
	if useSystem && SystemAvailable() {
		logger.DebugTagf("clipboard", "Using system clipboard")
		return NewManager(System{})
	}
	return NewManager(nil)
}

// Copy stores the selected texts, one per cursor, joined by newlines.
func (m *Manager) Copy(pieces []string) {
	text := strings.Join(pieces, "\n")
	m.pieces = append([]string(nil), pieces...)
	_ = m.register.Write(text)
	if err := m.backend.Write(text); err != nil {
		logger.Warnf("clipboard: write failed, keeping text in register: %v", err)
	}
	logger.DebugTagf("clipboard", "Copied %d piece(s), %d bytes", len(pieces), len(text))
}

// Text returns the clipboard content.
func (m *Manager) Text() string {
	text, err := m.backend.Read()
	if err != nil {
		logger.Warnf("clipboard: read failed, using register: %v", err)
		text, _ = m.register.Read()
	}
	return text
}

// PasteFor returns the text to insert at each of n cursors. If the last
// copy came from n cursors and the clipboard still holds it, each cursor
// gets its own piece; otherwise every cursor gets the whole text.
func (m *Manager) PasteFor(n int) []string {
	text := m.Text()
	if n > 1 && len(m.pieces) == n && strings.Join(m.pieces, "\n") == text {
		return append([]string(nil), m.pieces...)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = text
	}
	return out
}
