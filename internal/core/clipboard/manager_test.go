package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type brokenBackend struct{}

func (brokenBackend) Read() (string, error) { return "", errors.New("no display") }
func (brokenBackend) Write(string) error    { return errors.New("no display") }

func TestCopyPasteSingle(t *testing.T) {
	m := NewManager(nil)
	m.Copy([]string{"hello"})

	assert.Equal(t, "hello", m.Text())
	assert.Equal(t, []string{"hello"}, m.PasteFor(1))
	assert.Equal(t, []string{"hello", "hello"}, m.PasteFor(2))
}

func TestPieceWisePaste(t *testing.T) {
	m := NewManager(nil)
	m.Copy([]string{"a", "b", "c"})

	assert.Equal(t, "a\nb\nc", m.Text())
	assert.Equal(t, []string{"a", "b", "c"}, m.PasteFor(3))
	assert.Equal(t, []string{"a\nb\nc", "a\nb\nc"}, m.PasteFor(2), "cursor count mismatch pastes the whole text")
}

func TestExternalChangeDisablesPieces(t *testing.T) {
	reg := &Register{}
	m := NewManager(reg)
	m.Copy([]string{"x", "y"})

	_ = reg.Write("from elsewhere")
	assert.Equal(t, []string{"from elsewhere", "from elsewhere"}, m.PasteFor(2))
}

func TestBrokenBackendFallsBackToRegister(t *testing.T) {
	m := NewManager(brokenBackend{})
	m.Copy([]string{"kept"})
	assert.Equal(t, "kept", m.Text())
}

func TestEmptyClipboard(t *testing.T) {
	m := NewManager(nil)
	assert.Equal(t, "", m.Text())
	assert.Equal(t, []string{""}, m.PasteFor(1))
}
