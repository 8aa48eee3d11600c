package fileio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   string
		format Format
	}{
		{"plain", []byte("a\nb"), "a\nb", Format{}},
		{"utf8 bom", []byte("\xEF\xBB\xBFhé"), "hé", Format{BOM: true}},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", Format{LineEnding: CRLF}},
		{"mixed endings", []byte("a\r\nb\nc"), "a\r\nb\nc", Format{}},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0}, "hi\n", Format{Encoding: UTF16LE, BOM: true}},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}, "ok", Format{Encoding: UTF16BE, BOM: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, f, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, tt.format, f)
		})
	}
}

func TestDecodeRejectsBinary(t *testing.T) {
	_, _, err := Decode([]byte{0x66, 0xFF, 0x80})
	assert.ErrorIs(t, err, ErrNotText)
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("x\r\ny\r\n"),
		[]byte("x\r\ny\nz\r\n"),
		[]byte("\xEF\xBB\xBFbom"),
		{0xFF, 0xFE, 'h', 0, '\r', 0, '\n', 0, 'i', 0},
		{0xFE, 0xFF, 0, 'o', 0, 'k'},
	}
	for _, data := range inputs {
		text, f, err := Decode(data)
		require.NoError(t, err)
		out, err := Encode(text, f)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	f := Format{LineEnding: CRLF, BOM: true}

	require.NoError(t, Save(path, "one\ntwo\n", f))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFone\r\ntwo\r\n", string(raw))

	text, got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", text)
	assert.Equal(t, f, got)

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, Save(path, "three", Format{}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
