// Package fileio reads and writes documents at the load/save boundary. It
// turns bytes on disk into the plain LF text the editor works on and
// remembers how to turn it back.
package fileio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned for data that does not decode to text.
var ErrNotText = errors.New("file is not valid text")

type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

func (l LineEnding) String() string {
	if l == CRLF {
		return "crlf"
	}
	return "lf"
}

// Format records how a document was stored.
type Format struct {
	Encoding   Encoding
	BOM        bool
	LineEnding LineEnding
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (f Format) codec() encoding.Encoding {
	switch f.Encoding {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return nil
	}
}

// Detect inspects the leading bytes for a byte order mark.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		return Format{Encoding: UTF8, BOM: true}
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return Format{Encoding: UTF16LE, BOM: true}
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return Format{Encoding: UTF16BE, BOM: true}
	}
	return Format{Encoding: UTF8}
}

// Decode converts raw file bytes to LF text and reports the format found.
func Decode(data []byte) (string, Format, error) {
	f := Detect(data)

	var raw []byte
	switch {
	case f.Encoding != UTF8:
		out, _, err := transform.Bytes(f.codec().NewDecoder(), data)
		if err != nil {
			return "", f, fmt.Errorf("%w: %s: %v", ErrNotText, f.Encoding, err)
		}
		raw = out
	case f.BOM:
		raw = data[len(utf8BOM):]
	default:
		raw = data
	}
	if !utf8.Valid(raw) {
		return "", f, fmt.Errorf("%w: invalid %s", ErrNotText, f.Encoding)
	}

	// Only uniformly CRLF files are normalised; mixed endings stay byte for
	// byte so a save does not rewrite untouched lines.
	text := string(raw)
	if crlf := strings.Count(text, "\r\n"); crlf > 0 && crlf == strings.Count(text, "\n") {
		f.LineEnding = CRLF
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, f, nil
}

// Encode converts LF text back to bytes in format f.
func Encode(text string, f Format) ([]byte, error) {
	if f.LineEnding == CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if codec := f.codec(); codec != nil {
		out, _, err := transform.Bytes(codec.NewEncoder(), []byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.Encoding, err)
		}
		return out, nil
	}
	if f.BOM {
		return append(append([]byte(nil), utf8BOM...), text...), nil
	}
	return []byte(text), nil
}

// Load reads path. A missing file yields empty text in the default format
// and an error wrapping fs.ErrNotExist, so callers can start a new file.
func Load(path string) (string, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", Format{}, err
	}
	text, f, err := Decode(data)
	if err != nil {
		return "", f, fmt.Errorf("load %s: %w", path, err)
	}
	logger.DebugTagf("fileio", "Loaded %s: %d bytes, %s, bom=%v, %s", path, len(data), f.Encoding, f.BOM, f.LineEnding)
	return text, f, nil
}

// Save writes text to path in format f. The file is replaced atomically
// and keeps its permissions if it already existed.
func Save(path, text string, f Format) error {
	data, err := Encode(text, f)
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logger.DebugTagf("fileio", "Saved %s: %d bytes", path, len(data))
	return nil
}
