package core

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// UnsavedDiff returns a unified diff from the last loaded or saved content
// to the current content, or "" when the document is unmodified.
func (e *Editor) UnsavedDiff() string {
	if !e.buffer.IsModified() {
		return ""
	}
	name := e.buffer.FilePath()
	if name == "" {
		name = "untitled"
	}
	original := e.buffer.OriginalContent()
	edits := myers.ComputeEdits(span.URIFromPath(name), original, e.buffer.Content())
	return fmt.Sprint(gotextdiff.ToUnified(name+" (saved)", name, original, edits))
}
