// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidecore/internal/core/text"
	"github.com/bethropolis/tidecore/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// WordCount reports line, word and character counts for the document or
// the current selections.
type WordCount struct {
	api plugin.EditorAPI
}

func New() plugin.Plugin {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}

	if sel := p.api.GetSelectedText(); len(sel) > 0 {
		stats := text.Count(strings.Join(sel, "\n"))
		p.api.SetStatusMessage("Selection (%d): %s", len(sel), stats)
		return nil
	}
	p.api.SetStatusMessage("%s", text.Count(p.api.GetBufferContent()))
	return nil
}
