// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/plugin"
	"github.com/bethropolis/tidecore/internal/types"
)

var _ plugin.EditorAPI = (*API)(nil)

// API is a fake editor holding plain content. Edits and saves dispatch the
// same events the real session does.
type API struct {
	Content   string
	Path      string
	Modified  bool
	Selection []string
	Config    map[string]map[string]interface{}
	SaveErr   error

	Saves    int
	Messages []string
	Commands map[string]plugin.CommandFunc
	Events   *event.Manager
}

func New(content string) *API {
	return &API{
		Content:  content,
		Path:     "test.txt",
		Commands: make(map[string]plugin.CommandFunc),
		Events:   event.NewManager(),
	}
}

func (a *API) GetBufferContent() string  { return a.Content }
func (a *API) GetBufferFilePath() string { return a.Path }
func (a *API) IsBufferModified() bool    { return a.Modified }
func (a *API) GetSelectedText() []string { return a.Selection }

func (a *API) GetBufferLineCount() int {
	return strings.Count(a.Content, "\n") + 1
}

func (a *API) ReplaceRange(start, end int, text string) (types.EditResult, error) {
	runes := []rune(a.Content)
	if start < 0 || end < start || end > len(runes) {
		return types.EditResult{}, fmt.Errorf("range [%d, %d) out of bounds", start, end)
	}
	a.Content = string(runes[:start]) + text + string(runes[end:])
	a.Modified = true
	newEnd := start + len([]rune(text))
	edit := types.EditResult{Start: start, OldEnd: end, NewEnd: newEnd, Delta: newEnd - end}
	a.Events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
	return edit, nil
}

func (a *API) SaveBuffer() error {
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Saves++
	a.Modified = false
	a.Events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: a.Path})
	return nil
}

func (a *API) DispatchEvent(t event.Type, data interface{}) { a.Events.Dispatch(t, data) }

func (a *API) SubscribeEvent(t event.Type, h event.Handler) event.Subscription {
	return a.Events.Subscribe(t, h)
}

func (a *API) UnsubscribeEvent(sub event.Subscription) { a.Events.Unsubscribe(sub) }

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, exists := a.Commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}

// Run executes a registered command.
func (a *API) Run(name string, args ...string) error {
	fn, ok := a.Commands[name]
	if !ok {
		return fmt.Errorf("unknown command %s", name)
	}
	return fn(args)
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}
