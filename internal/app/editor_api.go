// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/plugin"
	"github.com/bethropolis/tidecore/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer Access ---

func (api *appEditorAPI) GetBufferContent() string {
	return api.app.editor.Content()
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.IsModified()
}

func (api *appEditorAPI) GetSelectedText() []string {
	return api.app.editor.SelectedText()
}

// --- Buffer Modification ---

// ReplaceRange edits through the session so plugin changes are undoable.
func (api *appEditorAPI) ReplaceRange(start, end int, text string) (types.EditResult, error) {
	return api.app.editor.ReplaceRange(start, end, text)
}

func (api *appEditorAPI) SaveBuffer() error {
	return api.app.Save()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) UnsubscribeEvent(sub event.Subscription) {
	api.app.eventManager.Unsubscribe(sub)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
