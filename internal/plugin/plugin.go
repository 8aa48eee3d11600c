// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/types"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
// This acts as a controlled interface, preventing plugins from accessing everything.
type EditorAPI interface {
	// --- Buffer Access ---
	GetBufferContent() string
	GetBufferLineCount() int
	GetBufferFilePath() string
	IsBufferModified() bool
	GetSelectedText() []string

	// --- Buffer Modification ---
	// Edits go through the editor session, so undo, cursors, folds and
	// search all see them.
	ReplaceRange(start, end int, text string) (types.EditResult, error)
	SaveBuffer() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription
	UnsubscribeEvent(sub event.Subscription)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
