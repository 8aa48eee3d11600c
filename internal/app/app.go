// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/bethropolis/tidecore/internal/commands"
	"github.com/bethropolis/tidecore/internal/config"
	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/clipboard"
	"github.com/bethropolis/tidecore/internal/core/text"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/fileio"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/modehandler"
	"github.com/bethropolis/tidecore/internal/plugin"
	"github.com/bethropolis/tidecore/internal/render"
	"github.com/bethropolis/tidecore/internal/statusbar"
	"github.com/bethropolis/tidecore/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// ErrNoFilePath is returned when saving a document that was never named.
var ErrNoFilePath = errors.New("no file name")

// App wires one editing session to files, commands, plugins and the
// terminal view. All of its methods run on the owner goroutine.
type App struct {
	cfg           *config.Config
	eventManager  *event.Manager
	editor        *core.Editor
	pluginManager *plugin.Manager
	commands      *commands.Registry
	statusBar     *statusbar.StatusBar
	modeHandler   *modehandler.ModeHandler
	painter       *render.Painter
	editorAPI     plugin.EditorAPI
	format        fileio.Format // encoding and line endings of the open file

	output io.Writer // echo of status messages; nil when interactive

	tuiManager *tui.TUI
	quit       chan struct{}
	quitOnce   sync.Once
}

// NewApp builds a session from cfg. Plugins are initialized before it
// returns; call Open to load a document.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	eventManager := event.NewManager()
	editor := core.NewEditor(nil, core.Options{
		HistoryDepth:  cfg.Editor.HistoryDepth,
		TabWidth:      cfg.Editor.TabWidth,
		FoldMode:      cfg.FoldMode(),
		AsyncFolds:    cfg.Fold.Async,
		FoldDebounce:  cfg.Fold.Debounce,
		SearchHistory: cfg.Search.HistorySize,
		SearchTimeout: cfg.Search.Timeout,
		Clipboard:     clipboard.NewDefault(cfg.Editor.SystemClipboard),
		Events:        eventManager,
	})

	a := &App{
		cfg:           cfg,
		eventManager:  eventManager,
		editor:        editor,
		pluginManager: plugin.NewManager(),
		commands:      commands.NewRegistry(),
		statusBar:     statusbar.New(statusBarConfig(cfg.Styles)),
		painter:       render.NewPainter(painterStyles(cfg.Styles), cfg.Editor.TabWidth),
		quit:          make(chan struct{}),
	}
	a.editorAPI = newEditorAPI(a)
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		Commands:       a.commands,
		StatusBar:      a.statusBar,
		Save:           a.Save,
		Quit:           a.requestQuit,
		PageSize:       a.pageSize,
	})

	commands.RegisterEditorCommands(a.commands, editor, a.SetStatusMessage)
	a.registerAppCommands()
	a.subscribeStatus()

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	n := a.pluginManager.InitializePlugins(a.editorAPI)
	logger.Debugf("App: %d plugin(s) initialized", n)
	return a
}

func painterStyles(defs map[string]render.StyleDef) render.Styles {
	styles, err := render.DefaultStyles().WithOverrides(defs)
	if err != nil {
		logger.Warnf("App: %v", err)
	}
	return styles
}

// statusBarConfig applies the status, status_message and status_input
// styles.
func statusBarConfig(defs map[string]render.StyleDef) statusbar.Config {
	sc := statusbar.DefaultConfig()
	for key, target := range map[string]*tcell.Style{
		"status":         &sc.StyleDefault,
		"status_message": &sc.StyleMessage,
		"status_input":   &sc.StyleInput,
	} {
		def, ok := defs[key]
		if !ok {
			continue
		}
		style, err := def.Style(*target)
		if err != nil {
			logger.Warnf("App: style %s: %v", key, err)
			continue
		}
		*target = style
	}
	return sc
}

// Editor returns the session's editor.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// Events returns the session's event manager.
func (a *App) Events() *event.Manager {
	return a.eventManager
}

// SetOutput echoes every status message to w, one per line.
func (a *App) SetOutput(w io.Writer) {
	a.output = w
}

// Open loads path into the editor. A file that does not exist yet starts
// an empty document under that name.
func (a *App) Open(path string) error {
	content, format := "", fileio.Format{}
	if path != "" {
		var err error
		content, format, err = fileio.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Infof("App: %s does not exist, starting a new file", path)
			content, format = "", fileio.Format{}
		case err != nil:
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	if err := a.editor.LoadFromText(content, path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.format = format
	logger.Debugf("App: opened %q as %s/%s", path, format.Encoding, format.LineEnding)
	return nil
}

// Save writes the document to its file in the format it was read with.
func (a *App) Save() error {
	path := a.editor.FilePath()
	if path == "" {
		return ErrNoFilePath
	}
	if err := fileio.Save(path, a.editor.Content(), a.format); err != nil {
		return err
	}
	a.editor.MarkSaved()
	logger.Infof("App: saved %s", path)
	return nil
}

// SaveAs renames the document and saves it.
func (a *App) SaveAs(path string) error {
	if path == "" {
		return ErrNoFilePath
	}
	a.editor.SetFilePath(path)
	return a.Save()
}

// Execute runs one command line and signals that the session is idle.
func (a *App) Execute(line string) error {
	err := a.commands.Execute(line)
	a.idle()
	return err
}

// Stats counts the document's lines, words and characters.
func (a *App) Stats() text.Stats {
	return text.Count(a.editor.Content())
}

// Diff returns the unsaved changes as a unified diff.
func (a *App) Diff() string {
	return a.editor.UnsavedDiff()
}

// SetStatusMessage shows a transient message.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	if a.output != nil {
		fmt.Fprintf(a.output, format+"\n", args...)
	}
}

// Close shuts plugins down and stops background work.
func (a *App) Close() {
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	a.pluginManager.ShutdownPlugins()
	a.editor.Close()
	if a.editor.IsModified() {
		logger.Warnf("App: exiting with unsaved changes")
	}
}

// idle tells deferred work, such as autosave, that an operation finished.
func (a *App) idle() {
	a.eventManager.Dispatch(event.TypeIdle, nil)
}

func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}
