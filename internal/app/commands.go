package app

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/logger"
)

// registerAppCommands registers commands that need the file or the
// session lifecycle: :w, :e, :q, :q!, :wq and :stats.
func (a *App) registerAppCommands() {
	cmds := map[string]func([]string) error{
		"w": func(args []string) error {
			if len(args) > 0 {
				if err := a.SaveAs(args[0]); err != nil {
					return err
				}
			} else if err := a.Save(); err != nil {
				return err
			}
			a.SetStatusMessage("Written %s", a.editor.FilePath())
			return nil
		},
		"e": func(args []string) error {
			path := a.editor.FilePath()
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return ErrNoFilePath
			}
			if a.editor.IsModified() {
				return fmt.Errorf("no write since last change")
			}
			return a.Open(path)
		},
		"q": func([]string) error {
			if a.editor.IsModified() {
				return fmt.Errorf("no write since last change (use :q! to discard)")
			}
			a.requestQuit()
			return nil
		},
		"q!": func([]string) error {
			a.requestQuit()
			return nil
		},
		"wq": func([]string) error {
			if err := a.Save(); err != nil {
				return err
			}
			a.requestQuit()
			return nil
		},
		"stats": func([]string) error {
			a.SetStatusMessage("%s", a.Stats())
			return nil
		},
	}
	for name, fn := range cmds {
		if err := a.commands.Register(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}
