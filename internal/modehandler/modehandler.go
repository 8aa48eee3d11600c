// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/bethropolis/tidecore/internal/commands"
	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
)

func (m InputMode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeFind:
		return "FIND"
	default:
		return "NORMAL"
	}
}

// ModeHandler turns key events into editor operations according to the
// current input mode.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	commands       *commands.Registry
	statusBar      *statusbar.StatusBar
	save           func() error
	quit           func()
	pageSize       func() int

	currentMode      InputMode
	cmdBuffer        []rune
	findBuffer       []rune
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	Commands       *commands.Registry
	StatusBar      *statusbar.StatusBar
	Save           func() error
	Quit           func()
	PageSize       func() int // visible text rows; nil means 10
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.Commands == nil || cfg.StatusBar == nil || cfg.Save == nil || cfg.Quit == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.PageSize == nil {
		cfg.PageSize = func() int { return 10 }
	}
	mh := &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		commands:       cfg.Commands,
		statusBar:      cfg.StatusBar,
		save:           cfg.Save,
		quit:           cfg.Quit,
		pageSize:       cfg.PageSize,
	}
	mh.statusBar.SetEditorMode(ModeNormal.String())
	return mh
}

// HandleKeyEvent decides what to do based on current mode and key event.
// It reports whether the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var processed bool
	switch mh.currentMode {
	case ModeNormal:
		processed = mh.handleActionNormal(actionEvent)
	case ModeCommand:
		processed = mh.handleActionCommand(actionEvent)
	case ModeFind:
		processed = mh.handleActionFind(actionEvent)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
	}
	mh.statusBar.SetEditorMode(mh.currentMode.String())
	return processed
}

func (mh *ModeHandler) setMode(m InputMode) {
	mh.currentMode = m
	logger.Debugf("ModeHandler: Mode %s", m)
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, if any.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// GetFindBuffer returns the pattern being typed, if any.
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return string(mh.findBuffer)
	}
	return ""
}
