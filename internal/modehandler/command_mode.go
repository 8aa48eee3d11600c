package modehandler

import (
	"errors"

	"github.com/bethropolis/tidecore/internal/commands"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
)

// handleActionCommand handles actions in ModeCommand.
func (mh *ModeHandler) handleActionCommand(ae input.ActionEvent) bool {
	switch ae.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer = append(mh.cmdBuffer, ae.Rune)
	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.leaveInput()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.leaveInput()
		mh.executeCommand(line)
		return true
	case input.ActionQuit:
		mh.leaveInput()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true
	default:
		return false
	}
	mh.statusBar.SetInput(":" + string(mh.cmdBuffer))
	return true
}

// leaveInput returns to ModeNormal from command or find input.
func (mh *ModeHandler) leaveInput() {
	mh.setMode(ModeNormal)
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.findBuffer = mh.findBuffer[:0]
	mh.statusBar.SetInput("")
}

// executeCommand runs one command line through the registry.
func (mh *ModeHandler) executeCommand(line string) {
	if line == "" {
		return
	}
	err := mh.commands.Execute(line)
	switch {
	case errors.Is(err, commands.ErrUnknownCommand):
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", line)
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Error executing command: %v", err)
	}
}
