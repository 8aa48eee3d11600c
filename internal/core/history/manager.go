// Package history provides undo/redo over whole-content snapshots.
package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

const DefaultMaxHistory = 100

// Target is what the history manager restores snapshots into.
type Target interface {
	Content() string
	Restore(text string) (types.EditResult, error)
}

// Manager holds the undo and redo snapshot stacks. New edits clear redo.
type Manager struct {
	undoStack  []string
	redoStack  []string
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager keeping at most maxHistory undo
// snapshots.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		maxHistory: maxHistory,
	}
}

// RecordBeforeMutation pushes the pre-edit snapshot and invalidates redo.
// When the depth limit is exceeded the oldest snapshot is dropped.
func (m *Manager) RecordBeforeMutation(snapshot string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.undoStack = append(m.undoStack, snapshot)
	if len(m.undoStack) > m.maxHistory {
		// FIFO eviction; copy so the dropped strings can be collected
		m.undoStack = append([]string(nil), m.undoStack[len(m.undoStack)-m.maxHistory:]...)
	}
	m.redoStack = m.redoStack[:0]

	logger.DebugTagf("history", "Recorded snapshot. Undo: %d, Redo: %d", len(m.undoStack), len(m.redoStack))
}

// Undo restores the most recent snapshot into target. The bool is false
// when there was nothing to undo; that is not an error.
func (m *Manager) Undo(target Target) (types.EditResult, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	edit, ok, err := swap(target, &m.undoStack, &m.redoStack)
	if err != nil {
		logger.Errorf("History: undo failed: %v", err)
		return types.EditResult{}, false, fmt.Errorf("undo failed: %w", err)
	}
	if !ok {
		logger.DebugTagf("history", "Nothing to undo.")
	}
	return edit, ok, nil
}

// Redo re-applies the most recently undone snapshot.
func (m *Manager) Redo(target Target) (types.EditResult, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	edit, ok, err := swap(target, &m.redoStack, &m.undoStack)
	if err != nil {
		logger.Errorf("History: redo failed: %v", err)
		return types.EditResult{}, false, fmt.Errorf("redo failed: %w", err)
	}
	if !ok {
		logger.DebugTagf("history", "Nothing to redo.")
	}
	return edit, ok, nil
}

// swap pops from src, pushes target's current content onto dst and
// restores the popped snapshot. Stacks are untouched on failure.
func swap(target Target, src, dst *[]string) (types.EditResult, bool, error) {
	if len(*src) == 0 {
		return types.EditResult{}, false, nil
	}
	top := len(*src) - 1
	snapshot := (*src)[top]
	current := target.Content()

	edit, err := target.Restore(snapshot)
	if err != nil {
		return types.EditResult{}, false, err
	}
	*src = (*src)[:top]
	*dst = append(*dst, current)
	return edit, true, nil
}

// Clear drops all history. Call this when a fresh document is loaded.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undoStack = nil
	m.redoStack = nil
	logger.DebugTagf("history", "Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redoStack) > 0
}

func (m *Manager) UndoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.undoStack)
}

func (m *Manager) RedoDepth() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.redoStack)
}
