// Package staging tracks the difference between bindings known to be on
// the device and pending edits, and applies the pending set as one
// transaction.
package staging

import (
	"maps"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus"
	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/venus/binding"
)

// maxHistory caps the undo history; the oldest snapshot is dropped first.
const maxHistory = 50

// Manager holds the committed base state and the staged edits that shadow
// it, with undo/redo over staging operations. Undo granularity is one
// staging operation: each snapshot restores the complete pending set.
// Not safe for concurrent use.
type Manager struct {
	base    map[venus.ButtonKey]binding.Action
	staged  map[venus.ButtonKey]binding.Action
	history []map[venus.ButtonKey]binding.Action
	redo    []map[venus.ButtonKey]binding.Action
}

func NewManager() *Manager {
	return &Manager{
		base:   make(map[venus.ButtonKey]binding.Action),
		staged: make(map[venus.ButtonKey]binding.Action),
	}
}

// LoadBaseState replaces the authoritative device state and discards all
// staged changes and history.
func (m *Manager) LoadBaseState(state map[venus.ButtonKey]binding.Action) {
	m.base = maps.Clone(state)
	if m.base == nil {
		m.base = make(map[venus.ButtonKey]binding.Action)
	}
	m.staged = make(map[venus.ButtonKey]binding.Action)
	m.history = nil
	m.redo = nil
}

// StageChange records a pending binding for a button, shadowing the base
// state. Staging invalidates the redo stack.
func (m *Manager) StageChange(button venus.ButtonKey, action binding.Action) {
	m.pushHistory()
	m.redo = nil
	m.staged[button] = action
}

// ClearStage discards all staged changes. The discard itself is undoable.
func (m *Manager) ClearStage() {
	m.pushHistory()
	m.redo = nil
	m.staged = make(map[venus.ButtonKey]binding.Action)
}

// Undo restores the staged set to its state before the last staging
// operation. Returns false when there is nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.history) == 0 {
		return false
	}
	m.redo = append(m.redo, m.staged)
	m.staged = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return true
}

// Redo reverses the last Undo. Returns false when there is nothing to redo.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	m.history = append(m.history, m.staged)
	m.staged = m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	return true
}

func (m *Manager) CanUndo() bool { return len(m.history) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// EffectiveAction returns the binding for a button with staged changes
// applied. ok is false when neither state knows the button.
func (m *Manager) EffectiveAction(button venus.ButtonKey) (binding.Action, bool) {
	if a, ok := m.staged[button]; ok {
		return a, true
	}
	a, ok := m.base[button]
	return a, ok
}

// AllEffective returns the complete binding map with staged changes
// applied. The result is a copy.
func (m *Manager) AllEffective() map[venus.ButtonKey]binding.Action {
	state := maps.Clone(m.base)
	maps.Copy(state, m.staged)
	return state
}

// StagedChanges returns a copy of the pending edits.
func (m *Manager) StagedChanges() map[venus.ButtonKey]binding.Action {
	return maps.Clone(m.staged)
}

// HasChanges reports whether any edits are pending.
func (m *Manager) HasChanges() bool { return len(m.staged) > 0 }

// Commit folds the staged changes into the base state after a successful
// device sync and clears all history.
func (m *Manager) Commit() {
	maps.Copy(m.base, m.staged)
	m.staged = make(map[venus.ButtonKey]binding.Action)
	m.history = nil
	m.redo = nil
}

func (m *Manager) pushHistory() {
	m.history = append(m.history, maps.Clone(m.staged))
	if len(m.history) > maxHistory {
		m.history = m.history[1:]
	}
}
