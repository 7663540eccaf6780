package textedit

import "time"

// Entry is a single recorded undo-history item.
type Entry struct {
	Operation       Operation
	SelectionBefore Range
	SelectionAfter  Range
	Timestamp       time.Time
	GroupID         *uint64
}

func (e Entry) withGroup(id uint64) Entry {
	e.GroupID = &id
	return e
}

func sameGroup(a, b *uint64) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// UndoConfig tunes the undo manager's grouping and retention behavior.
type UndoConfig struct {
	MaxHistory        int
	GroupingTimeoutMs int64
	AutoGroupTyping   bool
}

// DefaultUndoConfig matches the defaults spec'd for editor undo history:
// 1000 entries, 500ms auto-grouping window, typing auto-grouped.
func DefaultUndoConfig() UndoConfig {
	return UndoConfig{
		MaxHistory:        1000,
		GroupingTimeoutMs: 500,
		AutoGroupTyping:   true,
	}
}

// UndoManager holds the undo/redo stacks for a single text buffer.
type UndoManager struct {
	undoStack []Entry
	redoStack []Entry
	config    UndoConfig

	clock Clock

	nextGroupID     uint64
	currentGroupID  *uint64
	inGroup         bool
	lastOperationAt *time.Time
}

// NewUndoManager returns a manager with default configuration.
func NewUndoManager() *UndoManager {
	return NewUndoManagerWithConfig(DefaultUndoConfig())
}

// NewUndoManagerWithConfig returns a manager with custom configuration.
func NewUndoManagerWithConfig(cfg UndoConfig) *UndoManager {
	return &UndoManager{config: cfg, clock: time.Now}
}

// WithClock installs an injectable clock, for deterministic grouping tests.
func (m *UndoManager) WithClock(clock Clock) *UndoManager {
	m.clock = clock
	return m
}

// MaxHistory returns the configured retention cap.
func (m *UndoManager) MaxHistory() int { return m.config.MaxHistory }

// SetMaxHistory updates the retention cap and trims immediately.
func (m *UndoManager) SetMaxHistory(max int) {
	m.config.MaxHistory = max
	m.trimHistory()
}

// Record records an operation, merging it into the previous entry when
// auto-grouping applies, and clears the redo stack.
func (m *UndoManager) Record(op Operation, before, after Range) {
	m.redoStack = nil

	now := m.clock()
	if m.shouldMergeWithPrevious(op, now) {
		last := &m.undoStack[len(m.undoStack)-1]
		if merged, ok := last.Operation.Merge(op); ok {
			last.Operation = merged
			last.SelectionAfter = after
			last.Timestamp = now
			m.lastOperationAt = &now
			return
		}
	}

	entry := Entry{Operation: op, SelectionBefore: before, SelectionAfter: after, Timestamp: now}
	if m.currentGroupID != nil {
		entry = entry.withGroup(*m.currentGroupID)
	}

	m.undoStack = append(m.undoStack, entry)
	m.lastOperationAt = &now
	m.trimHistory()
}

func (m *UndoManager) shouldMergeWithPrevious(op Operation, now time.Time) bool {
	if !m.config.AutoGroupTyping {
		return false
	}
	if m.lastOperationAt == nil {
		return false
	}
	elapsed := now.Sub(*m.lastOperationAt).Milliseconds()
	if elapsed > m.config.GroupingTimeoutMs {
		return false
	}
	if len(m.undoStack) == 0 {
		return false
	}
	return m.undoStack[len(m.undoStack)-1].Operation.CanMergeWith(op)
}

func (m *UndoManager) trimHistory() {
	if m.config.MaxHistory <= 0 {
		return
	}
	for len(m.undoStack) > m.config.MaxHistory {
		m.undoStack = m.undoStack[1:]
	}
}

// BeginGroup opens an explicit group. A BeginGroup while a group is
// already open is a no-op; groups do not nest, so the first EndGroup
// closes the open group.
func (m *UndoManager) BeginGroup() {
	if m.inGroup {
		return
	}
	id := m.nextGroupID
	m.nextGroupID++
	m.currentGroupID = &id
	m.inGroup = true
}

// EndGroup closes the current explicit group.
func (m *UndoManager) EndGroup() {
	m.currentGroupID = nil
	m.inGroup = false
}

// InGroup reports whether an explicit group is open.
func (m *UndoManager) InGroup() bool { return m.inGroup }

// Undo pops the top entry (and every consecutive entry sharing its group
// id), pushes them onto the redo stack, and returns them in pop order.
func (m *UndoManager) Undo() []Entry {
	if len(m.undoStack) == 0 {
		return nil
	}

	var popped []Entry
	first := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	groupID := first.GroupID
	popped = append(popped, first)

	if groupID != nil {
		for len(m.undoStack) > 0 {
			top := m.undoStack[len(m.undoStack)-1]
			if !sameGroup(top.GroupID, groupID) {
				break
			}
			m.undoStack = m.undoStack[:len(m.undoStack)-1]
			popped = append(popped, top)
		}
	}

	for i := len(popped) - 1; i >= 0; i-- {
		m.redoStack = append(m.redoStack, popped[i])
	}
	return popped
}

// Redo is the mirror of Undo.
func (m *UndoManager) Redo() []Entry {
	if len(m.redoStack) == 0 {
		return nil
	}

	var popped []Entry
	first := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	groupID := first.GroupID
	popped = append(popped, first)

	if groupID != nil {
		for len(m.redoStack) > 0 {
			top := m.redoStack[len(m.redoStack)-1]
			if !sameGroup(top.GroupID, groupID) {
				break
			}
			m.redoStack = m.redoStack[:len(m.redoStack)-1]
			popped = append(popped, top)
		}
	}

	for i := len(popped) - 1; i >= 0; i-- {
		m.undoStack = append(m.undoStack, popped[i])
	}
	return popped
}

// CanUndo reports whether the undo stack is non-empty.
func (m *UndoManager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (m *UndoManager) CanRedo() bool { return len(m.redoStack) > 0 }

// UndoCount returns the number of undo entries.
func (m *UndoManager) UndoCount() int { return len(m.undoStack) }

// RedoCount returns the number of redo entries.
func (m *UndoManager) RedoCount() int { return len(m.redoStack) }

// Clear empties both stacks and any open group.
func (m *UndoManager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
	m.currentGroupID = nil
	m.inGroup = false
	m.lastOperationAt = nil
}

// PeekUndo returns the top undo entry without removing it.
func (m *UndoManager) PeekUndo() (Entry, bool) {
	if len(m.undoStack) == 0 {
		return Entry{}, false
	}
	return m.undoStack[len(m.undoStack)-1], true
}

// PeekRedo returns the top redo entry without removing it.
func (m *UndoManager) PeekRedo() (Entry, bool) {
	if len(m.redoStack) == 0 {
		return Entry{}, false
	}
	return m.redoStack[len(m.redoStack)-1], true
}

// ResetGrouping forgets the last-operation timestamp, so the next recorded
// operation starts a fresh group regardless of elapsed time. Call when the
// user visibly pauses typing.
func (m *UndoManager) ResetGrouping() {
	m.lastOperationAt = nil
}

// ApplyUndo applies a batch of undone entries' inverses. Entries arrive in
// Undo()'s pop order (most recent first); inverses must be applied in that
// same order; applying oldest-first would invert a later op's insertion
// point against text that doesn't contain it yet. Returns the resulting
// text and the selection to restore (the earliest entry's pre-operation
// selection).
func ApplyUndo(text string, entries []Entry) (string, Range) {
	current := text
	var selection Range
	for _, entry := range entries {
		result := entry.Operation.Inverse().Apply(current)
		current = result.Text
		selection = entry.SelectionBefore
	}
	return current, selection
}

// ApplyRedo re-applies a batch of redone entries. Entries arrive in
// Redo()'s pop order (most recent first); forward application must walk
// oldest-first so each op's insertion point is valid against the text the
// prior ops produced, hence the reverse iteration here. Returns the
// resulting text and the final selection.
func ApplyRedo(text string, entries []Entry) (string, Range) {
	current := text
	var selection Range
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		result := entry.Operation.Apply(current)
		current = result.Text
		selection = entry.SelectionAfter
	}
	return current, selection
}
