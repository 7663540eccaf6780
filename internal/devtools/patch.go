package devtools

import (
	"time"

	"github.com/google/uuid"
)

// OperationType discriminates how a PatchOperation changes a property.
type OperationType int

const (
	OpAdd OperationType = iota
	OpRemove
	OpModify
)

// PatchOperation is a single property change recorded in a patch.
type PatchOperation struct {
	ComponentID string
	Property    string
	OldValue    *StyleValue
	NewValue    *StyleValue
	Type        OperationType
}

// EditPatch bundles one or more operations committed together, with enough
// metadata to undo/redo and, later, persist to source.
type EditPatch struct {
	ID            string
	Description   string
	Operations    []PatchOperation
	Timestamp     time.Time
	SessionID     string
	AffectedFiles []string
	Persisted     bool
}

// NewEditPatch returns an empty, freshly-IDed patch.
func NewEditPatch(description string) *EditPatch {
	return &EditPatch{
		ID:          uuid.NewString(),
		Description: description,
		Timestamp:   time.Now(),
	}
}

// PatchFromChanges builds a patch with one operation per pending change.
// Old values are only populated if the caller already tracked them in the
// pending change; absent old values mean "unknown prior value", not "no
// prior value" — see ApplyOverridesReverse's removal fallback.
func PatchFromChanges(changes []PendingChange, description string) *EditPatch {
	patch := NewEditPatch(description)
	for _, c := range changes {
		value := c.Value
		patch.Operations = append(patch.Operations, PatchOperation{
			ComponentID: string(c.Handle),
			Property:    c.Property,
			NewValue:    &value,
			Type:        OpModify,
		})
	}
	return patch
}

// AddOperation appends an operation to the patch.
func (p *EditPatch) AddOperation(op PatchOperation) {
	p.Operations = append(p.Operations, op)
}

// IsEmpty reports whether the patch has no operations.
func (p *EditPatch) IsEmpty() bool { return len(p.Operations) == 0 }

// Len returns the operation count.
func (p *EditPatch) Len() int { return len(p.Operations) }

// MarkPersisted records that the patch has been written to source.
func (p *EditPatch) MarkPersisted() { p.Persisted = true }

// Inverse returns a new patch that undoes p: each operation's old/new
// values and Add/Remove type swap (Modify inverts to Modify).
func (p *EditPatch) Inverse() *EditPatch {
	inv := &EditPatch{
		ID:            uuid.NewString(),
		Description:   "Undo: " + p.Description,
		Timestamp:     time.Now(),
		SessionID:     p.SessionID,
		AffectedFiles: append([]string(nil), p.AffectedFiles...),
	}
	for _, op := range p.Operations {
		invType := op.Type
		switch op.Type {
		case OpAdd:
			invType = OpRemove
		case OpRemove:
			invType = OpAdd
		}
		inv.Operations = append(inv.Operations, PatchOperation{
			ComponentID: op.ComponentID,
			Property:    op.Property,
			OldValue:    op.NewValue,
			NewValue:    op.OldValue,
			Type:        invType,
		})
	}
	return inv
}

// ApplyOverrides applies every operation's new value forward onto the
// given override table.
func ApplyOverrides(overrides *Overrides, patch *EditPatch) {
	for _, op := range patch.Operations {
		handle := Handle(op.ComponentID)
		if op.NewValue != nil {
			overrides.Set(handle, op.Property, *op.NewValue)
		}
	}
}

// ApplyOverridesReverse applies every operation's old value onto the
// override table; an operation with no old value is removed entirely
// rather than left at its new value.
func ApplyOverridesReverse(overrides *Overrides, patch *EditPatch) {
	for _, op := range patch.Operations {
		handle := Handle(op.ComponentID)
		if op.OldValue != nil {
			overrides.Set(handle, op.Property, *op.OldValue)
		} else {
			overrides.Remove(handle, op.Property)
		}
	}
}

// PatchHistory is a bounded undo/redo stack of committed patches.
type PatchHistory struct {
	undoStack []*EditPatch
	redoStack []*EditPatch
	maxSize   int
}

// NewPatchHistory returns a history with the conventional 100-patch cap.
func NewPatchHistory() *PatchHistory {
	return &PatchHistory{maxSize: 100}
}

// NewPatchHistoryWithMaxSize returns a history with a custom cap.
func NewPatchHistoryWithMaxSize(max int) *PatchHistory {
	return &PatchHistory{maxSize: max}
}

// Push records a new patch, clearing redo and trimming the oldest entry
// past the cap.
func (h *PatchHistory) Push(patch *EditPatch) {
	h.undoStack = append(h.undoStack, patch)
	h.redoStack = nil
	for h.maxSize > 0 && len(h.undoStack) > h.maxSize {
		h.undoStack = h.undoStack[1:]
	}
}

// Undo pops the most recent patch onto the redo stack and returns it.
func (h *PatchHistory) Undo() *EditPatch {
	if len(h.undoStack) == 0 {
		return nil
	}
	patch := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, patch)
	return patch
}

// Redo pops the most recently undone patch back onto the undo stack and
// returns it.
func (h *PatchHistory) Redo() *EditPatch {
	if len(h.redoStack) == 0 {
		return nil
	}
	patch := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, patch)
	return patch
}

func (h *PatchHistory) CanUndo() bool   { return len(h.undoStack) > 0 }
func (h *PatchHistory) CanRedo() bool   { return len(h.redoStack) > 0 }
func (h *PatchHistory) UndoCount() int  { return len(h.undoStack) }
func (h *PatchHistory) RedoCount() int  { return len(h.redoStack) }

// Last peeks the most recent patch without popping it.
func (h *PatchHistory) Last() *EditPatch {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// Clear empties both stacks.
func (h *PatchHistory) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// AllPatches returns every patch currently on the undo stack, oldest
// first, for export.
func (h *PatchHistory) AllPatches() []*EditPatch {
	return append([]*EditPatch(nil), h.undoStack...)
}

// Bundle groups multiple patches for export/import.
type Bundle struct {
	Version  string
	Patches  []*EditPatch
	Metadata map[string]string
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{Version: "1.0", Metadata: make(map[string]string)}
}

// Add appends a patch to the bundle.
func (b *Bundle) Add(patch *EditPatch) {
	b.Patches = append(b.Patches, patch)
}
