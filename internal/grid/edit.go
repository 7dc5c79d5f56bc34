package grid

import (
	"github.com/imgajeed76/vgrid/internal/util"
)

// StartEdit opens an editor on a cell, replacing any edit already open.
func (s *Store) StartEdit(rowID RowID, colID string, value any) {
	s.apply("startEdit", func(next *State) bool {
		next.Editing = &EditingState{
			RowID:         rowID,
			ColID:         colID,
			Value:         value,
			OriginalValue: value,
			Token:         util.NewULID(),
		}
		return true
	})
}

// UpdateEditValue replaces the in-progress value and clears any error.
func (s *Store) UpdateEditValue(value any) {
	s.updateEditing("updateEditValue", func(e *EditingState) {
		e.Value = value
		e.Error = ""
	})
}

// SetEditSaving marks the open edit as waiting on persistence.
func (s *Store) SetEditSaving(saving bool) {
	s.updateEditing("setEditSaving", func(e *EditingState) {
		e.IsSaving = saving
	})
}

// SetEditError records a validation message on the open edit. An empty
// message clears it. Saving always stops.
func (s *Store) SetEditError(msg string) {
	s.updateEditing("setEditError", func(e *EditingState) {
		e.Error = msg
		e.IsSaving = false
	})
}

// CancelEdit discards the open edit.
func (s *Store) CancelEdit() {
	s.apply("cancelEdit", func(next *State) bool {
		had := next.Editing != nil
		next.Editing = nil
		return had
	})
}

// CommitEdit writes the edited value into its row and closes the editor. If
// the row has disappeared the editor is closed and no data changes. Commit
// neither validates nor persists; see BeginCommit for the full protocol.
func (s *Store) CommitEdit() {
	s.apply("commitEdit", func(next *State) bool {
		_, ok := commitEditing(next)
		return ok
	})
}

// commitEditing applies the open edit to next and returns the value the
// field held before the write.
func commitEditing(next *State) (previous any, ok bool) {
	e := next.Editing
	if e == nil {
		return nil, false
	}
	next.Editing = nil

	row, exists := next.Rows[e.RowID]
	if !exists {
		return nil, false
	}
	previous = row[e.ColID]
	updated := row.Clone()
	updated[e.ColID] = e.Value
	next.Rows = replaceRow(next.Rows, e.RowID, updated)
	return previous, true
}

// updateEditing copies the open edit, lets fn change the copy and installs
// it. Nothing changes when no edit is open.
func (s *Store) updateEditing(action string, fn func(e *EditingState)) {
	s.apply(action, func(next *State) bool {
		if next.Editing == nil {
			return false
		}
		e := *next.Editing
		fn(&e)
		next.Editing = &e
		return true
	})
}
