package grid

import (
	"context"
	"reflect"
)

// CellEdit is what an edit handler is asked to persist.
type CellEdit struct {
	RowID RowID
	ColID string
	Value any
}

// EditHandler persists one committed cell. A non-nil error rejects the edit;
// its message is shown to the user.
type EditHandler func(ctx context.Context, edit CellEdit) error

// PendingCommit captures everything needed to roll an optimistic commit back,
// independent of what the store looks like by the time the handler returns.
type PendingCommit struct {
	CellEdit
	Previous any
	Token    string
}

// BeginCommit starts the optimistic commit of the open edit. The edit is
// marked saving, then written into its row and the editor is closed. The
// returned PendingCommit is handed to the handler and then to ResolveCommit.
// ok is false when there was nothing to persist: no open edit, or its row
// no longer exists.
func (s *Store) BeginCommit() (p PendingCommit, ok bool) {
	s.SetEditSaving(true)

	s.apply("commitEdit", func(next *State) bool {
		e := next.Editing
		if e == nil {
			return false
		}
		p = PendingCommit{
			CellEdit: CellEdit{RowID: e.RowID, ColID: e.ColID, Value: e.Value},
			Token:    e.Token,
		}
		p.Previous, ok = commitEditing(next)
		return ok
	})
	return p, ok
}

// ResolveCommit finishes a commit once the handler has answered.
//
// On failure the field is restored to its previous value, unless something
// else has written the field since, and the editor is reopened with the
// attempted value and the error message. If a newer edit has been opened in
// the meantime the editor is left alone.
func (s *Store) ResolveCommit(p PendingCommit, err error) {
	if err == nil {
		s.log.Debug("cell edit persisted", "row", p.RowID, "col", p.ColID)
		return
	}

	snap := s.Snapshot()
	if row, ok := snap.Rows[p.RowID]; ok && reflect.DeepEqual(row[p.ColID], p.Value) {
		s.UpdateRow(p.RowID, Row{p.ColID: p.Previous})
	}

	if e := s.Snapshot().Editing; e != nil && e.Token != p.Token {
		s.log.Debug("stale edit rejection dropped", "row", p.RowID, "col", p.ColID, "error", err)
		return
	}

	s.log.Debug("cell edit rejected", "row", p.RowID, "col", p.ColID, "error", err)
	s.StartEdit(p.RowID, p.ColID, p.Value)
	s.SetEditError(err.Error())
}

// Commit runs the full optimistic protocol synchronously: begin, call
// handler, resolve. It returns the handler's error.
func (s *Store) Commit(ctx context.Context, handler EditHandler) error {
	p, ok := s.BeginCommit()
	if !ok {
		return nil
	}
	var err error
	if handler != nil {
		err = handler(ctx, p.CellEdit)
	}
	s.ResolveCommit(p, err)
	return err
}
