package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEdit(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")

	e := s.Snapshot().Editing
	require.NotNil(t, e)
	assert.Equal(t, "carol", e.Value)
	assert.Equal(t, "carol", e.OriginalValue)
	assert.False(t, e.IsSaving)
	assert.Empty(t, e.Error)
	assert.NotEmpty(t, e.Token)

	first := e.Token
	s.StartEdit("2", "age", 29)
	e = s.Snapshot().Editing
	assert.Equal(t, RowID("2"), e.RowID)
	assert.NotEqual(t, first, e.Token)
}

func TestEditTransitions_NoOpWithoutEdit(t *testing.T) {
	s := newPeopleStore(t)
	s.UpdateEditValue("x")
	s.SetEditSaving(true)
	s.SetEditError("boom")
	s.CommitEdit()
	assert.Nil(t, s.Snapshot().Editing)
	assert.Equal(t, "carol", s.Snapshot().Rows["1"]["name"])
}

func TestUpdateEditValue_ClearsError(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.SetEditSaving(true)
	s.SetEditError("too short")

	e := s.Snapshot().Editing
	assert.False(t, e.IsSaving)
	assert.Equal(t, "too short", e.Error)

	s.UpdateEditValue("caroline")
	e = s.Snapshot().Editing
	assert.Equal(t, "caroline", e.Value)
	assert.Equal(t, "carol", e.OriginalValue)
	assert.Empty(t, e.Error)
}

func TestCancelEdit(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("zzz")
	s.CancelEdit()

	assert.Nil(t, s.Snapshot().Editing)
	assert.Equal(t, "carol", s.Snapshot().Rows["1"]["name"])
}

func TestCommitEdit_WritesRow(t *testing.T) {
	s := newPeopleStore(t)
	before := s.Snapshot()

	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("caroline")
	s.CommitEdit()

	after := s.Snapshot()
	assert.Nil(t, after.Editing)
	assert.Equal(t, "caroline", after.Rows["1"]["name"])
	assert.Equal(t, 41, after.Rows["1"]["age"])
	assert.Equal(t, "carol", before.Rows["1"]["name"])
}

func TestCommitEdit_RowGone(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("caroline")
	s.SetData([]Row{{"id": 2, "name": "alice"}}, byIDField)

	s.CommitEdit()
	st := s.Snapshot()
	assert.Nil(t, st.Editing)
	_, ok := st.Rows["1"]
	assert.False(t, ok)
	assert.Len(t, st.Rows, 1)
}

func TestCommit_Success(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("3", "age", 35)
	s.UpdateEditValue(36)

	var seen CellEdit
	err := s.Commit(context.Background(), func(_ context.Context, e CellEdit) error {
		seen = e
		assert.Equal(t, 36, s.Snapshot().Rows["3"]["age"], "commit was not optimistic")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, CellEdit{RowID: "3", ColID: "age", Value: 36}, seen)
	assert.Equal(t, 36, s.Snapshot().Rows["3"]["age"])
	assert.Nil(t, s.Snapshot().Editing)
}

func TestCommit_FailureRollsBack(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("3", "age", 35)
	s.UpdateEditValue(-1)

	calls := 0
	err := s.Commit(context.Background(), func(context.Context, CellEdit) error {
		calls++
		return errors.New("age must be positive")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	st := s.Snapshot()
	assert.Equal(t, 35, st.Rows["3"]["age"])
	require.NotNil(t, st.Editing)
	assert.Equal(t, RowID("3"), st.Editing.RowID)
	assert.Equal(t, "age", st.Editing.ColID)
	assert.Equal(t, -1, st.Editing.Value)
	assert.Equal(t, "age must be positive", st.Editing.Error)
	assert.False(t, st.Editing.IsSaving)
}

func TestBeginCommit_SavingIsObservable(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")

	var saving bool
	unsub := s.Subscribe(func(st *State) {
		if st.Editing != nil && st.Editing.IsSaving {
			saving = true
		}
	})
	defer unsub()

	p, ok := s.BeginCommit()
	require.True(t, ok)
	assert.True(t, saving)
	assert.Equal(t, "carol", p.Previous)
}

func TestBeginCommit_NothingOpen(t *testing.T) {
	s := newPeopleStore(t)
	_, ok := s.BeginCommit()
	assert.False(t, ok)
}

func TestResolveCommit_StaleRejectionKeepsNewerEditor(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("x")
	p, ok := s.BeginCommit()
	require.True(t, ok)

	// user moves on before the handler answers
	s.StartEdit("2", "name", "alice")
	s.UpdateEditValue("alicia")
	newer := s.Snapshot().Editing.Token

	s.ResolveCommit(p, errors.New("rejected"))

	st := s.Snapshot()
	assert.Equal(t, "carol", st.Rows["1"]["name"], "data was not rolled back")
	require.NotNil(t, st.Editing)
	assert.Equal(t, newer, st.Editing.Token)
	assert.Equal(t, "alicia", st.Editing.Value)
	assert.Empty(t, st.Editing.Error)
}

func TestResolveCommit_DoesNotClobberLaterWrite(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("x")
	p, _ := s.BeginCommit()

	s.UpdateRow("1", Row{"name": "refreshed"})
	s.ResolveCommit(p, errors.New("rejected"))

	st := s.Snapshot()
	assert.Equal(t, "refreshed", st.Rows["1"]["name"])
	require.NotNil(t, st.Editing)
	assert.Equal(t, "x", st.Editing.Value)
}

func TestResolveCommit_SuccessIsNoop(t *testing.T) {
	s := newPeopleStore(t)
	s.StartEdit("1", "name", "carol")
	s.UpdateEditValue("x")
	p, _ := s.BeginCommit()
	before := s.Snapshot()

	s.ResolveCommit(p, nil)
	assert.Same(t, before, s.Snapshot())
}
