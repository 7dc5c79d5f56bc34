package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveFocus_StartsAtFirstCell(t *testing.T) {
	s := newPeopleStore(t)
	s.MoveFocus(NavDown, 10)

	f := s.Snapshot().Focus
	require.NotNil(t, f)
	assert.Equal(t, CellRef{RowID: "2", ColID: "id"}, *f)
}

func TestMoveFocus_Clamps(t *testing.T) {
	s := newPeopleStore(t)
	s.SetFocus("1", "id")

	s.MoveFocus(NavUp, 10)
	s.MoveFocus(NavLeft, 10)
	assert.Equal(t, CellRef{RowID: "1", ColID: "id"}, *s.Snapshot().Focus)

	s.MoveFocus(NavPageDown, 10)
	assert.Equal(t, RowID("4"), s.Snapshot().Focus.RowID)

	s.MoveFocus(NavRowEnd, 0)
	// city is pinned right, so it is last visually
	assert.Equal(t, "city", s.Snapshot().Focus.ColID)

	s.MoveFocus(NavHome, 0)
	assert.Equal(t, RowID("1"), s.Snapshot().Focus.RowID)
}

func TestFocus_SurvivesSort(t *testing.T) {
	s := newPeopleStore(t)
	s.SetFocus("3", "name")

	s.ToggleSort("name", false)
	st := s.Snapshot()
	assert.Equal(t, CellRef{RowID: "3", ColID: "name"}, *st.Focus)

	// alice, bob, carol, dave: bob is second, so down lands on carol (1)
	s.MoveFocus(NavDown, 1)
	assert.Equal(t, RowID("1"), s.Snapshot().Focus.RowID)
}

func TestSetFocus_UnknownRowIgnored(t *testing.T) {
	s := newPeopleStore(t)
	s.SetFocus("nope", "name")
	assert.Nil(t, s.Snapshot().Focus)
}

func TestSelection(t *testing.T) {
	s := newPeopleStore(t)

	s.ToggleRowSelection("1")
	s.ToggleRowSelection("3")
	s.ToggleRowSelection("missing")
	st := s.Snapshot()
	assert.True(t, st.IsSelected("1"))
	assert.True(t, st.IsSelected("3"))
	assert.Len(t, st.Selection, 2)

	s.ToggleRowSelection("1")
	assert.False(t, s.Snapshot().IsSelected("1"))
	assert.True(t, st.IsSelected("1"), "previous snapshot was mutated")

	s.SetSelection([]RowID{"2", "zzz"})
	assert.Len(t, s.Snapshot().Selection, 1)

	s.ClearSelection()
	assert.Empty(t, s.Snapshot().Selection)
}

func TestSetScroll(t *testing.T) {
	s := NewStore()
	s.SetScroll(-5, 40)
	assert.Zero(t, s.Snapshot().ScrollTop)
	assert.Equal(t, 40.0, s.Snapshot().ScrollLeft)
}
