package grid

import (
	"maps"
	"slices"
)

// Intent is an already-decoded navigation request.
type Intent int

const (
	NavUp Intent = iota
	NavDown
	NavLeft
	NavRight
	NavPageUp
	NavPageDown
	NavHome
	NavEnd
	NavRowStart
	NavRowEnd
)

// SetFocus focuses a cell by identity. Unknown rows are ignored.
func (s *Store) SetFocus(rowID RowID, colID string) {
	s.apply("setFocus", func(next *State) bool {
		if _, ok := next.Rows[rowID]; !ok {
			return false
		}
		next.Focus = &CellRef{RowID: rowID, ColID: colID}
		return true
	})
}

// MoveFocus moves the focused cell one step in the direction of intent.
// Rows follow the current display order and columns the visual order, so
// focus stays on the same logical cell across sorts and column moves.
// pageSize is the number of rows a page step covers.
func (s *Store) MoveFocus(intent Intent, pageSize int) {
	s.apply("moveFocus", func(next *State) bool {
		cols := next.VisualColumns()
		if len(next.RowOrder) == 0 || len(cols) == 0 {
			return false
		}

		row, col := 0, 0
		if f := next.Focus; f != nil {
			if i := slices.Index(next.RowOrder, f.RowID); i >= 0 {
				row = i
			}
			if j := slices.Index(cols, f.ColID); j >= 0 {
				col = j
			}
		}

		if pageSize < 1 {
			pageSize = 1
		}
		switch intent {
		case NavUp:
			row--
		case NavDown:
			row++
		case NavLeft:
			col--
		case NavRight:
			col++
		case NavPageUp:
			row -= pageSize
		case NavPageDown:
			row += pageSize
		case NavHome:
			row = 0
		case NavEnd:
			row = len(next.RowOrder) - 1
		case NavRowStart:
			col = 0
		case NavRowEnd:
			col = len(cols) - 1
		}
		row = min(max(row, 0), len(next.RowOrder)-1)
		col = min(max(col, 0), len(cols)-1)

		next.Focus = &CellRef{RowID: next.RowOrder[row], ColID: cols[col]}
		return true
	})
}

// ToggleRowSelection adds or removes one row from the selection.
func (s *Store) ToggleRowSelection(id RowID) {
	s.apply("toggleRowSelection", func(next *State) bool {
		if _, ok := next.Rows[id]; !ok {
			return false
		}
		sel := maps.Clone(next.Selection)
		if sel == nil {
			sel = map[RowID]struct{}{}
		}
		if _, ok := sel[id]; ok {
			delete(sel, id)
		} else {
			sel[id] = struct{}{}
		}
		next.Selection = sel
		return true
	})
}

// SetSelection replaces the selection. Ids not in the dataset are dropped.
func (s *Store) SetSelection(ids []RowID) {
	s.apply("setSelection", func(next *State) bool {
		sel := make(map[RowID]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := next.Rows[id]; ok {
				sel[id] = struct{}{}
			}
		}
		next.Selection = sel
		return true
	})
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection() {
	s.apply("clearSelection", func(next *State) bool {
		next.Selection = map[RowID]struct{}{}
		return true
	})
}

// SetScroll records the scroll position.
func (s *Store) SetScroll(top, left float64) {
	s.apply("setScroll", func(next *State) bool {
		next.ScrollTop = max(0, top)
		next.ScrollLeft = max(0, left)
		return true
	})
}
