package grid

import (
	"maps"
	"slices"

	"github.com/imgajeed76/vgrid/internal/virtual"
)

// SetColumns installs column definitions and rebuilds the layout state from
// them: widths (floored), order, pin sets and visibility.
func (s *Store) SetColumns(defs []ColumnDef) {
	s.apply("setColumns", func(next *State) bool {
		applyColumns(next, defs)
		return true
	})
}

func applyColumns(next *State, defs []ColumnDef) {
	widths := make(map[string]float64, len(defs))
	order := make([]string, 0, len(defs))
	visibility := make(map[string]bool, len(defs))
	var pinned virtual.PinnedColumns

	for _, d := range defs {
		w := d.Width
		if w == 0 {
			w = virtual.DefaultColumnWidth
		}
		widths[d.ID] = max(MinColumnWidth, w)
		order = append(order, d.ID)
		visibility[d.ID] = !d.Hidden
		switch d.Pin {
		case virtual.PinLeft:
			pinned.Left = append(pinned.Left, d.ID)
		case virtual.PinRight:
			pinned.Right = append(pinned.Right, d.ID)
		}
	}

	next.Columns = slices.Clone(defs)
	next.ColumnWidths = widths
	next.ColumnOrder = order
	next.ColumnVisibility = visibility
	next.PinnedColumns = pinned
}

// ResizeColumn stores max(MinColumnWidth, width). There is no upper bound.
// Unknown ids are ignored.
func (s *Store) ResizeColumn(colID string, width float64) {
	s.apply("resizeColumn", func(next *State) bool {
		if !slices.Contains(next.ColumnOrder, colID) {
			return false
		}
		widths := maps.Clone(next.ColumnWidths)
		if widths == nil {
			widths = map[string]float64{}
		}
		widths[colID] = max(MinColumnWidth, width)
		next.ColumnWidths = widths
		return true
	})
}

// ToggleColumnVisibility flips a column's visibility. Hiding the last visible
// column is allowed.
func (s *Store) ToggleColumnVisibility(colID string) {
	s.apply("toggleColumnVisibility", func(next *State) bool {
		if !slices.Contains(next.ColumnOrder, colID) {
			return false
		}
		vis := maps.Clone(next.ColumnVisibility)
		if vis == nil {
			vis = map[string]bool{}
		}
		current, ok := vis[colID]
		vis[colID] = ok && !current
		next.ColumnVisibility = vis
		return true
	})
}

// MoveColumn removes dragID from the column order and reinserts it at
// hoverID's index. It does nothing when the ids are equal or either is
// missing.
func (s *Store) MoveColumn(dragID, hoverID string) {
	s.apply("moveColumn", func(next *State) bool {
		if dragID == hoverID {
			return false
		}
		from := slices.Index(next.ColumnOrder, dragID)
		to := slices.Index(next.ColumnOrder, hoverID)
		if from < 0 || to < 0 {
			return false
		}
		order := slices.Delete(slices.Clone(next.ColumnOrder), from, from+1)
		next.ColumnOrder = slices.Insert(order, to, dragID)
		return true
	})
}

// PinColumn moves a column into the given pin set, appending it at the inner
// edge, or unpins it with PinNone. The two sets stay disjoint. Ids missing
// from the column order cannot be pinned.
func (s *Store) PinColumn(colID string, side virtual.PinSide) {
	s.apply("pinColumn", func(next *State) bool {
		if next.PinnedColumns.Side(colID) == side {
			return false
		}
		// Stale pins may still be cleared
		if side != virtual.PinNone && !slices.Contains(next.ColumnOrder, colID) {
			return false
		}
		left := slices.DeleteFunc(slices.Clone(next.PinnedColumns.Left), func(id string) bool { return id == colID })
		right := slices.DeleteFunc(slices.Clone(next.PinnedColumns.Right), func(id string) bool { return id == colID })
		switch side {
		case virtual.PinLeft:
			left = append(left, colID)
		case virtual.PinRight:
			right = append([]string{colID}, right...)
		}
		next.PinnedColumns = virtual.PinnedColumns{Left: left, Right: right}
		return true
	})
}
