package grid

// SetData replaces the dataset. Rows are keyed by getID; when two rows share
// an id the later one wins in the map while the order keeps one entry per
// occurrence. Callers are responsible for unique ids.
//
// An active sort is re-applied to the new order.
func (s *Store) SetData(rows []Row, getID RowIDFunc) {
	s.apply("setData", func(next *State) bool {
		m := make(map[RowID]Row, len(rows))
		order := make([]RowID, 0, len(rows))
		for _, r := range rows {
			id := getID(r)
			m[id] = r
			order = append(order, id)
		}
		next.Rows = m
		next.RowOrder = order
		if len(next.Sort) > 0 {
			next.RowOrder = sortedOrder(next.RowOrder, next.Rows, next.Sort)
		}
		return true
	})
}

// UpdateRow shallow-merges fields into a copy of the row. Unknown ids are
// ignored.
func (s *Store) UpdateRow(id RowID, fields Row) {
	s.apply("updateRow", func(next *State) bool {
		row, ok := next.Rows[id]
		if !ok {
			return false
		}
		updated := row.Clone()
		for k, v := range fields {
			updated[k] = v
		}
		next.Rows = replaceRow(next.Rows, id, updated)
		return true
	})
}

// replaceRow returns a copy of rows with one entry replaced.
func replaceRow(rows map[RowID]Row, id RowID, row Row) map[RowID]Row {
	out := make(map[RowID]Row, len(rows))
	for k, v := range rows {
		out[k] = v
	}
	out[id] = row
	return out
}
