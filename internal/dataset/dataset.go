// Package dataset provides row sources that do not need a database: CSV files
// and a synthetic generator.
package dataset

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/imgajeed76/vgrid/internal/grid"
)

// RowNumberColumn is the column NumberRows stamps on every row
const RowNumberColumn = "#"

// Source is a loaded dataset ready for the store
type Source struct {
	Name    string
	Columns []string
	Rows    []grid.Row
	GetID   grid.RowIDFunc

	numbered string
}

// ColumnIDFunc returns a row-id function reading col. Non-string values are
// formatted, so numeric keys become their plain decimal text.
func ColumnIDFunc(col string) grid.RowIDFunc {
	return func(r grid.Row) grid.RowID {
		switch v := r[col].(type) {
		case string:
			return grid.RowID(v)
		case int:
			return grid.RowID(strconv.Itoa(v))
		case int64:
			return grid.RowID(strconv.FormatInt(v, 10))
		case float64:
			return grid.RowID(strconv.FormatFloat(v, 'f', -1, 64))
		case float32:
			return grid.RowID(strconv.FormatFloat(float64(v), 'f', -1, 32))
		case nil:
			return ""
		default:
			return grid.RowID(fmt.Sprint(v))
		}
	}
}

// NumberRows stamps a 1-based row number on every row under a column named
// RowNumberColumn, suffixed when the source already has a column of that
// name. It returns the columns with the new one prepended and its name. Rows
// are modified in place.
func NumberRows(columns []string, rows []grid.Row) ([]string, string) {
	name := RowNumberColumn
	for n := 2; slices.Contains(columns, name); n++ {
		name = fmt.Sprintf("%s_%d", RowNumberColumn, n)
	}
	for i, r := range rows {
		r[name] = i + 1
	}
	return append([]string{name}, columns...), name
}

// KeyFor picks the row-id function for a source: the key column when the
// source has it, otherwise row numbers (stamped on demand).
func (s *Source) KeyFor(keyColumn string) grid.RowIDFunc {
	if slices.Contains(s.Columns, keyColumn) {
		return ColumnIDFunc(keyColumn)
	}
	if s.numbered == "" {
		s.Columns, s.numbered = NumberRows(s.Columns, s.Rows)
	}
	return ColumnIDFunc(s.numbered)
}

// Describe returns a short summary for status output
func (s *Source) Describe() string {
	return fmt.Sprintf("%s: %d rows, %d columns", s.Name, len(s.Rows), len(s.Columns))
}
