// Package grid holds the canonical state of one grid instance: rows in
// display order, column layout, sort, selection, focus and the in-progress
// cell edit.
//
// State is published as immutable snapshots. Each transition builds a new
// *State from the previous one, swaps it in, and synchronously notifies every
// subscriber. Consumers pull with Snapshot and re-derive on notify; they must
// treat the snapshot, including its maps and slices, as read-only.
package grid

import (
	"github.com/imgajeed76/vgrid/internal/virtual"
)

// MinColumnWidth is the floor applied whenever a width is stored.
const MinColumnWidth = 50

// RowID identifies a row. Integer keys are formatted by the row-id function.
type RowID string

// Decimal is an exact decimal number kept as text, such as a database
// numeric that float64 cannot hold. It sorts by Float and formats as Text.
type Decimal struct {
	Text  string
	Float float64
}

func (d Decimal) String() string { return d.Text }

// MarshalJSON writes the exact text as a JSON number
func (d Decimal) MarshalJSON() ([]byte, error) { return []byte(d.Text), nil }

// Row is an application record. The store only reads fields by column id and
// replaces fields on a copy.
type Row map[string]any

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RowIDFunc extracts the identity of a row. It must be stable and unique per
// logical row across calls.
type RowIDFunc func(Row) RowID

// RenderFunc is an opaque hook owned by the rendering layer.
type RenderFunc func(value any, row Row) string

// ColumnDef is the static description of a column.
type ColumnDef struct {
	ID        string
	Title     string
	Width     float64
	MinWidth  float64
	MaxWidth  float64
	Pin       virtual.PinSide
	Hidden    bool
	Resizable bool
	Sortable  bool
	Render    RenderFunc
}

// SortDirection is the direction of one sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortDescriptor is one key of a multi-column sort.
type SortDescriptor struct {
	ColumnID  string
	Direction SortDirection
}

// CellRef points at a cell by identity.
type CellRef struct {
	RowID RowID
	ColID string
}

// EditingState is the single in-progress cell edit.
//
// Token is minted per edit session. Async completions carry it so that a late
// result for an old session can be told apart from the current one.
type EditingState struct {
	RowID         RowID
	ColID         string
	Value         any
	OriginalValue any
	IsSaving      bool
	Error         string
	Token         string
}

// State is one immutable snapshot of the grid.
type State struct {
	Rows     map[RowID]Row
	RowOrder []RowID

	Columns          []ColumnDef
	ColumnWidths     map[string]float64
	ColumnOrder      []string
	PinnedColumns    virtual.PinnedColumns
	ColumnVisibility map[string]bool

	Sort      []SortDescriptor
	Selection map[RowID]struct{}
	Focus     *CellRef
	Editing   *EditingState

	ScrollTop  float64
	ScrollLeft float64
}

// Row returns the row with id, if present.
func (s *State) Row(id RowID) (Row, bool) {
	r, ok := s.Rows[id]
	return r, ok
}

// RowAt returns the row at a display index.
func (s *State) RowAt(index int) (RowID, Row, bool) {
	if index < 0 || index >= len(s.RowOrder) {
		return "", nil, false
	}
	id := s.RowOrder[index]
	r, ok := s.Rows[id]
	return id, r, ok
}

// Column returns the definition of a column.
func (s *State) Column(id string) (ColumnDef, bool) {
	for _, c := range s.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// IsSelected reports whether id is in the selection.
func (s *State) IsSelected(id RowID) bool {
	_, ok := s.Selection[id]
	return ok
}

// SortFor returns the sort direction and priority of a column. Priority is
// 0-based; ok is false when the column is unsorted.
func (s *State) SortFor(colID string) (dir SortDirection, priority int, ok bool) {
	for i, d := range s.Sort {
		if d.ColumnID == colID {
			return d.Direction, i, true
		}
	}
	return "", -1, false
}

// VisualColumns returns the visible column ids in display order.
func (s *State) VisualColumns() []string {
	return virtual.VisualOrder(s.ColumnOrder, s.ColumnVisibility, s.PinnedColumns)
}

// LayoutInput builds the column layout input for the given viewport.
func (s *State) LayoutInput(viewportWidth, overscan float64) virtual.ColumnInput {
	return virtual.ColumnInput{
		Order:         s.ColumnOrder,
		Widths:        s.ColumnWidths,
		Visibility:    s.ColumnVisibility,
		Pinned:        s.PinnedColumns,
		ScrollLeft:    s.ScrollLeft,
		ViewportWidth: viewportWidth,
		Overscan:      overscan,
	}
}

func emptyState() *State {
	return &State{
		Rows:             map[RowID]Row{},
		RowOrder:         []RowID{},
		ColumnWidths:     map[string]float64{},
		ColumnOrder:      []string{},
		ColumnVisibility: map[string]bool{},
		Selection:        map[RowID]struct{}{},
	}
}
