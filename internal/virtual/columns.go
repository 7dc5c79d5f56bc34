package virtual

// DefaultColumnOverscan is the horizontal overscan in pixels.
const DefaultColumnOverscan = 200

// DefaultColumnWidth is used for a column that has no entry in the width map.
const DefaultColumnWidth = 100

// PinSide says which edge, if any, a column sticks to.
type PinSide string

const (
	PinNone  PinSide = ""
	PinLeft  PinSide = "left"
	PinRight PinSide = "right"
)

// PinnedColumns holds the two ordered pin sets. They are tracked apart from
// the column order: pinning relocates a column visually without moving it
// in the order.
type PinnedColumns struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// Side reports which pin set holds id.
func (p PinnedColumns) Side(id string) PinSide {
	for _, l := range p.Left {
		if l == id {
			return PinLeft
		}
	}
	for _, r := range p.Right {
		if r == id {
			return PinRight
		}
	}
	return PinNone
}

// VirtualColumn is the geometry of one rendered column.
type VirtualColumn struct {
	VirtualItem
	ID           string  `json:"id"`
	Pin          PinSide `json:"pin,omitempty"`
	StickyOffset float64 `json:"stickyOffset"`
}

// IsPinned reports whether the column sticks to an edge.
func (c VirtualColumn) IsPinned() bool {
	return c.Pin != PinNone
}

// ColumnInput is a single snapshot of everything the layout engine needs.
type ColumnInput struct {
	Order         []string
	Widths        map[string]float64
	Visibility    map[string]bool
	Pinned        PinnedColumns
	ScrollLeft    float64
	ViewportWidth float64
	Overscan      float64
}

// ColumnLayout is the output of a column layout pass.
type ColumnLayout struct {
	Columns    []VirtualColumn `json:"virtualColumns"`
	TotalWidth float64         `json:"totalWidth"`
}

// visualEntry is one column of the visual order before culling.
type visualEntry struct {
	id  string
	pin PinSide
}

// VisualOrder returns the ids in display order: visible left-pinned columns
// in pin order, then visible unpinned columns in column order, then visible
// right-pinned columns in pin order.
func VisualOrder(order []string, visibility map[string]bool, pinned PinnedColumns) []string {
	entries := visualEntries(order, visibility, pinned)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

func visualEntries(order []string, visibility map[string]bool, pinned PinnedColumns) []visualEntry {
	visible := func(id string) bool {
		v, ok := visibility[id]
		return !ok || v
	}

	inLeft := make(map[string]bool, len(pinned.Left))
	for _, id := range pinned.Left {
		inLeft[id] = true
	}
	inRight := make(map[string]bool, len(pinned.Right))
	for _, id := range pinned.Right {
		if !inLeft[id] {
			inRight[id] = true
		}
	}

	entries := make([]visualEntry, 0, len(order)+len(pinned.Left)+len(pinned.Right))
	for _, id := range pinned.Left {
		if visible(id) {
			entries = append(entries, visualEntry{id: id, pin: PinLeft})
		}
	}
	for _, id := range order {
		if !inLeft[id] && !inRight[id] && visible(id) {
			entries = append(entries, visualEntry{id: id, pin: PinNone})
		}
	}
	for _, id := range pinned.Right {
		if inRight[id] && visible(id) {
			entries = append(entries, visualEntry{id: id, pin: PinRight})
		}
	}
	return entries
}

// LayoutColumns computes per-column geometry and sticky offsets for pinned
// columns, and drops unpinned columns that fall outside the overscanned
// viewport. Widths are taken as given; the floor is enforced by the store.
func LayoutColumns(in ColumnInput) ColumnLayout {
	entries := visualEntries(in.Order, in.Visibility, in.Pinned)

	width := func(id string) float64 {
		if w, ok := in.Widths[id]; ok {
			return w
		}
		return DefaultColumnWidth
	}

	sticky := make(map[string]float64, len(in.Pinned.Left)+len(in.Pinned.Right))
	var acc float64
	for i := len(entries) - 1; i >= 0 && entries[i].pin == PinRight; i-- {
		sticky[entries[i].id] = acc
		acc += width(entries[i].id)
	}
	acc = 0
	for i := 0; i < len(entries) && entries[i].pin == PinLeft; i++ {
		sticky[entries[i].id] = acc
		acc += width(entries[i].id)
	}

	lo := in.ScrollLeft - in.Overscan
	hi := in.ScrollLeft + in.ViewportWidth + in.Overscan

	out := make([]VirtualColumn, 0, len(entries))
	var offset float64
	for i, e := range entries {
		w := width(e.id)
		start, end := offset, offset+w
		offset += w

		if e.pin == PinNone && (end < lo || start > hi) {
			continue
		}
		out = append(out, VirtualColumn{
			VirtualItem:  VirtualItem{Index: i, Start: start, Size: w, End: end},
			ID:           e.id,
			Pin:          e.pin,
			StickyOffset: sticky[e.id],
		})
	}

	return ColumnLayout{Columns: out, TotalWidth: offset}
}
