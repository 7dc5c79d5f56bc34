package table

import (
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/virtual"
)

// Geometry maps the engine's pixel space onto terminal cells. One row of the
// grid is one terminal line; a terminal column covers CellWidthPx pixels.
type Geometry struct {
	RowHeightPx      float64
	CellWidthPx      float64
	Overscan         int
	ColumnOverscanPx float64
}

// DefaultGeometry returns the geometry used when nothing is configured
func DefaultGeometry() Geometry {
	return Geometry{
		RowHeightPx:      16,
		CellWidthPx:      8,
		Overscan:         virtual.DefaultOverscan,
		ColumnOverscanPx: virtual.DefaultColumnOverscan,
	}
}

func (g Geometry) cells(px float64) int {
	return int(math.Floor(px/g.CellWidthPx + 1e-9))
}

func (g Geometry) px(cells int) float64 {
	return float64(cells) * g.CellWidthPx
}

// frameRow is a row that lands on screen
type frameRow struct {
	Index int
	ID    grid.RowID
}

// frameColumn is the on-screen part of a column. X is the screen position of
// the first shown cell; Skip cells of the column are clipped on the left.
type frameColumn struct {
	ID      string
	Pin     virtual.PinSide
	X       int
	Width   int
	Skip    int
	Visible int
}

// frame is everything one render needs to know about geometry
type frame struct {
	Rows          []frameRow
	Columns       []frameColumn
	ViewWidth     int
	BodyHeight    int
	RowRange      virtual.RowRange
	Layout        virtual.ColumnLayout
	MaxScrollTop  float64
	MaxScrollLeft float64
}

// computeFrame runs the row virtualizer and the column layout for the
// snapshot and places the results on a viewWidth x bodyHeight cell area.
// The engines return overscanned ranges; only what intersects the area is
// kept.
func computeFrame(snap *grid.State, g Geometry, viewWidth, bodyHeight int) frame {
	f := frame{ViewWidth: viewWidth, BodyHeight: bodyHeight}

	containerPx := float64(bodyHeight) * g.RowHeightPx
	rv := virtual.NewRowVirtualizer(len(snap.RowOrder), g.RowHeightPx,
		virtual.WithOverscan(g.Overscan),
		virtual.WithScrollOffset(func() float64 { return snap.ScrollTop }),
		virtual.WithContainerSize(func() float64 { return containerPx }),
	)
	f.RowRange = rv.Compute()
	f.MaxScrollTop = rv.MaxScrollOffset()
	// Rows partly scrolled off the top are not drawn
	for _, it := range f.RowRange.Items {
		if it.Start < snap.ScrollTop-1e-9 || it.Start >= snap.ScrollTop+containerPx {
			continue
		}
		if len(f.Rows) == bodyHeight {
			break
		}
		f.Rows = append(f.Rows, frameRow{Index: it.Index, ID: snap.RowOrder[it.Index]})
	}

	viewPx := g.px(viewWidth)
	f.Layout = virtual.LayoutColumns(snap.LayoutInput(viewPx, g.ColumnOverscanPx))
	f.MaxScrollLeft = math.Max(0, f.Layout.TotalWidth-viewPx)

	var leftW, rightW int
	for _, c := range f.Layout.Columns {
		switch c.Pin {
		case virtual.PinLeft:
			leftW = max(leftW, g.cells(c.StickyOffset+c.Size))
		case virtual.PinRight:
			rightW = max(rightW, g.cells(c.StickyOffset+c.Size))
		}
	}

	scroll := g.cells(snap.ScrollLeft)
	for _, c := range f.Layout.Columns {
		var x, w int
		lo, hi := 0, viewWidth
		switch c.Pin {
		case virtual.PinLeft:
			x = g.cells(c.StickyOffset)
			w = g.cells(c.StickyOffset+c.Size) - x
		case virtual.PinRight:
			w = g.cells(c.StickyOffset+c.Size) - g.cells(c.StickyOffset)
			x = viewWidth - g.cells(c.StickyOffset) - w
			lo = leftW
		default:
			x = g.cells(c.Start) - scroll
			w = g.cells(c.End) - g.cells(c.Start)
			lo, hi = leftW, viewWidth-rightW
		}

		skip := max(0, lo-x)
		visible := min(x+w, hi) - (x + skip)
		if visible <= 0 {
			continue
		}
		f.Columns = append(f.Columns, frameColumn{
			ID:      c.ID,
			Pin:     c.Pin,
			X:       x + skip,
			Width:   w,
			Skip:    skip,
			Visible: visible,
		})
	}
	sort.SliceStable(f.Columns, func(i, j int) bool { return f.Columns[i].X < f.Columns[j].X })

	return f
}

// topRow returns the first fully visible row index for a scroll offset
func (g Geometry) topRow(scrollTop float64) int {
	return int(math.Floor(scrollTop/g.RowHeightPx + 1e-9))
}

// scrollToShow returns the scroll offsets that bring the focused cell into
// view with the smallest movement. Pinned columns never need horizontal
// scrolling.
func scrollToShow(snap *grid.State, g Geometry, viewWidth, bodyHeight int) (top, left float64) {
	top, left = snap.ScrollTop, snap.ScrollLeft
	if snap.Focus == nil {
		return top, left
	}

	if idx := indexOf(snap.RowOrder, snap.Focus.RowID); idx >= 0 && bodyHeight > 0 {
		first := g.topRow(top)
		switch {
		case idx < first:
			first = idx
		case idx >= first+bodyHeight:
			first = idx - bodyHeight + 1
		}
		top = float64(first) * g.RowHeightPx
	}

	in := snap.LayoutInput(0, 0)
	width := func(id string) float64 {
		if w, ok := in.Widths[id]; ok {
			return w
		}
		return virtual.DefaultColumnWidth
	}
	var leftPx, rightPx, offset, start, end, total float64
	found := false
	for _, id := range snap.VisualColumns() {
		w := width(id)
		switch in.Pinned.Side(id) {
		case virtual.PinLeft:
			leftPx += w
		case virtual.PinRight:
			rightPx += w
		default:
			if id == snap.Focus.ColID {
				start, end, found = offset, offset+w, true
			}
		}
		offset += w
	}
	total = offset

	viewPx := g.px(viewWidth)
	if found {
		if start-left < leftPx {
			left = start - leftPx
		}
		if end-left > viewPx-rightPx {
			left = end - (viewPx - rightPx)
		}
	}
	left = math.Min(left, math.Max(0, total-viewPx))
	return top, math.Max(0, left)
}

func indexOf(order []grid.RowID, id grid.RowID) int {
	for i, r := range order {
		if r == id {
			return i
		}
	}
	return -1
}

// fitCell pads or truncates s to exactly width display cells
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// sliceCells returns width display cells of s starting at cell from. Wide
// runes cut by either edge are replaced by spaces.
func sliceCells(s string, from, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	pos, out := 0, 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		switch {
		case pos+rw <= from:
		case pos < from:
			n := min(pos+rw-from, width-out)
			sb.WriteString(strings.Repeat(" ", n))
			out += n
		case out+rw <= width:
			sb.WriteRune(r)
			out += rw
		default:
			n := width - out
			sb.WriteString(strings.Repeat(" ", n))
			out += n
		}
		pos += rw
		if out >= width {
			break
		}
	}
	if out < width {
		sb.WriteString(strings.Repeat(" ", width-out))
	}
	return sb.String()
}
