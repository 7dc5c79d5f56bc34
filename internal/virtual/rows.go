// Package virtual computes the geometry of a virtualized grid: which rows and
// columns fall inside (or near) the viewport, and where each of them sits.
//
// Everything here is pure. Results are recomputed on every call and hold no
// row payload, only positions, so a scroll callback can call in on every tick.
package virtual

import "math"

// DefaultOverscan is the number of rows rendered beyond each edge of the
// viewport when no overscan is given.
const DefaultOverscan = 5

// VirtualItem is the geometry of one rendered row (or column).
type VirtualItem struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	Size  float64 `json:"size"`
	End   float64 `json:"end"`
}

// RowRange is the output of a row virtualization pass.
type RowRange struct {
	StartIndex int           `json:"startIndex"`
	EndIndex   int           `json:"endIndex"`
	Items      []VirtualItem `json:"items"`
	TotalSize  float64       `json:"totalSize"`
}

// RowInput is a single snapshot of everything the row virtualizer needs.
type RowInput struct {
	Count         int
	ScrollOffset  float64
	ContainerSize float64
	ItemSize      float64
	Overscan      int
}

// ComputeRows maps a scroll offset and container size to the inclusive range
// of row indices to render. The work done is proportional to the rendered
// window, never to Count.
func ComputeRows(in RowInput) RowRange {
	if in.Count <= 0 || in.ItemSize <= 0 {
		return RowRange{Items: []VirtualItem{}}
	}

	overscan := in.Overscan
	if overscan < 0 {
		overscan = 0
	}
	last := in.Count - 1

	rawStart := clampIndex(math.Floor(in.ScrollOffset/in.ItemSize), last)
	rawEnd := clampIndex(math.Ceil((in.ScrollOffset+in.ContainerSize)/in.ItemSize), last)

	start := max(0, rawStart-overscan)
	end := min(last, rawEnd+overscan)

	items := make([]VirtualItem, 0, end-start+1)
	for i := start; i <= end; i++ {
		s := float64(i) * in.ItemSize
		items = append(items, VirtualItem{Index: i, Start: s, Size: in.ItemSize, End: s + in.ItemSize})
	}

	return RowRange{
		StartIndex: start,
		EndIndex:   end,
		Items:      items,
		TotalSize:  float64(in.Count) * in.ItemSize,
	}
}

// clampIndex converts a float index to int within [0, last]. Large or NaN
// values cannot overflow the conversion.
func clampIndex(f float64, last int) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= float64(last) {
		return last
	}
	return int(f)
}

// RowVirtualizer binds the virtualization inputs to accessors so a rendering
// layer can recompute on demand without rebuilding the input each time.
//
// EstimateSize takes an index so that a variable-height implementation can be
// added behind the same shape; only EstimateSize(0) is consulted today and
// every row is assumed to share that height.
type RowVirtualizer struct {
	Count         int
	ScrollOffset  func() float64
	ContainerSize func() float64
	EstimateSize  func(index int) float64
	Overscan      int
}

// RowOption configures a RowVirtualizer.
type RowOption func(*RowVirtualizer)

// NewRowVirtualizer returns a virtualizer for count rows of a fixed size.
func NewRowVirtualizer(count int, itemSize float64, opts ...RowOption) *RowVirtualizer {
	v := &RowVirtualizer{
		Count:         count,
		ScrollOffset:  func() float64 { return 0 },
		ContainerSize: func() float64 { return 0 },
		EstimateSize:  func(int) float64 { return itemSize },
		Overscan:      DefaultOverscan,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithOverscan sets the overscan in rows.
func WithOverscan(n int) RowOption {
	return func(v *RowVirtualizer) {
		v.Overscan = n
	}
}

// WithScrollOffset sets the scroll offset accessor.
func WithScrollOffset(fn func() float64) RowOption {
	return func(v *RowVirtualizer) {
		v.ScrollOffset = fn
	}
}

// WithContainerSize sets the container size accessor.
func WithContainerSize(fn func() float64) RowOption {
	return func(v *RowVirtualizer) {
		v.ContainerSize = fn
	}
}

// WithEstimateSize replaces the per-index size function.
func WithEstimateSize(fn func(index int) float64) RowOption {
	return func(v *RowVirtualizer) {
		v.EstimateSize = fn
	}
}

// Compute reads the accessors and returns the current render range.
func (v *RowVirtualizer) Compute() RowRange {
	if v.Count <= 0 {
		return ComputeRows(RowInput{})
	}
	return ComputeRows(RowInput{
		Count:         v.Count,
		ScrollOffset:  v.ScrollOffset(),
		ContainerSize: v.ContainerSize(),
		ItemSize:      v.EstimateSize(0),
		Overscan:      v.Overscan,
	})
}

// MaxScrollOffset returns the largest meaningful scroll offset for the
// current count and container size.
func (v *RowVirtualizer) MaxScrollOffset() float64 {
	if v.Count <= 0 {
		return 0
	}
	total := float64(v.Count) * v.EstimateSize(0)
	return math.Max(0, total-v.ContainerSize())
}
