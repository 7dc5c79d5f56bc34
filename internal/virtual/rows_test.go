package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRows_Empty(t *testing.T) {
	for _, overscan := range []int{0, 2, DefaultOverscan} {
		r := ComputeRows(RowInput{Count: 0, ScrollOffset: 500, ContainerSize: 400, ItemSize: 40, Overscan: overscan})
		assert.Equal(t, 0, r.StartIndex)
		assert.Equal(t, 0, r.EndIndex)
		assert.Empty(t, r.Items)
		assert.NotNil(t, r.Items)
		assert.Zero(t, r.TotalSize)
	}
}

func TestComputeRows_Examples(t *testing.T) {
	tests := []struct {
		name      string
		in        RowInput
		wantStart int
		wantEnd   int
		wantItems int
		wantTotal float64
	}{
		{
			name:      "offset inside first page",
			in:        RowInput{Count: 1000, ScrollOffset: 100, ContainerSize: 400, ItemSize: 40, Overscan: 2},
			wantStart: 0,
			wantEnd:   15,
			wantItems: 16,
			wantTotal: 40000,
		},
		{
			name:      "top of list",
			in:        RowInput{Count: 1000, ScrollOffset: 0, ContainerSize: 500, ItemSize: 50, Overscan: 2},
			wantStart: 0,
			wantEnd:   12,
			wantItems: 13,
			wantTotal: 50000,
		},
		{
			name:      "scrolled",
			in:        RowInput{Count: 1000, ScrollOffset: 1000, ContainerSize: 500, ItemSize: 50, Overscan: 2},
			wantStart: 18,
			wantEnd:   32,
			wantItems: 15,
			wantTotal: 50000,
		},
		{
			name:      "fewer rows than viewport",
			in:        RowInput{Count: 3, ScrollOffset: 0, ContainerSize: 500, ItemSize: 50, Overscan: 5},
			wantStart: 0,
			wantEnd:   2,
			wantItems: 3,
			wantTotal: 150,
		},
		{
			name:      "offset past the end clamps",
			in:        RowInput{Count: 10, ScrollOffset: 10_000, ContainerSize: 100, ItemSize: 10, Overscan: 0},
			wantStart: 9,
			wantEnd:   9,
			wantItems: 1,
			wantTotal: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeRows(tt.in)
			assert.Equal(t, tt.wantStart, r.StartIndex)
			assert.Equal(t, tt.wantEnd, r.EndIndex)
			assert.Len(t, r.Items, tt.wantItems)
			assert.Equal(t, tt.wantTotal, r.TotalSize)
		})
	}
}

func TestComputeRows_ScrolledFirstItem(t *testing.T) {
	r := ComputeRows(RowInput{Count: 1000, ScrollOffset: 1000, ContainerSize: 500, ItemSize: 50, Overscan: 2})
	require.NotEmpty(t, r.Items)
	assert.Equal(t, 18, r.Items[0].Index)
	assert.Equal(t, 900.0, r.Items[0].Start)
	assert.Equal(t, 950.0, r.Items[0].End)
}

func TestComputeRows_Invariants(t *testing.T) {
	counts := []int{1, 2, 7, 100, 12345}
	sizes := []float64{1, 17, 35, 50.5}
	offsets := []float64{-50, 0, 13, 999, 1e6}

	for _, count := range counts {
		for _, size := range sizes {
			for _, off := range offsets {
				r := ComputeRows(RowInput{Count: count, ScrollOffset: off, ContainerSize: 300, ItemSize: size, Overscan: 3})
				if r.StartIndex < 0 || r.StartIndex > r.EndIndex || r.EndIndex > count-1 {
					t.Fatalf("count=%d size=%v off=%v: bad range [%d,%d]", count, size, off, r.StartIndex, r.EndIndex)
				}
				if len(r.Items) != r.EndIndex-r.StartIndex+1 {
					t.Fatalf("count=%d: %d items for range [%d,%d]", count, len(r.Items), r.StartIndex, r.EndIndex)
				}
				for j, it := range r.Items {
					if it.Index != r.StartIndex+j {
						t.Fatalf("item %d has index %d", j, it.Index)
					}
					if it.Start != float64(it.Index)*size || it.End != it.Start+size || it.Size != size {
						t.Fatalf("item %d geometry %+v for size %v", j, it, size)
					}
				}
			}
		}
	}
}

func TestComputeRows_MillionRows(t *testing.T) {
	const count = 1_000_000
	v := NewRowVirtualizer(count, 35, WithContainerSize(func() float64 { return 800 }))
	maxOffset := v.MaxScrollOffset()
	v.ScrollOffset = func() float64 { return maxOffset }

	r := v.Compute()
	assert.Equal(t, count-1, r.EndIndex)
	assert.Less(t, len(r.Items), 100)
	assert.Equal(t, float64(count)*35, r.TotalSize)
}

func TestComputeRows_NonPositiveItemSize(t *testing.T) {
	r := ComputeRows(RowInput{Count: 10, ContainerSize: 100, ItemSize: 0})
	assert.Empty(t, r.Items)
	assert.Zero(t, r.TotalSize)
}

func TestRowVirtualizer_ReadsOnlyFirstSize(t *testing.T) {
	var asked []int
	v := NewRowVirtualizer(50, 0,
		WithEstimateSize(func(i int) float64 {
			asked = append(asked, i)
			return 20
		}),
		WithContainerSize(func() float64 { return 100 }),
		WithOverscan(1),
	)

	r := v.Compute()
	assert.Equal(t, 0, r.StartIndex)
	assert.Equal(t, 6, r.EndIndex)
	for _, i := range asked {
		assert.Equal(t, 0, i)
	}
}

func TestRowVirtualizer_DefaultOverscan(t *testing.T) {
	offset := 400.0
	v := NewRowVirtualizer(100, 10,
		WithScrollOffset(func() float64 { return offset }),
		WithContainerSize(func() float64 { return 50 }),
	)
	r := v.Compute()
	assert.Equal(t, 40-DefaultOverscan, r.StartIndex)
	assert.Equal(t, 45+DefaultOverscan, r.EndIndex)

	offset = 0
	r = v.Compute()
	assert.Equal(t, 0, r.StartIndex)
}
