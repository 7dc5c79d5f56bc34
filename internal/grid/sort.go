package grid

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"
)

// ToggleSort advances the sort state of a column.
//
// Without multi the column cycles unsorted → asc → desc → unsorted and every
// other column's sort is dropped. With multi a new key is appended as asc, an
// asc key flips to desc in place, and a desc key is removed.
func (s *Store) ToggleSort(colID string, multi bool) {
	s.apply("toggleSort", func(next *State) bool {
		idx := slices.IndexFunc(next.Sort, func(d SortDescriptor) bool { return d.ColumnID == colID })

		var sorts []SortDescriptor
		if multi {
			sorts = slices.Clone(next.Sort)
			switch {
			case idx < 0:
				sorts = append(sorts, SortDescriptor{ColumnID: colID, Direction: SortAsc})
			case sorts[idx].Direction == SortAsc:
				sorts[idx].Direction = SortDesc
			default:
				sorts = slices.Delete(sorts, idx, idx+1)
			}
		} else {
			switch {
			case idx < 0:
				sorts = []SortDescriptor{{ColumnID: colID, Direction: SortAsc}}
			case next.Sort[idx].Direction == SortAsc:
				sorts = []SortDescriptor{{ColumnID: colID, Direction: SortDesc}}
			default:
				sorts = []SortDescriptor{}
			}
		}

		next.Sort = sorts
		next.RowOrder = sortedOrder(next.RowOrder, next.Rows, sorts)
		return true
	})
}

// sortedOrder returns order sorted by the descriptors in priority order.
// Ties keep their relative order. Missing or nil values sort after all
// present values in either direction.
func sortedOrder(order []RowID, rows map[RowID]Row, sorts []SortDescriptor) []RowID {
	out := slices.Clone(order)
	if len(sorts) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b RowID) int {
		ra, rb := rows[a], rows[b]
		for _, d := range sorts {
			va, vb := ra[d.ColumnID], rb[d.ColumnID]
			switch {
			case va == nil && vb == nil:
				continue
			case va == nil:
				return 1
			case vb == nil:
				return -1
			}
			c := compareValues(va, vb)
			if c == 0 {
				continue
			}
			if d.Direction == SortDesc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

// compareValues orders two non-nil cell values. Numbers compare numerically
// across int and float kinds; values of unrelated types fall back to their
// formatted text.
func compareValues(a, b any) int {
	if x, ok := a.(Decimal); ok {
		if y, ok := b.(Decimal); ok {
			return compareDecimals(x, y)
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// compareDecimals falls back to exact arithmetic when the float values tie
func compareDecimals(a, b Decimal) int {
	if c := cmp.Compare(a.Float, b.Float); c != 0 {
		return c
	}
	ra, okA := new(big.Rat).SetString(a.Text)
	rb, okB := new(big.Rat).SetString(b.Text)
	if !okA || !okB {
		return strings.Compare(a.Text, b.Text)
	}
	return ra.Cmp(rb)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case Decimal:
		return n.Float, true
	}
	return 0, false
}
