package table

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/ui/styles"
)

// summary is the derived header line. It is comparable so the selector
// bridge can tell when it changed.
type summary struct {
	Rows     int
	Columns  int
	Hidden   int
	Selected int
	Sort     string
}

func summarize(s *grid.State) summary {
	hidden := 0
	for _, id := range s.ColumnOrder {
		if v, ok := s.ColumnVisibility[id]; ok && !v {
			hidden++
		}
	}

	keys := make([]string, len(s.Sort))
	for i, d := range s.Sort {
		keys[i] = d.ColumnID + " " + styles.SortIndicator(d.Direction == grid.SortDesc, i, 1)
	}

	return summary{
		Rows:     len(s.RowOrder),
		Columns:  len(s.ColumnOrder),
		Hidden:   hidden,
		Selected: len(s.Selection),
		Sort:     strings.Join(keys, ", "),
	}
}

func (s summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d rows, %d columns", s.Rows, s.Columns)
	if s.Hidden > 0 {
		fmt.Fprintf(&sb, " (%d hidden)", s.Hidden)
	}
	if s.Selected > 0 {
		fmt.Fprintf(&sb, ", %d selected", s.Selected)
	}
	if s.Sort != "" {
		fmt.Fprintf(&sb, "  sorted by %s", s.Sort)
	}
	return sb.String()
}

// headerFeed keeps the latest summary of a store. It is refreshed through
// grid.Select, so the summary is only rebuilt when one of its fields changed.
type headerFeed struct {
	current atomic.Pointer[summary]
	stop    func()
	updates atomic.Int64
}

func newHeaderFeed(store *grid.Store) *headerFeed {
	h := &headerFeed{}
	initial := summarize(store.Snapshot())
	h.current.Store(&initial)
	h.stop = grid.Select(store, summarize,
		func(a, b summary) bool { return a == b },
		func(v summary) {
			h.current.Store(&v)
			h.updates.Add(1)
		})
	return h
}

func (h *headerFeed) Load() summary {
	return *h.current.Load()
}

func (h *headerFeed) Close() {
	h.stop()
}
