// Package table renders a grid store: an interactive TUI (virtualized rows,
// sticky pinned columns, sorting, column resize/move/pin/hide, selection and
// cell editing with optimistic saves), plain text tables, JSON output and raw
// tab-separated output.
//
// The store is taken from the context (grid.FromContext); this package never
// holds grid state of its own.
package table

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/imgajeed76/vgrid/internal/grid"
)

// DisplayOptions controls how a grid is rendered.
type DisplayOptions struct {
	// JSON outputs rows as a JSON array of objects.
	JSON bool
	// Raw outputs rows as tab-separated values (for piping).
	Raw bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool

	// Geometry maps engine pixels to terminal cells.
	Geometry Geometry
	// OnCellEdit persists committed cells. Nil keeps edits local.
	OnCellEdit grid.EditHandler
	// EditTimeout bounds one OnCellEdit call. Zero means no timeout.
	EditTimeout time.Duration
	// Logger receives edit outcomes.
	Logger *slog.Logger
	// Out receives non-interactive output, stdout when nil.
	Out io.Writer
}

// DisplayGrid picks the right output mode based on options and environment,
// then renders the store attached to ctx. The title is shown in the
// interactive TUI header; for non-interactive modes it is ignored.
func DisplayGrid(ctx context.Context, title string, opts DisplayOptions) error {
	store := grid.FromContext(ctx)
	snap := store.Snapshot()

	var out io.Writer = os.Stdout
	if opts.Out != nil {
		out = opts.Out
	}

	if opts.Raw {
		PrintRaw(out, snap)
		return nil
	}

	if opts.JSON {
		return PrintJSON(out, snap)
	}

	isTTY := opts.Out == nil && term.IsTerminal(int(os.Stdout.Fd()))

	if !isTTY || opts.NoPager || len(snap.RowOrder) == 0 {
		PrintPlainTable(out, snap)
		return nil
	}

	return RunGridTUI(ctx, title, opts)
}
