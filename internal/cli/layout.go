package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/ui/styles"
	"github.com/imgajeed76/vgrid/internal/ui/table"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/imgajeed76/vgrid/internal/virtual"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the rows and columns the grid would render",
		Long: `Run the row virtualizer and the column layout engine for the given
geometry and print what would be rendered. All sizes are in pixels.

Columns are given as id[:width[:pin]], where pin is left or right. A
missing width uses the default column width.

Examples:
  vgrid layout --count 10000 --scroll-top 5000 --height 600 --row-height 35
  vgrid layout --columns id:60:left,name:200,email:260,age,actions:90:right \
               --width 400 --scroll-left 150
  vgrid layout --count 100 --columns a,b,c --json`,
		Args: cobra.NoArgs,
		RunE: runLayout,
	}

	cmd.Flags().Int("count", 0, "Number of rows")
	cmd.Flags().Float64("scroll-top", 0, "Vertical scroll offset")
	cmd.Flags().Float64("height", 600, "Viewport height")
	cmd.Flags().Float64("row-height", 35, "Row height")
	cmd.Flags().Int("overscan", virtual.DefaultOverscan, "Rows rendered beyond each viewport edge")

	cmd.Flags().String("columns", "", "Columns as id[:width[:pin]], comma separated")
	cmd.Flags().StringSlice("hide", nil, "Hide columns")
	cmd.Flags().Float64("scroll-left", 0, "Horizontal scroll offset")
	cmd.Flags().Float64("width", 800, "Viewport width")
	cmd.Flags().Float64("column-overscan", virtual.DefaultColumnOverscan, "Pixels of columns rendered beyond each viewport edge")

	cmd.Flags().Bool("json", false, "Output the layout as JSON")

	return cmd
}

// layoutResult is the JSON shape of the layout command
type layoutResult struct {
	Rows    virtual.RowRange     `json:"rows"`
	Columns virtual.ColumnLayout `json:"columns"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	count, _ := f.GetInt("count")
	scrollTop, _ := f.GetFloat64("scroll-top")
	height, _ := f.GetFloat64("height")
	rowHeight, _ := f.GetFloat64("row-height")
	overscan, _ := f.GetInt("overscan")
	columns, _ := f.GetString("columns")
	hide, _ := f.GetStringSlice("hide")
	scrollLeft, _ := f.GetFloat64("scroll-left")
	width, _ := f.GetFloat64("width")
	colOverscan, _ := f.GetFloat64("column-overscan")
	jsonOutput, _ := f.GetBool("json")

	if count < 0 || height < 0 || width < 0 || overscan < 0 || colOverscan < 0 {
		return fmt.Errorf("%w: sizes and counts must not be negative", util.ErrInvalidDimension)
	}

	in, err := parseColumnSpec(columns)
	if err != nil {
		return err
	}
	for _, id := range hide {
		if !slices.Contains(in.Order, id) {
			return util.UnknownColumnError(id, in.Order)
		}
		in.Visibility[id] = false
	}
	in.ScrollLeft = scrollLeft
	in.ViewportWidth = width
	in.Overscan = colOverscan

	res := layoutResult{
		Rows: virtual.ComputeRows(virtual.RowInput{
			Count:         count,
			ScrollOffset:  scrollTop,
			ContainerSize: height,
			ItemSize:      rowHeight,
			Overscan:      overscan,
		}),
		Columns: virtual.LayoutColumns(in),
	}
	logger.Debug("layout computed", "rows", len(res.Rows.Items), "columns", len(res.Columns.Columns))

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printLayout(out, count, res)
	return nil
}

// parseColumnSpec parses "id[:width[:pin]],..." into a layout input with
// every column visible
func parseColumnSpec(spec string) (virtual.ColumnInput, error) {
	in := virtual.ColumnInput{
		Widths:     map[string]float64{},
		Visibility: map[string]bool{},
	}
	if strings.TrimSpace(spec) == "" {
		return in, nil
	}

	for _, part := range strings.Split(spec, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		id := fields[0]
		if id == "" || len(fields) > 3 {
			return in, fmt.Errorf("invalid column %q: want id[:width[:pin]]", part)
		}
		if slices.Contains(in.Order, id) {
			return in, fmt.Errorf("duplicate column %q", id)
		}
		in.Order = append(in.Order, id)
		in.Visibility[id] = true

		if len(fields) > 1 && fields[1] != "" {
			w, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || w < 0 {
				return in, fmt.Errorf("%w: column %q width %q", util.ErrInvalidDimension, id, fields[1])
			}
			in.Widths[id] = w
		}
		if len(fields) > 2 {
			switch strings.ToLower(fields[2]) {
			case "left":
				in.Pinned.Left = append(in.Pinned.Left, id)
			case "right":
				in.Pinned.Right = append(in.Pinned.Right, id)
			case "", "none":
			default:
				return in, fmt.Errorf("%w: column %q pin %q", util.ErrInvalidPinSide, id, fields[2])
			}
		}
	}
	return in, nil
}

// printLayout prints the row range and column layout as two plain tables,
// rendered through a throwaway grid store
func printLayout(w io.Writer, count int, res layoutResult) {
	rr := res.Rows
	if len(rr.Items) == 0 {
		fmt.Fprintln(w, styles.SectionHeader("Rows: none"))
	} else {
		fmt.Fprintln(w, styles.SectionHeader(fmt.Sprintf("Rows %d-%d of %d", rr.StartIndex, rr.EndIndex, count)))
	}
	fmt.Fprintln(w, styles.Mutef("total height %s", formatPx(rr.TotalSize)))
	if len(rr.Items) > 0 {
		rows := make([]grid.Row, len(rr.Items))
		for i, it := range rr.Items {
			rows[i] = grid.Row{"index": it.Index, "start": it.Start, "size": it.Size, "end": it.End}
		}
		printStore(w, []string{"index", "start", "size", "end"}, "index", rows)
	}

	fmt.Fprintln(w)
	cl := res.Columns
	fmt.Fprintln(w, styles.SectionHeader(fmt.Sprintf("Columns (%d rendered)", len(cl.Columns))))
	fmt.Fprintln(w, styles.Mutef("total width %s", formatPx(cl.TotalWidth)))
	if len(cl.Columns) > 0 {
		rows := make([]grid.Row, len(cl.Columns))
		for i, c := range cl.Columns {
			pin := "-"
			if c.IsPinned() {
				pin = string(c.Pin)
			}
			rows[i] = grid.Row{
				"index": c.Index, "id": c.ID, "pin": pin,
				"start": c.Start, "size": c.Size, "end": c.End, "sticky": c.StickyOffset,
			}
		}
		printStore(w, []string{"index", "id", "pin", "start", "size", "end", "sticky"}, "index", rows)
	}
}

func printStore(w io.Writer, columns []string, key string, rows []grid.Row) {
	defs := make([]grid.ColumnDef, len(columns))
	for i, c := range columns {
		defs[i] = grid.ColumnDef{ID: c, Title: c}
	}
	store := grid.NewStore(grid.WithLogger(logger), grid.WithColumns(defs))
	store.SetData(rows, func(r grid.Row) grid.RowID {
		return grid.RowID(fmt.Sprint(r[key]))
	})
	table.PrintPlainTable(w, store.Snapshot())
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
