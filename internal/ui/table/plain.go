package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/imgajeed76/vgrid/internal/grid"
)

// NullText is how a nil cell is printed
const NullText = "NULL"

// FormatValue renders a cell value as text
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return NullText
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(v)
	}
}

// cellText renders one cell through the column's render hook when it has one
func cellText(def grid.ColumnDef, row grid.Row) string {
	v := row[def.ID]
	if def.Render != nil {
		return def.Render(v, row)
	}
	return FormatValue(v)
}

// records flattens a snapshot into rows of text in display order over the
// visible columns
func records(snap *grid.State) (header []string, rows [][]string) {
	cols := snap.VisualColumns()
	defs := make([]grid.ColumnDef, len(cols))
	header = make([]string, len(cols))
	for i, id := range cols {
		def, ok := snap.Column(id)
		if !ok {
			def = grid.ColumnDef{ID: id, Title: id}
		}
		defs[i] = def
		header[i] = def.Title
		if header[i] == "" {
			header[i] = id
		}
	}

	rows = make([][]string, 0, len(snap.RowOrder))
	for _, id := range snap.RowOrder {
		r := snap.Rows[id]
		rec := make([]string, len(defs))
		for i, def := range defs {
			rec[i] = cellText(def, r)
		}
		rows = append(rows, rec)
	}
	return header, rows
}

// PrintJSON outputs the snapshot as a JSON array of objects over the visible
// columns, in display order. Values keep their native JSON types.
func PrintJSON(w io.Writer, snap *grid.State) error {
	cols := snap.VisualColumns()
	results := make([]map[string]any, 0, len(snap.RowOrder))
	for _, id := range snap.RowOrder {
		r := snap.Rows[id]
		obj := make(map[string]any, len(cols))
		for _, c := range cols {
			obj[c] = r[c]
		}
		results = append(results, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// PrintRaw outputs tab-separated rows without a header (for piping)
func PrintRaw(w io.Writer, snap *grid.State) {
	_, rows := records(snap)
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}

// PrintPlainTable prints a properly aligned table for non-TTY output.
// Shows full content without truncation.
func PrintPlainTable(w io.Writer, snap *grid.State) {
	colNames, rows := records(snap)
	if len(colNames) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return
	}

	// Calculate column widths based on actual content (no truncation)
	colWidths := make([]int, len(colNames))
	for i, name := range colNames {
		colWidths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, val := range row {
			if n := runewidth.StringWidth(val); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	writeLine := func(vals []string) {
		for i, val := range vals {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			if i == len(vals)-1 {
				fmt.Fprint(w, val)
			} else {
				fmt.Fprint(w, runewidth.FillRight(val, colWidths[i]))
			}
		}
		fmt.Fprintln(w)
	}

	writeLine(colNames)
	seps := make([]string, len(colWidths))
	for i, cw := range colWidths {
		seps[i] = strings.Repeat("─", cw)
	}
	writeLine(seps)
	for _, row := range rows {
		writeLine(row)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}
