package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/util"
)

// CSVOptions controls CSV parsing
type CSVOptions struct {
	// Comma is the field separator, ',' when zero
	Comma rune
	// InferTypes converts integer and decimal fields to numbers so they sort
	// numerically
	InferTypes bool
}

// LoadCSV reads a CSV file whose first record is the header
func LoadCSV(path string, opts CSVOptions) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	src.Name = filepath.Base(path)
	return src, nil
}

// ReadCSV reads CSV data whose first record is the header. Empty fields
// become nil so they sort last.
func ReadCSV(r io.Reader, opts CSVOptions) (*Source, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Source{}, nil
	}
	if err != nil {
		return nil, err
	}
	columns := uniqueHeader(util.ToValidUTF8Fields(header))

	var rows []grid.Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		util.ToValidUTF8Fields(record)

		row := make(grid.Row, len(columns))
		for i, col := range columns {
			if i >= len(record) || record[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = cellValue(record[i], opts.InferTypes)
		}
		rows = append(rows, row)
	}

	return &Source{Columns: columns, Rows: rows}, nil
}

func cellValue(s string, infer bool) any {
	if !infer {
		return s
	}
	t := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}

// uniqueHeader names blank header cells and suffixes repeated ones, since
// column ids key the row maps
func uniqueHeader(header []string) []string {
	names := make([]string, len(header))
	reserved := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column%d", i+1)
		}
		names[i] = h
		reserved[h] = true
	}

	// Generated names skip every real header, including later ones
	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	for i, h := range names {
		name := h
		if used[name] {
			n := max(next[h], 2)
			for {
				name = fmt.Sprintf("%s_%d", h, n)
				n++
				if !used[name] && !reserved[name] {
					break
				}
			}
			next[h] = n
		}
		used[name] = true
		names[i] = name
	}
	return names
}
