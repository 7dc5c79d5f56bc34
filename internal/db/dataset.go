package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/imgajeed76/vgrid/internal/dataset"
	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/util"
)

var errNotConnected = util.ErrNotConnected

// Querier is the read side of a connection
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LoadQuery runs a read query and collects every row as a grid row keyed by
// column name. Values keep their native type where the grid can order them
// (numbers, text, time, bool).
func LoadQuery(ctx context.Context, q Querier, query string) (*dataset.Source, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	colNames := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		colNames[i] = fd.Name
	}

	ds := &dataset.Source{Name: "query", Columns: colNames}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(grid.Row, len(values))
		for i, v := range values {
			row[colNames[i]] = NormalizeValue(v)
		}
		ds.Rows = append(ds.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

// NormalizeValue converts a driver value into something the grid can compare
// and display
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		// For byte arrays, check if it's printable text
		if len(val) == 0 {
			return ""
		}
		for _, b := range val {
			if b < 32 && b != '\n' && b != '\r' && b != '\t' {
				return fmt.Sprintf("[%d bytes]", len(val))
			}
		}
		return util.ToValidUTF8(string(val))
	case string:
		return util.ToValidUTF8(val)
	case pgtype.Numeric:
		return normalizeNumeric(val)
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case time.Time, bool, int16, int32, int64, float32, float64:
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeNumeric keeps numeric values exact. Whole numbers that fit become
// int64; everything else keeps its decimal text (scale included) next to a
// float used only for ordering.
func normalizeNumeric(n pgtype.Numeric) any {
	if !n.Valid {
		return nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		text, err := n.Value()
		if err != nil {
			return nil
		}
		return text
	}
	if n.Int == nil {
		return int64(0)
	}
	if n.Exp >= 0 {
		if i, err := n.Int64Value(); err == nil && i.Valid {
			return i.Int64
		}
	}

	v, err := n.Value()
	text, ok := v.(string)
	if err != nil || !ok {
		return nil
	}
	f, err := n.Float64Value()
	if err != nil {
		return nil
	}
	return grid.Decimal{Text: text, Float: f.Float64}
}
