package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/util"
)

// Execer is the write side of a connection
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CellWriter persists committed cells as single-row updates
type CellWriter struct {
	conn      Execer
	table     string
	keyColumn string
}

// NewCellWriter returns a writer for table keyed by keyColumn. table may be
// schema-qualified ("public.people").
func NewCellWriter(conn Execer, table, keyColumn string) *CellWriter {
	return &CellWriter{conn: conn, table: table, keyColumn: keyColumn}
}

// UpdateSQL returns the statement used to persist a cell of column col
func (w *CellWriter) UpdateSQL(col string) string {
	table := pgx.Identifier(strings.Split(w.table, ".")).Sanitize()
	return fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2",
		table,
		pgx.Identifier{col}.Sanitize(),
		pgx.Identifier{w.keyColumn}.Sanitize())
}

// Persist writes one cell. Values and keys are sent through the simple
// protocol so that text typed into the editor is coerced by the server to
// the column type.
func (w *CellWriter) Persist(ctx context.Context, edit grid.CellEdit) error {
	if w.table == "" {
		return util.ErrReadOnly
	}
	if edit.ColID == w.keyColumn {
		return fmt.Errorf("key column %q cannot be edited", w.keyColumn)
	}

	tag, err := w.conn.Exec(ctx, w.UpdateSQL(edit.ColID), pgx.QueryExecModeSimpleProtocol, sqlText(edit.Value), string(edit.RowID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("row %s no longer exists", edit.RowID)
	}
	return nil
}

// sqlText formats a cell value as the literal text the server parses. Numbers
// never use exponent form and nil stays NULL.
func sqlText(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}

// Handler adapts the writer to the store's edit protocol
func (w *CellWriter) Handler() grid.EditHandler {
	return w.Persist
}
