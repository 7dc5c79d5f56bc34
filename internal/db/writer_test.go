package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgajeed76/vgrid/internal/dataset"
	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/util"
)

type fakeExec struct {
	sql  string
	args []any
	tag  pgconn.CommandTag
	err  error
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return f.tag, f.err
}

func TestUpdateSQL(t *testing.T) {
	w := NewCellWriter(nil, "public.people", "id")
	assert.Equal(t, `UPDATE "public"."people" SET "full name" = $1 WHERE "id" = $2`, w.UpdateSQL("full name"))

	w = NewCellWriter(nil, "weird\"table", "k")
	assert.Equal(t, `UPDATE "weird""table" SET "c" = $1 WHERE "k" = $2`, w.UpdateSQL("c"))
}

func TestPersist(t *testing.T) {
	f := &fakeExec{tag: pgconn.NewCommandTag("UPDATE 1")}
	w := NewCellWriter(f, "people", "id")

	err := w.Persist(context.Background(), grid.CellEdit{RowID: "7", ColID: "age", Value: 42})
	require.NoError(t, err)
	assert.Equal(t, `UPDATE "people" SET "age" = $1 WHERE "id" = $2`, f.sql)
	require.Len(t, f.args, 3)
	assert.Equal(t, pgx.QueryExecModeSimpleProtocol, f.args[0])
	assert.Equal(t, "42", f.args[1])
	assert.Equal(t, "7", f.args[2])
}

func TestPersist_NumericKeysStayExact(t *testing.T) {
	rows := []grid.Row{
		{"id": NormalizeValue(numeric(t, "12345678901234567891")), "price": NormalizeValue(numeric(t, "19.90"))},
		{"id": NormalizeValue(numeric(t, "1000000")), "price": 2.5e7},
	}
	s := grid.NewStore()
	s.SetData(rows, dataset.ColumnIDFunc("id"))
	assert.Equal(t, []grid.RowID{"12345678901234567891", "1000000"}, s.Snapshot().RowOrder)

	f := &fakeExec{tag: pgconn.NewCommandTag("UPDATE 1")}
	w := NewCellWriter(f, "items", "id")

	require.NoError(t, w.Persist(context.Background(), grid.CellEdit{RowID: "12345678901234567891", ColID: "price", Value: rows[0]["price"]}))
	assert.Equal(t, "19.90", f.args[1])
	assert.Equal(t, "12345678901234567891", f.args[2])

	require.NoError(t, w.Persist(context.Background(), grid.CellEdit{RowID: "1000000", ColID: "price", Value: rows[1]["price"]}))
	assert.Equal(t, "25000000", f.args[1])
	assert.Equal(t, "1000000", f.args[2])
}

func TestPersist_NilValueIsNull(t *testing.T) {
	f := &fakeExec{tag: pgconn.NewCommandTag("UPDATE 1")}
	w := NewCellWriter(f, "people", "id")

	require.NoError(t, w.Persist(context.Background(), grid.CellEdit{RowID: "1", ColID: "city"}))
	assert.Nil(t, f.args[1])
}

func TestPersist_Errors(t *testing.T) {
	ctx := context.Background()

	err := NewCellWriter(&fakeExec{}, "", "id").Persist(ctx, grid.CellEdit{RowID: "1", ColID: "a"})
	assert.ErrorIs(t, err, util.ErrReadOnly)

	err = NewCellWriter(&fakeExec{}, "t", "id").Persist(ctx, grid.CellEdit{RowID: "1", ColID: "id", Value: "2"})
	assert.ErrorContains(t, err, "cannot be edited")

	err = NewCellWriter(&fakeExec{tag: pgconn.NewCommandTag("UPDATE 0")}, "t", "id").
		Persist(ctx, grid.CellEdit{RowID: "9", ColID: "a", Value: "x"})
	assert.ErrorContains(t, err, "no longer exists")

	boom := errors.New("constraint violated")
	err = NewCellWriter(&fakeExec{err: boom}, "t", "id").Persist(ctx, grid.CellEdit{RowID: "1", ColID: "a", Value: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestPersist_RejectionRollsBackStore(t *testing.T) {
	s := grid.NewStore()
	s.SetData([]grid.Row{{"id": "1", "age": 30}}, dataset.ColumnIDFunc("id"))
	s.StartEdit("1", "age", 30)
	s.UpdateEditValue("abc")

	w := NewCellWriter(&fakeExec{err: errors.New("invalid input syntax for type integer")}, "t", "id")
	err := s.Commit(context.Background(), w.Handler())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 30, snap.Rows["1"]["age"])
	require.NotNil(t, snap.Editing)
	assert.Equal(t, "abc", snap.Editing.Value)
	assert.Contains(t, snap.Editing.Error, "invalid input syntax")
}

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, NormalizeValue(nil))
	assert.Equal(t, "hi", NormalizeValue([]byte("hi")))
	assert.Equal(t, "[2 bytes]", NormalizeValue([]byte{0, 1}))
	assert.Equal(t, int64(5), NormalizeValue(int64(5)))
	assert.Equal(t, "00112233-4455-6677-8899-aabbccddeeff",
		NormalizeValue([16]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}))
	assert.Equal(t, "[1 2]", NormalizeValue([]int{1, 2}))
}

func TestNormalizeValue_Numeric(t *testing.T) {
	assert.Equal(t, int64(1000000), NormalizeValue(numeric(t, "1000000")))
	assert.Equal(t, int64(-42), NormalizeValue(numeric(t, "-42")))
	assert.Equal(t, grid.Decimal{Text: "12345678901234567891", Float: 12345678901234567891}, NormalizeValue(numeric(t, "12345678901234567891")))
	assert.Equal(t, grid.Decimal{Text: "42.00", Float: 42}, NormalizeValue(numeric(t, "42.00")), "scale kept")
	assert.Equal(t, grid.Decimal{Text: "-0.005", Float: -0.005}, NormalizeValue(numeric(t, "-0.005")))
	assert.Equal(t, "NaN", NormalizeValue(numeric(t, "NaN")))
	assert.Nil(t, NormalizeValue(pgtype.Numeric{}))
}

func numeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(s))
	return n
}

