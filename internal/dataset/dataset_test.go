package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgajeed76/vgrid/internal/grid"
)

func TestReadCSV(t *testing.T) {
	in := "id,name,,name,age\n1,carol,x,c2,41\n2,alice,,a2,\n3,bob\n"
	src, err := ReadCSV(strings.NewReader(in), CSVOptions{InferTypes: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "column3", "name_2", "age"}, src.Columns)
	require.Len(t, src.Rows, 3)
	assert.Equal(t, int64(1), src.Rows[0]["id"])
	assert.Equal(t, "carol", src.Rows[0]["name"])
	assert.Equal(t, int64(41), src.Rows[0]["age"])
	assert.Nil(t, src.Rows[1]["age"])
	assert.Nil(t, src.Rows[2]["age"], "short records pad with nil")
}

func TestReadCSV_SuffixSkipsRealHeaders(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("a,a,a_2,,column4\n1,2,3,4,5\n"), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a_3", "a_2", "column4", "column4_2"}, src.Columns)
	require.Len(t, src.Rows, 1)
	assert.Equal(t, grid.Row{"a": "1", "a_3": "2", "a_2": "3", "column4": "4", "column4_2": "5"}, src.Rows[0])
}

func TestReadCSV_NoInference(t *testing.T) {
	src, err := ReadCSV(strings.NewReader("a;b\n1;2.5\n"), CSVOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, "1", src.Rows[0]["a"])
	assert.Equal(t, "2.5", src.Rows[0]["b"])
}

func TestReadCSV_Empty(t *testing.T) {
	src, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.NoError(t, err)
	assert.Empty(t, src.Rows)
	assert.Empty(t, src.Columns)
}

func TestReadCSV_Latin1(t *testing.T) {
	in := "name\nZ\xfcrich\n"
	src, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Zürich", src.Rows[0]["name"])
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,a\n"), 0644))

	src, err := LoadCSV(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "people.csv", src.Name)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), CSVOptions{})
	assert.Error(t, err)
}

func TestColumnIDFunc(t *testing.T) {
	f := ColumnIDFunc("k")
	tests := []struct {
		v    any
		want grid.RowID
	}{
		{"abc", "abc"},
		{7, "7"},
		{int64(8), "8"},
		{int64(9007199254740993), "9007199254740993"},
		{float64(1000000), "1000000"},
		{2.5, "2.5"},
		{grid.Decimal{Text: "12345678901234567891", Float: 12345678901234567891}, "12345678901234567891"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f(grid.Row{"k": tt.v}))
	}
}

func TestKeyFor(t *testing.T) {
	src := &Source{Columns: []string{"name"}, Rows: []grid.Row{{"name": "a"}, {"name": "b"}}}
	getID := src.KeyFor("id")
	assert.Equal(t, []string{RowNumberColumn, "name"}, src.Columns)
	assert.Equal(t, grid.RowID("2"), getID(src.Rows[1]))

	// Calling again does not stamp twice
	src.KeyFor("id")
	assert.Equal(t, []string{RowNumberColumn, "name"}, src.Columns)

	// Asking for the row-number column by name does not restamp
	assert.Equal(t, grid.RowID("1"), src.KeyFor(RowNumberColumn)(src.Rows[0]))
	assert.Equal(t, []string{RowNumberColumn, "name"}, src.Columns)

	keyed := &Source{Columns: []string{"id", "name"}, Rows: []grid.Row{{"id": "x"}}}
	assert.Equal(t, grid.RowID("x"), keyed.KeyFor("id")(keyed.Rows[0]))
	assert.Equal(t, []string{"id", "name"}, keyed.Columns)
}

func TestKeyFor_SourceHasOwnHashColumn(t *testing.T) {
	src := &Source{
		Columns: []string{"name", "#"},
		Rows:    []grid.Row{{"name": "a", "#": "x1"}, {"name": "b", "#": "x2"}},
	}
	getID := src.KeyFor("id")

	assert.Equal(t, []string{"#_2", "name", "#"}, src.Columns)
	assert.Equal(t, "x2", src.Rows[1]["#"], "source values kept")
	assert.Equal(t, 2, src.Rows[1]["#_2"])
	assert.Equal(t, grid.RowID("2"), getID(src.Rows[1]))

	src.KeyFor("id")
	assert.Equal(t, []string{"#_2", "name", "#"}, src.Columns)
}

func TestDemo(t *testing.T) {
	a := Demo(500, 42)
	b := Demo(500, 42)
	require.Len(t, a.Rows, 500)
	assert.Equal(t, a.Rows, b.Rows, "same seed, same rows")
	assert.Equal(t, DemoColumns, a.Columns)

	ids := make(map[grid.RowID]bool)
	for _, r := range a.Rows {
		ids[a.GetID(r)] = true
		age := r["age"].(int64)
		assert.GreaterOrEqual(t, age, int64(18))
	}
	assert.Len(t, ids, 500)

	s := grid.NewStore()
	s.SetData(a.Rows, a.GetID)
	assert.Len(t, s.Snapshot().RowOrder, 500)
}
