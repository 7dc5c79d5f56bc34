package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/imgajeed76/vgrid/internal/virtual"
)

// runCmd executes a freshly built command with args and returns its stdout
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Setenv("VGRID_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseSortFlag(t *testing.T) {
	tests := []struct {
		in      string
		col     string
		desc    bool
		wantErr bool
	}{
		{"age", "age", false, false},
		{"age:asc", "age", false, false},
		{"age:DESC", "age", true, false},
		{" name : desc ", "name", true, false},
		{"age:", "age", false, false},
		{":desc", "", false, true},
		{"age:sideways", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			col, desc, err := parseSortFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.desc, desc)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{",": ',', ";": ';', "tab": '\t', `\t`: '\t', "|": '|'} {
		got, err := parseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", ",,", `"`, "\n"} {
		_, err := parseDelimiter(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestIsWriteStatement(t *testing.T) {
	assert.True(t, isWriteStatement("  update people set age = 1"))
	assert.True(t, isWriteStatement("DROP TABLE people"))
	assert.False(t, isWriteStatement("SELECT * FROM people"))
	assert.False(t, isWriteStatement("with x as (select 1) select * from x"))
}

func TestParseColumnSpec(t *testing.T) {
	in, err := parseColumnSpec("id:60:left, name:200 ,email,actions:90:right")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "email", "actions"}, in.Order)
	assert.Equal(t, map[string]float64{"id": 60, "name": 200, "actions": 90}, in.Widths)
	assert.Equal(t, []string{"id"}, in.Pinned.Left)
	assert.Equal(t, []string{"actions"}, in.Pinned.Right)
	assert.True(t, in.Visibility["email"])

	_, err = parseColumnSpec("a,a")
	assert.Error(t, err)
	_, err = parseColumnSpec("a:wide")
	assert.ErrorIs(t, err, util.ErrInvalidDimension)
	_, err = parseColumnSpec("a:10:top")
	assert.ErrorIs(t, err, util.ErrInvalidPinSide)
	_, err = parseColumnSpec("a:1:left:x")
	assert.Error(t, err)

	empty, err := parseColumnSpec("  ")
	require.NoError(t, err)
	assert.Empty(t, empty.Order)
}

func TestLayoutCommand_JSON(t *testing.T) {
	out, err := runCmd(t, newLayoutCmd(),
		"--count", "100", "--scroll-top", "350", "--height", "100", "--row-height", "35", "--overscan", "0",
		"--columns", "a:100:left,b,c:80:right", "--width", "200", "--json")
	require.NoError(t, err)

	var res layoutResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, 10, res.Rows.StartIndex)
	assert.Equal(t, 13, res.Rows.EndIndex)
	assert.Len(t, res.Rows.Items, 4)
	assert.Equal(t, float64(3500), res.Rows.TotalSize)

	require.Len(t, res.Columns.Columns, 3)
	assert.Equal(t, float64(280), res.Columns.TotalWidth)
	assert.Equal(t, "a", res.Columns.Columns[0].ID)
	assert.Equal(t, virtual.PinLeft, res.Columns.Columns[0].Pin)
	assert.Equal(t, "c", res.Columns.Columns[2].ID)
	assert.Equal(t, float64(0), res.Columns.Columns[2].StickyOffset)
	assert.Equal(t, float64(100), res.Columns.Columns[1].Size)
}

func TestLayoutCommand_Plain(t *testing.T) {
	out, err := runCmd(t, newLayoutCmd(), "--count", "0", "--columns", "x:60,y:70:right", "--hide", "x")
	require.NoError(t, err)

	assert.Contains(t, out, "Rows: none")
	assert.Contains(t, out, "total height 0px")
	assert.Contains(t, out, "Columns (1 rendered)")
	assert.Contains(t, out, "total width 70px")
	assert.Contains(t, out, "right")

	_, err = runCmd(t, newLayoutCmd(), "--columns", "x", "--hide", "nope")
	assert.ErrorIs(t, err, util.ErrUnknownColumn)

	_, err = runCmd(t, newLayoutCmd(), "--count", "-1")
	assert.ErrorIs(t, err, util.ErrInvalidDimension)
}

func TestViewCommand_SourceSelection(t *testing.T) {
	_, err := runCmd(t, newViewCmd())
	assert.ErrorIs(t, err, util.ErrNoSource)

	_, err = runCmd(t, newViewCmd(), "--demo", "5", "--csv", "people.csv")
	assert.ErrorIs(t, err, util.ErrTooManySources)

	_, err = runCmd(t, newViewCmd(), "--query", "DELETE FROM people")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Write statements")

	_, err = runCmd(t, newViewCmd(), "--query", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No database URL")
}

func TestViewCommand_DemoJSON(t *testing.T) {
	out, err := runCmd(t, newViewCmd(), "--demo", "30", "--sort", "age:desc", "--hide", "email", "--json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 30)

	for i, r := range rows {
		assert.NotContains(t, r, "email")
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1]["age"].(float64), r["age"].(float64), "row %d", i)
		}
	}
}

func TestViewCommand_UnknownColumn(t *testing.T) {
	_, err := runCmd(t, newViewCmd(), "--demo", "3", "--pin-left", "nope", "--json")
	assert.ErrorIs(t, err, util.ErrUnknownColumn)

	_, err = runCmd(t, newViewCmd(), "--demo", "3", "--sort", "nope", "--json")
	assert.ErrorIs(t, err, util.ErrUnknownColumn)
}

func TestViewCommand_CSVPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("name;age\nbob;35\nalice;29\ncarol;41\n"), 0644))

	out, err := runCmd(t, newViewCmd(), "--csv", path, "--delimiter", ";", "--sort", "name", "--no-pager")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "#")
	assert.Contains(t, lines[2], "alice")
	assert.Contains(t, lines[3], "bob")
	assert.Contains(t, lines[4], "carol")
}

func TestConfigCommand_SetGet(t *testing.T) {
	t.Setenv("VGRID_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	run := func(args ...string) string {
		var out bytes.Buffer
		cmd := newConfigCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.ExecuteContext(context.Background()))
		return out.String()
	}

	run("view.overscan", "9")
	assert.Equal(t, "9\n", run("view.overscan"))
	assert.Contains(t, run("--list"), "view.overscan=9")
	assert.Equal(t, os.Getenv("VGRID_CONFIG")+"\n", run("--path"))

	cmd := newConfigCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"view.nope"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, newVersionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "vgrid version "+Version)
}
