package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/imgajeed76/vgrid/internal/config"
	"github.com/imgajeed76/vgrid/internal/dataset"
	"github.com/imgajeed76/vgrid/internal/db"
	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/ui"
	"github.com/imgajeed76/vgrid/internal/ui/styles"
	"github.com/imgajeed76/vgrid/internal/ui/table"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/imgajeed76/vgrid/internal/virtual"
	"github.com/spf13/cobra"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a dataset in the interactive grid",
		Long: `Open a dataset in the interactive grid.

Exactly one source is required. On a terminal the grid opens full screen;
when stdout is piped (or with --no-pager) a plain table is printed instead.

Keys:
  arrows/hjkl   Move focus          s / S      Sort / add sort key
  pgup/pgdn     Page                + / -      Widen / narrow column
  home/end      First / last row    < / >      Move column
  0 / $         First / last column p          Cycle pin (left, right, none)
  space         Select row          H / U      Hide column / show all
  enter         Edit cell           q          Quit

Edits to a --query grid are written to database.table, keyed by
database.key_column. A failed write rolls the cell back.

Examples:
  vgrid view --demo 100000
  vgrid view --csv people.csv --sort age:desc --pin-left name
  vgrid view --query 'SELECT * FROM people' --table people --key id`,
		Args: cobra.NoArgs,
		RunE: runView,
	}

	cmd.Flags().String("csv", "", "Load rows from a CSV file")
	cmd.Flags().Int("demo", 0, "Generate a synthetic dataset with this many rows")
	cmd.Flags().Uint64("seed", 1, "Seed for --demo")
	cmd.Flags().String("query", "", "Load rows from a PostgreSQL query")

	cmd.Flags().String("delimiter", ",", "CSV field delimiter")
	cmd.Flags().Bool("infer", true, "Infer numeric CSV columns")

	cmd.Flags().String("url", "", "PostgreSQL connection URL (default database.url)")
	cmd.Flags().String("table", "", "Table that receives edits (default database.table)")
	cmd.Flags().String("key", "", "Key column used as row id (default database.key_column)")

	cmd.Flags().StringArray("sort", nil, "Sort by column, col or col:desc (repeatable)")
	cmd.Flags().StringSlice("pin-left", nil, "Pin columns to the left edge")
	cmd.Flags().StringSlice("pin-right", nil, "Pin columns to the right edge")
	cmd.Flags().StringSlice("hide", nil, "Hide columns")

	cmd.Flags().Bool("raw", false, "Output raw values without formatting (for piping)")
	cmd.Flags().Bool("json", false, "Output rows as JSON array")
	cmd.Flags().Bool("no-pager", false, "Disable interactive grid view")

	return cmd
}

// viewSource is the resolved data source of a view invocation
type viewSource struct {
	src    *dataset.Source
	conn   *db.DB
	onEdit grid.EditHandler
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vs, err := loadSource(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if vs.conn != nil {
		defer vs.conn.Close()
	}

	store, err := buildStore(cmd, cfg, vs.src)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noPager, _ := cmd.Flags().GetBool("no-pager")

	opts := table.DisplayOptions{
		JSON:        jsonOutput,
		Raw:         raw,
		NoPager:     noPager,
		Geometry:    geometryFrom(cfg.View),
		OnCellEdit:  vs.onEdit,
		EditTimeout: time.Duration(cfg.Database.TimeoutSec) * time.Second,
		Logger:      logger,
	}
	if out := cmd.OutOrStdout(); out != os.Stdout {
		opts.Out = out
	}

	logger.Info("grid opened", "source", vs.src.Describe())
	return table.DisplayGrid(grid.WithStore(ctx, store), vs.src.Name, opts)
}

// loadSource resolves exactly one of --csv, --demo and --query
func loadSource(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*viewSource, error) {
	csvPath, _ := cmd.Flags().GetString("csv")
	demoRows, _ := cmd.Flags().GetInt("demo")
	query, _ := cmd.Flags().GetString("query")

	var given []string
	if csvPath != "" {
		given = append(given, "--csv")
	}
	if cmd.Flags().Changed("demo") {
		given = append(given, "--demo")
	}
	if query != "" {
		given = append(given, "--query")
	}
	switch len(given) {
	case 0:
		return nil, util.NoSourceError()
	case 1:
	default:
		return nil, util.TooManySourcesError(given)
	}

	switch {
	case csvPath != "":
		delim, _ := cmd.Flags().GetString("delimiter")
		infer, _ := cmd.Flags().GetBool("infer")
		comma, err := parseDelimiter(delim)
		if err != nil {
			return nil, err
		}

		spinner := ui.NewSpinner("Reading " + csvPath)
		spinner.Start()
		src, err := dataset.LoadCSV(csvPath, dataset.CSVOptions{Comma: comma, InferTypes: infer})
		spinner.Stop()
		if err != nil {
			return nil, err
		}
		return &viewSource{src: src}, nil

	case query != "":
		return loadQuery(ctx, cmd, cfg, query)

	default:
		if demoRows < 0 {
			return nil, fmt.Errorf("%w: --demo must not be negative", util.ErrInvalidDimension)
		}
		seed, _ := cmd.Flags().GetUint64("seed")
		return &viewSource{src: dataset.Demo(demoRows, seed)}, nil
	}
}

func loadQuery(ctx context.Context, cmd *cobra.Command, cfg *config.Config, query string) (*viewSource, error) {
	if isWriteStatement(query) {
		return nil, util.NewError("Write statements are not allowed").
			WithMessage("--query loads rows; edit cells in the grid to change data").
			WithSuggestion("vgrid view --query 'SELECT * FROM people' --table people")
	}

	url := flagOr(cmd, "url", cfg.Database.URL)
	if url == "" {
		return nil, util.NewError("No database URL").
			WithMessage("--query needs a PostgreSQL connection").
			WithSuggestions(
				"vgrid view --url postgres://localhost/app --query '...'",
				"vgrid config database.url postgres://localhost/app",
			)
	}

	timeout := time.Duration(cfg.Database.TimeoutSec) * time.Second
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spinner := ui.NewSpinner("Connecting to database")
	spinner.Start()
	conn, err := db.Connect(loadCtx, url)
	if err != nil {
		spinner.Error("Connection failed")
		return nil, util.DatabaseConnectionError(url, err)
	}
	spinner.Stop()

	spinner = ui.NewSpinner("Running query")
	spinner.Start()
	src, err := db.LoadQuery(loadCtx, conn, query)
	if err != nil {
		spinner.Error("Query failed")
		conn.Close()
		return nil, fmt.Errorf("query failed: %w", err)
	}
	spinner.Success(fmt.Sprintf("Loaded %d rows", len(src.Rows)))

	tableName := flagOr(cmd, "table", cfg.Database.Table)
	keyColumn := flagOr(cmd, "key", cfg.Database.KeyColumn)
	if tableName != "" && !slices.Contains(src.Columns, keyColumn) {
		// Rows would be keyed by row number, which the table knows nothing about
		logger.Warn("key column not in query result, edits are read-only", "key", keyColumn, "table", tableName)
		fmt.Fprintln(cmd.ErrOrStderr(), styles.WarningMsg(fmt.Sprintf("key column '%s' is not in the result; edits will be rejected", keyColumn)))
		tableName = ""
	}
	if tableName != "" {
		src.Name = tableName
	}
	writer := db.NewCellWriter(conn, tableName, keyColumn)
	logger.Debug("query loaded", "rows", len(src.Rows), "table", tableName)

	return &viewSource{src: src, conn: conn, onEdit: writer.Handler()}, nil
}

// buildStore creates the store for src and applies the column, pin, hide
// and sort options
func buildStore(cmd *cobra.Command, cfg *config.Config, src *dataset.Source) (*grid.Store, error) {
	getID := src.GetID
	if getID == nil {
		getID = src.KeyFor(flagOr(cmd, "key", cfg.Database.KeyColumn))
	}

	store := grid.NewStore(
		grid.WithLogger(logger),
		grid.WithColumns(cfg.ColumnDefs(src.Columns)),
	)
	store.SetData(src.Rows, getID)

	pinLeft, _ := cmd.Flags().GetStringSlice("pin-left")
	pinRight, _ := cmd.Flags().GetStringSlice("pin-right")
	hide, _ := cmd.Flags().GetStringSlice("hide")
	sorts, _ := cmd.Flags().GetStringArray("sort")

	known := src.Columns
	check := func(id string) error {
		if _, ok := store.Snapshot().Column(id); !ok {
			return util.UnknownColumnError(id, known)
		}
		return nil
	}

	for _, id := range pinLeft {
		if err := check(id); err != nil {
			return nil, err
		}
		store.PinColumn(id, virtual.PinLeft)
	}
	for _, id := range pinRight {
		if err := check(id); err != nil {
			return nil, err
		}
		store.PinColumn(id, virtual.PinRight)
	}
	for _, id := range hide {
		if err := check(id); err != nil {
			return nil, err
		}
		if store.Snapshot().ColumnVisibility[id] {
			store.ToggleColumnVisibility(id)
		}
	}
	for i, s := range sorts {
		col, desc, err := parseSortFlag(s)
		if err != nil {
			return nil, err
		}
		if err := check(col); err != nil {
			return nil, err
		}
		store.ToggleSort(col, i > 0)
		if desc {
			store.ToggleSort(col, true)
		}
	}

	return store, nil
}

// parseSortFlag splits "col" or "col:asc" / "col:desc"
func parseSortFlag(s string) (col string, desc bool, err error) {
	col, dir, found := strings.Cut(s, ":")
	col = strings.TrimSpace(col)
	if col == "" {
		return "", false, fmt.Errorf("invalid --sort %q: missing column", s)
	}
	if !found {
		return col, false, nil
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return col, false, nil
	case "desc":
		return col, true, nil
	}
	return "", false, fmt.Errorf("invalid --sort %q: direction must be asc or desc", s)
}

// parseDelimiter accepts a single character or the names "tab" and "\t"
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r[0], nil
}

// isWriteStatement reports whether a query would modify the database
func isWriteStatement(query string) bool {
	upper := strings.ToUpper(strings.TrimSpace(query))
	for _, kw := range []string{"INSERT", "UPDATE", "DELETE", "DROP", "CREATE", "ALTER", "TRUNCATE", "GRANT", "REVOKE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func flagOr(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}

func geometryFrom(v config.ViewConfig) table.Geometry {
	return table.Geometry{
		RowHeightPx:      float64(v.RowHeightPx),
		CellWidthPx:      float64(v.CellWidthPx),
		Overscan:         v.Overscan,
		ColumnOverscanPx: float64(v.ColumnOverscanPx),
	}
}
