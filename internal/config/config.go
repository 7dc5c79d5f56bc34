package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/imgajeed76/vgrid/internal/grid"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/imgajeed76/vgrid/internal/virtual"
)

// Config represents the vgrid config.toml file
type Config struct {
	View     ViewConfig     `toml:"view"`
	Database DatabaseConfig `toml:"database"`
	Columns  []ColumnConfig `toml:"columns"`
}

// ViewConfig contains the geometry defaults of the grid.
// Geometry is computed in pixels; the terminal front end divides by
// cell_width_px and row_height_px to get cells.
type ViewConfig struct {
	RowHeightPx        int `toml:"row_height_px" config:"view.row_height_px" default:"16" min:"1" max:"512" desc:"Pixel height of one row"`
	CellWidthPx        int `toml:"cell_width_px" config:"view.cell_width_px" default:"8" min:"1" max:"64" desc:"Pixels per terminal column"`
	Overscan           int `toml:"overscan" config:"view.overscan" default:"5" max:"1000" desc:"Rows rendered beyond each viewport edge"`
	ColumnOverscanPx   int `toml:"column_overscan_px" config:"view.column_overscan_px" default:"200" max:"100000" desc:"Pixels of columns rendered beyond each viewport edge"`
	DefaultColumnWidth int `toml:"default_column_width" config:"view.default_column_width" default:"120" min:"50" max:"10000" desc:"Width of columns without a configured width"`
}

// DatabaseConfig binds the grid to a PostgreSQL table for loading and
// persisting edits
type DatabaseConfig struct {
	URL        string `toml:"url" config:"database.url" desc:"PostgreSQL connection URL"`
	Table      string `toml:"table" config:"database.table" desc:"Table that receives cell edits (empty = read-only)"`
	KeyColumn  string `toml:"key_column" config:"database.key_column" default:"id" desc:"Primary key column used as row id"`
	TimeoutSec int    `toml:"timeout_sec" config:"database.timeout_sec" default:"30" min:"1" max:"3600" desc:"Query timeout in seconds"`
}

// ColumnConfig describes one column. Columns not listed here are shown with
// defaults in source order after the listed ones.
type ColumnConfig struct {
	ID        string  `toml:"id"`
	Title     string  `toml:"title,omitempty"`
	Width     float64 `toml:"width,omitempty"`
	MinWidth  float64 `toml:"min_width,omitempty"`
	MaxWidth  float64 `toml:"max_width,omitempty"`
	Pin       string  `toml:"pin,omitempty"`
	Hidden    bool    `toml:"hidden,omitempty"`
	Sortable  *bool   `toml:"sortable,omitempty"`
	Resizable *bool   `toml:"resizable,omitempty"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			RowHeightPx:        16,
			CellWidthPx:        8,
			Overscan:           virtual.DefaultOverscan,
			ColumnOverscanPx:   virtual.DefaultColumnOverscan,
			DefaultColumnWidth: 120,
		},
		Database: DatabaseConfig{
			KeyColumn:  "id",
			TimeoutSec: 30,
		},
	}
}

// Path returns the path to the config file.
// VGRID_CONFIG wins; otherwise follows XDG Base Directory spec on Linux,
// platform conventions elsewhere
func Path() string {
	if p := os.Getenv("VGRID_CONFIG"); p != "" {
		return p
	}

	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "vgrid")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "vgrid")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "vgrid")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "vgrid")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, falling back to defaults if it
// doesn't exist
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, util.ConfigLoadError(path, err)
		}
	}

	defaults := DefaultConfig()

	if cfg.View.RowHeightPx == 0 {
		cfg.View.RowHeightPx = defaults.View.RowHeightPx
	}
	if cfg.View.CellWidthPx == 0 {
		cfg.View.CellWidthPx = defaults.View.CellWidthPx
	}
	// NOTE: Overscan and ColumnOverscanPx are NOT defaulted here because 0
	// is a valid value (render only what is visible).
	if cfg.View.DefaultColumnWidth == 0 {
		cfg.View.DefaultColumnWidth = defaults.View.DefaultColumnWidth
	}
	if cfg.Database.KeyColumn == "" {
		cfg.Database.KeyColumn = defaults.Database.KeyColumn
	}
	if cfg.Database.TimeoutSec == 0 {
		cfg.Database.TimeoutSec = defaults.Database.TimeoutSec
	}

	for i, c := range cfg.Columns {
		if _, err := ParsePin(c.Pin); err != nil {
			return nil, util.ConfigLoadError(path, fmt.Errorf("columns[%d] (%s): %w", i, c.ID, err))
		}
	}

	return cfg, nil
}

// Save writes the config file to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// GetValue returns a config value by key (uses reflection)
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue sets a config value by key (uses reflection with validation)
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}

// ParsePin converts a configured pin side to a layout pin side
func ParsePin(s string) (virtual.PinSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return virtual.PinNone, nil
	case "left":
		return virtual.PinLeft, nil
	case "right":
		return virtual.PinRight, nil
	}
	return virtual.PinNone, fmt.Errorf("%w: %q (want left, right or none)", util.ErrInvalidPinSide, s)
}

// ColumnDefs builds the column definitions for a dataset with the given
// source column ids. Configured columns come first in config order (only
// those present in the source), then the remaining source columns.
func (c *Config) ColumnDefs(sourceIDs []string) []grid.ColumnDef {
	present := make(map[string]bool, len(sourceIDs))
	for _, id := range sourceIDs {
		present[id] = true
	}

	defs := make([]grid.ColumnDef, 0, len(sourceIDs))
	seen := make(map[string]bool, len(sourceIDs))
	for _, cc := range c.Columns {
		if !present[cc.ID] || seen[cc.ID] {
			continue
		}
		seen[cc.ID] = true
		defs = append(defs, c.columnDef(cc))
	}
	for _, id := range sourceIDs {
		if !seen[id] {
			seen[id] = true
			defs = append(defs, c.columnDef(ColumnConfig{ID: id}))
		}
	}
	return defs
}

func (c *Config) columnDef(cc ColumnConfig) grid.ColumnDef {
	pin, _ := ParsePin(cc.Pin)
	def := grid.ColumnDef{
		ID:        cc.ID,
		Title:     cc.Title,
		Width:     cc.Width,
		MinWidth:  cc.MinWidth,
		MaxWidth:  cc.MaxWidth,
		Pin:       pin,
		Hidden:    cc.Hidden,
		Sortable:  cc.Sortable == nil || *cc.Sortable,
		Resizable: cc.Resizable == nil || *cc.Resizable,
	}
	if def.Title == "" {
		def.Title = cc.ID
	}
	if def.Width == 0 {
		def.Width = float64(c.View.DefaultColumnWidth)
	}
	return def
}
