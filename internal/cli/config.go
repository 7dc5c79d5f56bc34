package cli

import (
	"fmt"
	"strings"

	"github.com/imgajeed76/vgrid/internal/config"
	"github.com/imgajeed76/vgrid/internal/ui/styles"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set grid options",
		Long: `Get and set vgrid configuration options.

The file lives at $VGRID_CONFIG, or the platform config directory
(~/.config/vgrid/config.toml on Linux). Column definitions are edited in
the file directly under [[columns]].

Examples:
  vgrid config view.overscan              # Get value
  vgrid config view.overscan 10           # Set value
  vgrid config database.url postgres://…  # Set value
  vgrid config --list                     # List all config
  vgrid config --path                     # Show the config file path

` + config.GenerateHelpText(),
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")
	cmd.Flags().Bool("path", false, "Print the config file path")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")
	showPath, _ := cmd.Flags().GetBool("path")
	out := cmd.OutOrStdout()
	path := config.Path()

	if showPath {
		fmt.Fprintln(out, path)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if listAll {
		for _, key := range config.ListKeys() {
			value, _ := cfg.GetValue(key)
			fmt.Fprintf(out, "%s=%s\n", key, value)
		}
		if len(cfg.Columns) > 0 {
			ids := make([]string, len(cfg.Columns))
			for i, c := range cfg.Columns {
				ids[i] = c.ID
			}
			fmt.Fprintf(out, "columns=%s\n", strings.Join(ids, ","))
		}
		return nil
	}

	if len(args) == 0 {
		return util.MissingArgumentError("key", "vgrid config view.overscan")
	}

	key := strings.ToLower(args[0])

	// Get or set?
	if len(args) == 1 {
		value, ok := cfg.GetValue(key)
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	if err := cfg.SetValue(key, args[1]); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Debug("config updated", "key", key, "path", path)
	fmt.Fprintln(out, styles.SuccessMsg(fmt.Sprintf("%s = %s", key, args[1])))
	return nil
}
