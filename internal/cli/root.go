package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/imgajeed76/vgrid/internal/ui/styles"
	"github.com/imgajeed76/vgrid/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// logger is configured by the persistent pre-run from --verbose and
// --log-file. Until then it discards.
var (
	logger    = slog.New(slog.DiscardHandler)
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "vgrid",
	Short: "A virtualized data grid for the terminal",
	Long: `vgrid shows large tabular datasets in a scrollable terminal grid.

Only the rows and columns inside the viewport (plus a small overscan) are
rendered, so a million-row CSV scrolls as smoothly as a ten-row one.
Columns can be pinned to either edge, resized, reordered, hidden and
sorted. Cells are editable; edits are applied immediately and rolled back
if saving them to PostgreSQL fails.

Data sources:
  --csv <file>      A CSV file
  --demo <n>        A synthetic dataset of n rows
  --query <sql>     A PostgreSQL query (edits go to database.table)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer closeLog()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Check if it's a structured GridError
		var gridErr *util.GridError
		if errors.As(err, &gridErr) {
			fmt.Fprintln(os.Stderr, gridErr.Format())
		} else {
			// Simple error - still format nicely
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("log-file", "", "Write debug logs to this file")

	// Version flag template to show more info
	rootCmd.SetVersionTemplate(fmt.Sprintf("vgrid version %s\n  commit: %s\n  built:  %s\n", Version, CommitSHA, BuildDate))

	// Set up pre-run to handle global flags
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		if noColor {
			styles.SetNoColor(true)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		logFile, _ := cmd.Flags().GetString("log-file")
		return setupLogging(verbose, logFile)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newViewCmd(),
		newLayoutCmd(),
		newConfigCmd(),
		newCompletionCmd(),
	)
}

// setupLogging routes the store and edit logs to path. Without a log file
// they are discarded, since the grid owns the terminal.
func setupLogging(verbose bool, path string) error {
	if path == "" {
		logger = slog.New(slog.DiscardHandler)
		return nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logCloser = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vgrid.

To load completions:

Bash:
  $ source <(vgrid completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ vgrid completion bash > /etc/bash_completion.d/vgrid
  # macOS:
  $ vgrid completion bash > $(brew --prefix)/etc/bash_completion.d/vgrid

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ vgrid completion zsh > "${fpath[1]}/_vgrid"

Fish:
  $ vgrid completion fish | source

  # To load completions for each session, execute once:
  $ vgrid completion fish > ~/.config/fish/completions/vgrid.fish

PowerShell:
  PS> vgrid completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vgrid version %s\n", Version)
			fmt.Fprintf(out, "  commit: %s\n", CommitSHA)
			fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
