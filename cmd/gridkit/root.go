// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gridkit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/gridkit/gridkit/internal/config"
	"github.com/gridkit/gridkit/internal/issue"
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
	theme      string
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// NewRootCommand builds the gridkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}
	st := stylesFor(app.provider)

	rootCmd := &cobra.Command{
		Use:   "gridkit",
		Short: "Sortable, selectable data tables for the terminal",
		Long: st.Title.Render("gridkit") + st.Subtitle.Render(" - sortable, selectable data tables for the terminal") + `

gridkit shows CSV, TSV, JSON, YAML, TOML and SQLite data as an
interactive table with three-state column sorting and row selection,
and prints it as a plain table when output is not a terminal.

` + st.Subtitle.Render("Examples:") + `
  gridkit table users.csv                     Browse a CSV file
  gridkit table users.json --sort age:desc    Start sorted by age
  gridkit table app.db --query 'SELECT * FROM users' --plain
  gridkit demo                                Run the demo app
  gridkit catalog datatable/products          Render one component story`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/gridkit/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	rootCmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "appearance: light or dark (default from config)")

	rootCmd.AddCommand(
		newTableCommand(app),
		newDemoCommand(app),
		newInputCommand(app),
		newCatalogCommand(app),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// setup loads configuration and derives the logger and the theme provider.
// A broken config file is reported as a warning and the defaults are used.
func (a *App) setup(ctx context.Context, flags *rootFlags) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, stylesFor(a.provider).Warning.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		cfg = config.DefaultConfig()
		a.configErr = err
	}
	a.settings = cfg
	a.verbose = flags.verbose || cfg.UI.Verbose

	mode := cfg.Theme
	if flags.theme != "" {
		if mode, err = theme.ParseMode(flags.theme); err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
	}
	if err := a.provider.Set(mode); err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	level := cfg.EffectiveLogLevel()
	if flags.verbose {
		level = log.DebugLevel
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	a.logger.Debug("configuration loaded", "path", cfg.Path, "theme", mode, "locale", cfg.Locale)
	return nil
}

// Run executes the command line args with deps and returns the exit code.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	app := NewApp(deps)
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

// Main runs gridkit with the process arguments and returns the exit code.
func Main() int {
	return Run(context.Background(), os.Args[1:], Dependencies{})
}

// Execute runs gridkit and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

// handleError prints err and, when it maps to one, the issue explaining it.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	st := stylesFor(a.provider)
	fmt.Fprintln(w, st.Error.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	id := issueFor(err)
	if id == 0 {
		return
	}
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(a.glamourStyle(w))
	if renderErr != nil {
		a.logger.Warn("failed to render issue", "issue", id, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle picks the glamour style for w: plain ASCII for pipes and the
// current theme mode on terminals.
func (a *App) glamourStyle(w io.Writer) string {
	if !isTerminal(w) {
		return "notty"
	}
	return a.provider.Mode().String()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
