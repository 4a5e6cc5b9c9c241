// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/gridkit/gridkit/internal/catalog"
	"github.com/gridkit/gridkit/internal/config"
	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/theme"
	"github.com/gridkit/gridkit/internal/tui"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. Command handlers
	// receive an App and delegate to its services.
	App struct {
		Config  ConfigProvider
		Catalog *catalog.Catalog

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		// Set by the root command before any subcommand runs.
		settings  *config.Config
		configErr error
		provider  *theme.Provider
		logger    *log.Logger
		verbose   bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Catalog *catalog.Catalog
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.New()
	}

	return &App{
		Config:   deps.Config,
		Catalog:  deps.Catalog,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		settings: config.DefaultConfig(),
		provider: theme.NewProvider(theme.ModeLight),
		logger:   log.New(io.Discard),
	}
}

// Logger returns the application logger.
func (a *App) Logger() *log.Logger { return a.logger }

// Settings returns the effective configuration.
func (a *App) Settings() *config.Config { return a.settings }

// loader returns a dataset loader logging through the App logger.
func (a *App) loader() *dataset.Loader {
	return dataset.NewLoader(a.logger.WithPrefix("dataset"))
}

// tuiConfig returns the component configuration shared by every view.
func (a *App) tuiConfig() tui.Config {
	accessible := a.settings.UI.Accessible || os.Getenv("ACCESSIBLE") != "" || !isTerminal(a.stdin)
	return tui.Config{
		Provider:   a.provider,
		Accessible: accessible,
		Width:      tui.TerminalDimension(terminalWidth(a.stdout)),
		Output:     a.stdout,
	}
}

// interactive reports whether both ends of the App are terminals.
func (a *App) interactive() bool {
	return isTerminal(a.stdin) && isTerminal(a.stdout)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
