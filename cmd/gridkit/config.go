// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/gridkit/gridkit/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `gridkit config` command tree. Subcommands
// read the configuration the root command loaded.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gridkit configuration",
		Long: `Manage gridkit configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/gridkit/config.cue (default ~/.config)
  - macOS: ~/Library/Application Support/gridkit/config.cue
  - Windows: %APPDATA%\gridkit\config.cue

A config.cue in the current directory is used when none exists there.
GRIDKIT_* environment variables override file values, for example
GRIDKIT_THEME=dark or GRIDKIT_TABLE_HEIGHT=20.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.configErr != nil {
				return app.configErr
			}
			showConfig(app.stdout, app, app.settings)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, exists, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: flags.configPath})
			if err != nil {
				return err
			}
			if !exists {
				fmt.Fprintf(app.stdout, "%s %s\n", path, stylesFor(app.provider).Subtitle.Render("(not found, using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, written, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			st := stylesFor(app.provider)
			if !written {
				fmt.Fprintf(app.stdout, "%s %s\n", st.Warning.Render("Config file already exists:"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s\n", st.Value.Render("Created"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.configErr != nil {
				return app.configErr
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(app.settings))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, app *App, cfg *config.Config) {
	st := stylesFor(app.provider)
	kv := func(indent, key string, value any) {
		fmt.Fprintf(w, "%s%s: %s\n", indent, st.Key.Render(key), st.Value.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(w, st.Title.Render("Current Configuration"))
	fmt.Fprintln(w)
	if cfg.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", st.Key.Render("Config file"), cfg.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", st.Key.Render("Config file"), st.Subtitle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	kv("", "theme", app.provider.Mode())
	kv("", "locale", cfg.Locale)
	kv("", "log_level", cfg.LogLevel)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", st.Key.Render("table"))
	kv("  ", "selectable", cfg.Table.Selectable)
	kv("  ", "height", cfg.Table.Height)
	kv("  ", "empty_message", cfg.Table.EmptyMessage)
	kv("  ", "max_cell_width", cfg.Table.MaxCellWidth)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", st.Key.Render("ui"))
	kv("  ", "accessible", cfg.UI.Accessible)
	kv("  ", "verbose", cfg.UI.Verbose)
}
