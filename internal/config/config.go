// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gridkit/gridkit/internal/cueutil"
	"github.com/gridkit/gridkit/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "gridkit"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. GRIDKIT_THEME.
	EnvPrefix = "GRIDKIT"
)

//go:embed config_schema.cue
var configSchema []byte

// ErrConfigNotFound is returned when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigDir returns the gridkit configuration directory: %APPDATA% on
// Windows, ~/Library/Application Support on macOS and $XDG_CONFIG_HOME
// (defaulting to ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// ResolvePath returns the config file Load would read and whether it
// exists. With no file present it returns the config directory candidate.
func ResolvePath(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, fileExists(opts.ConfigFilePath), nil
	}
	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}
	primary := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(primary) {
		return primary, true, nil
	}
	local := filepath.Join(opts.WorkDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(local) {
		return local, true, nil
	}
	return primary, false, nil
}

// Load reads configuration with the default provider.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return NewProvider().Load(ctx, opts)
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load config canceled: %w", err)
	}

	v := newViper()

	path, exists, err := ResolvePath(opts)
	if err != nil {
		return nil, err
	}
	if opts.ConfigFilePath != "" && !exists {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'gridkit config show' to see the default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(ErrConfigNotFound).
			BuildError()
	}
	if exists {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Compare the values with 'gridkit config show'").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	} else {
		path = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Locale = Locale(strings.TrimSpace(string(cfg.Locale)))
	cfg.Path = path

	// Environment overrides bypass the CUE schema.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("theme", string(defaults.Theme))
	v.SetDefault("locale", string(defaults.Locale))
	v.SetDefault("log_level", string(defaults.LogLevel))
	v.SetDefault("table.selectable", defaults.Table.Selectable)
	v.SetDefault("table.height", defaults.Table.Height)
	v.SetDefault("table.empty_message", defaults.Table.EmptyMessage)
	v.SetDefault("table.max_cell_width", defaults.Table.MaxCellWidth)
	v.SetDefault("ui.accessible", defaults.UI.Accessible)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadCUEIntoViper validates the file against #Config and merges it over
// the defaults. Fields are optional, so values need not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path), cueutil.WithConcrete(false))
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to dir (ConfigDir
// when empty) unless a config file already exists there. It returns the
// file path and whether it was written.
func CreateDefaultConfig(dir string) (string, bool, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return path, true, nil
}

// GenerateCUE renders cfg as a config.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder
	sb.WriteString("// gridkit configuration\n\n")
	fmt.Fprintf(&sb, "theme:     %q\n", cfg.Theme)
	fmt.Fprintf(&sb, "locale:    %q\n", cfg.Locale)
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	sb.WriteString("\ntable: {\n")
	fmt.Fprintf(&sb, "\tselectable:     %v\n", cfg.Table.Selectable)
	fmt.Fprintf(&sb, "\theight:         %d\n", cfg.Table.Height)
	fmt.Fprintf(&sb, "\tempty_message:  %q\n", cfg.Table.EmptyMessage)
	if cfg.Table.MaxCellWidth > 0 {
		fmt.Fprintf(&sb, "\tmax_cell_width: %d\n", cfg.Table.MaxCellWidth)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	fmt.Fprintf(&sb, "\tverbose:    %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")
	return sb.String()
}
