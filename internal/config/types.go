// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

const (
	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// DefaultTableHeight is the number of body rows shown at once.
	DefaultTableHeight = 10
	// DefaultMaxCellWidth bounds each cell before truncation.
	DefaultMaxCellWidth = 32
	// DefaultLocale collates text columns.
	DefaultLocale Locale = "en"

	minTableHeight  = 1
	maxTableHeight  = 200
	minMaxCellWidth = 4
	maxMaxCellWidth = 256
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLocale is returned when a Locale is not a BCP 47 tag.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidTableConfig is the sentinel error wrapped by InvalidTableConfigError.
	ErrInvalidTableConfig = errors.New("invalid table config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// Locale is a BCP 47 language tag such as "en" or "sv-SE".
	Locale string

	// InvalidLocaleError is returned when a Locale does not parse.
	InvalidLocaleError struct {
		Value Locale
		Err   error
	}

	// InvalidTableConfigError collects TableConfig field errors.
	InvalidTableConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects Config field errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Theme is the initial appearance.
		Theme theme.Mode `json:"theme" mapstructure:"theme"`
		// Locale collates text columns.
		Locale Locale `json:"locale" mapstructure:"locale"`
		// LogLevel is the minimum log level.
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level"`
		// Table holds data table defaults.
		Table TableConfig `json:"table" mapstructure:"table"`
		// UI holds terminal behaviour.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Path is the file the configuration was read from, empty for defaults.
		Path string `json:"-" mapstructure:"-"`
	}

	// TableConfig holds data table defaults.
	TableConfig struct {
		Selectable   bool   `json:"selectable" mapstructure:"selectable"`
		Height       int    `json:"height" mapstructure:"height"`
		EmptyMessage string `json:"empty_message" mapstructure:"empty_message"`
		MaxCellWidth int    `json:"max_cell_width" mapstructure:"max_cell_width"`
	}

	// UIConfig holds terminal behaviour.
	UIConfig struct {
		// Accessible replaces interactive views with line-based prompts.
		Accessible bool `json:"accessible" mapstructure:"accessible"`
		// Verbose enables debug logging and error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:    theme.ModeLight,
		Locale:   DefaultLocale,
		LogLevel: LogLevelWarn,
		Table: TableConfig{
			Height:       DefaultTableHeight,
			EmptyMessage: datatable.DefaultEmptyMessage,
			MaxCellWidth: DefaultMaxCellWidth,
		},
	}
}

// IsValid returns whether every field of the Config is valid.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Theme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Locale.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Table.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// EffectiveLogLevel returns debug when verbose output is enabled, and the
// configured level otherwise.
func (c Config) EffectiveLogLevel() log.Level {
	if c.UI.Verbose {
		return log.DebugLevel
	}
	return c.LogLevel.Level()
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() and
// errors.As() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid checks the height and cell width bounds. A zero MaxCellWidth
// disables truncation.
func (c TableConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Height < minTableHeight || c.Height > maxTableHeight {
		errs = append(errs, fmt.Errorf("table.height %d out of range [%d, %d]", c.Height, minTableHeight, maxTableHeight))
	}
	if c.MaxCellWidth != 0 && (c.MaxCellWidth < minMaxCellWidth || c.MaxCellWidth > maxMaxCellWidth) {
		errs = append(errs, fmt.Errorf("table.max_cell_width %d out of range [%d, %d]", c.MaxCellWidth, minMaxCellWidth, maxMaxCellWidth))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTableConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTableConfigError.
func (e *InvalidTableConfigError) Error() string {
	return fmt.Sprintf("invalid table config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidTableConfig and the field errors.
func (e *InvalidTableConfigError) Unwrap() []error {
	return append([]error{ErrInvalidTableConfig}, e.FieldErrors...)
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts to a charmbracelet/log level, defaulting to warn.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the Locale.
func (l Locale) String() string { return string(l) }

// IsValid returns whether the Locale parses as a BCP 47 tag.
func (l Locale) IsValid() (bool, []error) {
	if _, err := language.Parse(string(l)); err != nil {
		return false, []error{&InvalidLocaleError{Value: l, Err: err}}
	}
	return true, nil
}

// Tag returns the parsed language tag, or language.English when the locale
// does not parse.
func (l Locale) Tag() language.Tag {
	tag, err := language.Parse(string(l))
	if err != nil {
		return language.English
	}
	return tag
}

// Error implements the error interface for InvalidLocaleError.
func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("invalid locale %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidLocale for errors.Is() compatibility.
func (e *InvalidLocaleError) Unwrap() error { return ErrInvalidLocale }
