// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"io"
	"os"

	"github.com/gridkit/gridkit/internal/theme"

	"golang.org/x/term"
)

const (
	keyCtrlC    = "ctrl+c"
	keyEsc      = "esc"
	keyEnter    = "enter"
	keySpace    = " "
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
)

// ErrCancelled is returned by Result when the user dismissed a component.
var ErrCancelled = errors.New("user cancelled")

// Config holds common configuration for TUI components.
type Config struct {
	// Provider supplies the light/dark mode. A nil Provider renders light.
	Provider *theme.Provider
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// Width specifies the width of the component (0 for auto).
	Width TerminalDimension
	// Output specifies where to write the component output.
	Output io.Writer
}

// DefaultConfig returns the default configuration for TUI components.
// Accessible mode is enabled when stdin is not a terminal or the ACCESSIBLE
// environment variable is set; prompts are then written to stderr so that
// command substitution does not swallow them.
func DefaultConfig() Config {
	accessible := !isInputTerminal() || os.Getenv("ACCESSIBLE") != ""

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Provider:   theme.NewProvider(theme.ModeLight),
		Accessible: accessible,
		Output:     output,
	}
}

// provider returns the configured Provider, creating a light one when unset.
func (c Config) provider() *theme.Provider {
	if c.Provider == nil {
		return theme.NewProvider(theme.ModeLight)
	}
	return c.Provider
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getOutputWriter returns cfg.Output, or stderr in accessible mode and stdout
// otherwise.
func getOutputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if cfg.Accessible {
		return os.Stderr
	}
	return os.Stdout
}
