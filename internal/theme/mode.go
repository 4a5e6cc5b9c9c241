// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ModeLight is the light appearance.
	ModeLight Mode = "light"
	// ModeDark is the dark appearance.
	ModeDark Mode = "dark"
)

// ErrInvalidMode is the sentinel error wrapped by InvalidModeError.
var ErrInvalidMode = errors.New("invalid theme mode")

type (
	// Mode is an appearance mode.
	Mode string

	// InvalidModeError is returned when a Mode is neither light nor dark.
	// It wraps ErrInvalidMode for errors.Is() compatibility.
	InvalidModeError struct {
		Value Mode
	}
)

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// IsValid returns whether the Mode is one of the defined modes.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeLight, ModeDark:
		return true, nil
	default:
		return false, []error{&InvalidModeError{Value: m}}
	}
}

// Toggle returns the opposite mode. Anything that is not dark toggles to dark.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// IsDark reports whether m is the dark mode.
func (m Mode) IsDark() bool { return m == ModeDark }

// ToggleLabel returns the accessible label of a control that switches away
// from m.
func (m Mode) ToggleLabel() string {
	return fmt.Sprintf("Switch to %s theme", m.Toggle())
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if ok, errs := m.IsValid(); !ok {
		return "", errs[0]
	}
	return m, nil
}

// Error implements the error interface for InvalidModeError.
func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid theme mode %q (valid: light, dark)", e.Value)
}

// Unwrap returns ErrInvalidMode for errors.Is() compatibility.
func (e *InvalidModeError) Unwrap() error { return ErrInvalidMode }
