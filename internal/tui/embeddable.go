// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// ComponentTypeDataTable is the sortable, selectable data table.
	ComponentTypeDataTable ComponentType = "datatable"
	// ComponentTypeInput is the themed input field.
	ComponentTypeInput ComponentType = "input"
	// ComponentTypeThemeToggle is the light/dark switch.
	ComponentTypeThemeToggle ComponentType = "theme-toggle"
)

// ErrInvalidComponentType is the sentinel error wrapped by InvalidComponentTypeError.
var ErrInvalidComponentType = errors.New("invalid component type")

type (
	// EmbeddableComponent is a TUI component that can be embedded in a parent Bubbletea model.
	// Unlike standalone components that run their own tea.Program, embeddable components
	// delegate their Update and View to a parent model that owns the terminal.
	//
	// Cancelled returns true only when the user explicitly dismissed via Esc or Ctrl+C
	// (not on normal submission).
	EmbeddableComponent interface {
		tea.Model

		// IsDone returns true when the component has completed (submitted or cancelled).
		IsDone() bool

		// Result returns the component's result value. Only valid when IsDone() returns true.
		// The type of the result depends on the component:
		// - DataTable: []datatable.Record (the selection)
		// - Input: string
		// - ThemeToggle: theme.Mode
		Result() (any, error)

		// Cancelled returns true if the user cancelled the component (Esc, Ctrl+C).
		Cancelled() bool

		// SetSize sets the available width and height for the component.
		SetSize(width, height TerminalDimension)
	}

	// Focusable is implemented by components that accept keyboard input only
	// while focused.
	Focusable interface {
		Focus() tea.Cmd
		Blur()
		Focused() bool
	}

	// ComponentType names a component kind.
	ComponentType string

	// InvalidComponentTypeError is returned when a ComponentType is unknown.
	// It wraps ErrInvalidComponentType for errors.Is() compatibility.
	InvalidComponentTypeError struct {
		Value ComponentType
	}
)

// String returns the string representation of the ComponentType.
func (c ComponentType) String() string { return string(c) }

// IsValid returns whether the ComponentType is one of the defined kinds.
func (c ComponentType) IsValid() (bool, []error) {
	switch c {
	case ComponentTypeDataTable, ComponentTypeInput, ComponentTypeThemeToggle:
		return true, nil
	default:
		return false, []error{&InvalidComponentTypeError{Value: c}}
	}
}

// Error implements the error interface for InvalidComponentTypeError.
func (e *InvalidComponentTypeError) Error() string {
	return fmt.Sprintf("invalid component type %q (valid: datatable, input, theme-toggle)", e.Value)
}

// Unwrap returns ErrInvalidComponentType for errors.Is() compatibility.
func (e *InvalidComponentTypeError) Unwrap() error { return ErrInvalidComponentType }
