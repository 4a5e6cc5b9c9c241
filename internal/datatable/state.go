// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"errors"
	"fmt"
)

const (
	// SortNone leaves rows in their original order.
	SortNone SortDirection = iota
	// SortAscending orders rows from the smallest value to the largest.
	SortAscending
	// SortDescending orders rows from the largest value to the smallest.
	SortDescending
)

const (
	ariaAscending  = "ascending"
	ariaDescending = "descending"
	ariaNone       = "none"
)

var (
	// ErrInvalidSortDirection is the sentinel error wrapped by InvalidSortDirectionError.
	ErrInvalidSortDirection = errors.New("invalid sort direction")

	// ErrInvalidSortState is the sentinel error wrapped by InvalidSortStateError.
	ErrInvalidSortState = errors.New("invalid sort state")
)

type (
	// SortDirection is the direction a sorted column orders its rows in.
	SortDirection int

	// InvalidSortDirectionError is returned when a SortDirection is not one of
	// SortNone, SortAscending or SortDescending.
	// It wraps ErrInvalidSortDirection for errors.Is() compatibility.
	InvalidSortDirectionError struct {
		Value SortDirection
	}

	// SortState records which column drives the row order and in which direction.
	// The zero value is the unsorted state.
	//
	// Column is empty if and only if Direction is SortNone.
	SortState struct {
		// Column is the key of the active column.
		Column string
		// Direction is the active sort direction.
		Direction SortDirection
	}

	// InvalidSortStateError is returned when a SortState breaks the
	// column/direction invariant. It wraps ErrInvalidSortState.
	InvalidSortStateError struct {
		State  SortState
		Reason string
	}
)

// String returns the name of the direction.
func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "none"
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// Indicator returns the arrow drawn next to a sorted column header.
func (d SortDirection) Indicator() string {
	switch d {
	case SortAscending:
		return "▲"
	case SortDescending:
		return "▼"
	default:
		return ""
	}
}

// IsValid returns whether the SortDirection is one of the defined directions.
func (d SortDirection) IsValid() (bool, []error) {
	switch d {
	case SortNone, SortAscending, SortDescending:
		return true, nil
	default:
		return false, []error{&InvalidSortDirectionError{Value: d}}
	}
}

// ParseSortDirection parses "asc", "ascending", "desc", "descending", "none" or "".
func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	case "", "none":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("%w: %q (expected asc or desc)", ErrInvalidSortDirection, s)
	}
}

// Error implements the error interface for InvalidSortDirectionError.
func (e *InvalidSortDirectionError) Error() string {
	return fmt.Sprintf("invalid sort direction %d", int(e.Value))
}

// Unwrap returns ErrInvalidSortDirection for errors.Is() compatibility.
func (e *InvalidSortDirectionError) Unwrap() error { return ErrInvalidSortDirection }

// IsSorted reports whether the state orders rows by a column.
func (s SortState) IsSorted() bool {
	return s.Column != "" && s.Direction != SortNone
}

// IsValid checks the direction and the column/direction invariant.
func (s SortState) IsValid() (bool, []error) {
	var errs []error
	if ok, dirErrs := s.Direction.IsValid(); !ok {
		errs = append(errs, dirErrs...)
	}
	switch {
	case s.Direction == SortNone && s.Column != "":
		errs = append(errs, &InvalidSortStateError{State: s, Reason: "column set without a direction"})
	case s.Direction != SortNone && s.Column == "":
		errs = append(errs, &InvalidSortStateError{State: s, Reason: "direction set without a column"})
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Activate returns the state after the header of column key is activated.
//
// Repeated activation of one column cycles ascending, descending, unsorted.
// Activating a different column starts it at ascending. Activating a column
// that is not sortable leaves the state unchanged.
func (s SortState) Activate(key string, sortable bool) SortState {
	if !sortable || key == "" {
		return s
	}
	if s.Column != key {
		return SortState{Column: key, Direction: SortAscending}
	}
	switch s.Direction {
	case SortAscending:
		return SortState{Column: key, Direction: SortDescending}
	case SortDescending:
		return SortState{}
	default:
		return SortState{Column: key, Direction: SortAscending}
	}
}

// DirectionFor returns the direction column key is sorted in, SortNone when
// it is not the active column.
func (s SortState) DirectionFor(key string) SortDirection {
	if key == "" || s.Column != key {
		return SortNone
	}
	return s.Direction
}

// AriaSort returns the accessibility sort value for the header of column key:
// "ascending", "descending" or "none".
func (s SortState) AriaSort(key string) string {
	switch s.DirectionFor(key) {
	case SortAscending:
		return ariaAscending
	case SortDescending:
		return ariaDescending
	default:
		return ariaNone
	}
}

// String renders the state as "key:asc", "key:desc" or "none".
func (s SortState) String() string {
	if !s.IsSorted() {
		return SortNone.String()
	}
	return s.Column + ":" + s.Direction.String()
}

// Error implements the error interface for InvalidSortStateError.
func (e *InvalidSortStateError) Error() string {
	return fmt.Sprintf("invalid sort state (column %q, direction %s): %s", e.State.Column, e.State.Direction, e.Reason)
}

// Unwrap returns ErrInvalidSortState for errors.Is() compatibility.
func (e *InvalidSortStateError) Unwrap() error { return ErrInvalidSortState }
