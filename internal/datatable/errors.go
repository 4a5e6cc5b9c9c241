// SPDX-License-Identifier: MPL-2.0

package datatable

import "errors"

var (
	// ErrColumnNotFound is returned when a column key does not match any column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDuplicateColumn is returned when two columns share the same key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrEmptyColumnKey is returned when a column has no key.
	ErrEmptyColumnKey = errors.New("column key is empty")

	// ErrNoValueFunc is returned when a sortable column has no value accessor.
	ErrNoValueFunc = errors.New("sortable column has no value accessor")

	// ErrNoKeyFunc is returned when a table is created without a row key function.
	ErrNoKeyFunc = errors.New("row key function is nil")
)
