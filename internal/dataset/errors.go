// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned when a format name or file extension is not recognized.
	ErrUnknownFormat = errors.New("unknown dataset format")
	// ErrUnknownColumn is returned when a column key does not name a field of the dataset.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotTabular is returned when a document does not hold a list of objects.
	ErrNotTabular = errors.New("document is not a list of rows")
	// ErrEmptyQuery is returned when a SQLite source is given without a query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrInvalidSortSpec is returned when a sort spec is not key[:asc|desc].
	ErrInvalidSortSpec = errors.New("invalid sort spec")
)

type (
	// UnknownFormatError names the unrecognized format.
	UnknownFormatError struct {
		Value string
	}

	// UnknownColumnError names the unknown key and, when one is close enough,
	// the field that was probably meant.
	UnknownColumnError struct {
		Key        string
		Suggestion string
		Available  []string
	}
)

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown dataset format %q (valid: %v)", e.Value, Formats())
}

func (e *UnknownFormatError) Unwrap() error { return ErrUnknownFormat }

func (e *UnknownColumnError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown column %q, did you mean %q?", e.Key, e.Suggestion)
	}
	return fmt.Sprintf("unknown column %q", e.Key)
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }
