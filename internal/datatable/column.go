// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Column describes how one field of a row is labelled, extracted and displayed.
// Columns are treated as immutable once handed to a Table.
type Column[T any] struct {
	// Key identifies the column. It must be unique within a column set.
	Key string
	// Title is the header text.
	Title string
	// Value extracts the column's value from a row. Values of one column
	// should share a type; see Comparer for how mixed types are ordered.
	Value func(row T) any
	// Sortable enables header activation for this column.
	Sortable bool
	// Render formats a cell. When nil, Cell falls back to FormatValue.
	Render func(value any, row T, index int) string
	// Width is the preferred display width (0 for auto).
	Width int
}

// Cell returns the display text of the column for row. index is the row's
// position in the rendered sequence.
func (c Column[T]) Cell(row T, index int) string {
	var v any
	if c.Value != nil {
		v = c.Value(row)
	}
	if c.Render != nil {
		return c.Render(v, row, index)
	}
	return FormatValue(v)
}

// FieldColumn returns a sortable column reading field key of a Record.
func FieldColumn(key, title string) Column[Record] {
	if title == "" {
		title = key
	}
	return Column[Record]{
		Key:      key,
		Title:    title,
		Value:    func(r Record) any { return r[key] },
		Sortable: true,
	}
}

// FindColumn returns the column with the given key.
func FindColumn[T any](columns []Column[T], key string) (Column[T], bool) {
	for _, c := range columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// ColumnKeys returns the keys of columns in order.
func ColumnKeys[T any](columns []Column[T]) []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	return keys
}

// ValidateColumns checks that keys are present and unique and that every
// sortable column has a value accessor.
func ValidateColumns[T any](columns []Column[T]) error {
	seen := make(map[string]struct{}, len(columns))
	for i, c := range columns {
		if c.Key == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = struct{}{}
		if c.Sortable && c.Value == nil {
			return fmt.Errorf("column %q: %w", c.Key, ErrNoValueFunc)
		}
	}
	return nil
}

// FormatValue renders a cell value for display. Absent values render empty.
func FormatValue(v any) string {
	v = normalizeValue(v)
	if isAbsent(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
