// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Columns builds sortable column descriptors for fields. When order is
// non-empty it selects and orders the columns, and every key in it must be
// one of fields.
func Columns(fields, order []string) ([]datatable.Column[datatable.Record], error) {
	keys := fields
	if len(order) > 0 {
		keys = make([]string, 0, len(order))
		for _, key := range order {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if err := RequireField(fields, key); err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
	}

	columns := make([]datatable.Column[datatable.Record], len(keys))
	for i, key := range keys {
		columns[i] = datatable.FieldColumn(key, Title(key))
	}
	if err := datatable.ValidateColumns(columns); err != nil {
		return nil, err
	}
	return columns, nil
}

// RequireField returns an *UnknownColumnError when key is not in fields.
func RequireField(fields []string, key string) error {
	for _, f := range fields {
		if f == key {
			return nil
		}
	}
	return &UnknownColumnError{Key: key, Suggestion: Suggest(key, fields), Available: fields}
}

// Title turns a field key into a header: "created_at" becomes "Created At"
// and "lastLogin" becomes "Last Login".
func Title(key string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case i > 0 && isUpper(r) && !isUpper(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()
	if len(words) == 0 {
		return key
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// Suggest returns the candidate closest to key by edit distance, or "" when
// none is close enough to be a plausible typo.
func Suggest(key string, candidates []string) string {
	best, bestDist := "", -1
	lower := strings.ToLower(key)
	for _, c := range candidates {
		if strings.ToLower(c) == lower {
			return c
		}
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len([]rune(key))/3) {
		return ""
	}
	return best
}

// ParseSortSpec parses key[:asc|desc] against fields. An empty spec means
// unsorted, and a key without a direction sorts ascending.
func ParseSortSpec(spec string, fields []string) (datatable.SortState, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return datatable.SortState{}, nil
	}
	key, dir, hasDir := strings.Cut(spec, ":")
	key = strings.TrimSpace(key)
	if key == "" {
		return datatable.SortState{}, fmt.Errorf("%w: %q", ErrInvalidSortSpec, spec)
	}
	if err := RequireField(fields, key); err != nil {
		return datatable.SortState{}, err
	}

	direction := datatable.SortAscending
	if hasDir {
		d, err := datatable.ParseSortDirection(strings.ToLower(strings.TrimSpace(dir)))
		if err != nil {
			return datatable.SortState{}, fmt.Errorf("%w: %w", ErrInvalidSortSpec, err)
		}
		direction = d
	}
	if direction == datatable.SortNone {
		return datatable.SortState{}, nil
	}
	return datatable.SortState{Column: key, Direction: direction}, nil
}

// ParseKeys parses a comma-separated list of row identities, inferring
// each one's type the way delimited cells are inferred.
func ParseKeys(list string) []any {
	var keys []any
	for _, part := range strings.Split(list, ",") {
		if v := InferValue(part); v != nil {
			keys = append(keys, v)
		}
	}
	return keys
}
