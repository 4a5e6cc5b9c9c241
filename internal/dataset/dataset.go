// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"slices"

	"github.com/gridkit/gridkit/internal/datatable"
)

// Dataset is a loaded collection of records.
type Dataset struct {
	// Source is the path or description the records were read from.
	Source string
	// Format is the encoding the records were decoded from.
	Format Format
	// Fields lists every field seen, in first-seen order.
	Fields []string
	// Records holds the rows in source order.
	Records []datatable.Record
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// HasField returns whether any record carries field name.
func (d *Dataset) HasField(name string) bool {
	return slices.Contains(d.Fields, name)
}

// fieldSet accumulates field names in first-seen order.
type fieldSet struct {
	order []string
	seen  map[string]struct{}
}

func newFieldSet() *fieldSet {
	return &fieldSet{seen: make(map[string]struct{})}
}

func (s *fieldSet) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

// Fields returns the fields of records in first-seen order. Within a record
// fields are visited in sorted order because maps carry no order, with
// datatable.DefaultKeyField first.
func Fields(records []datatable.Record) []string {
	set := newFieldSet()
	for _, r := range records {
		for _, k := range sortedKeys(r) {
			set.add(k)
		}
	}
	return set.order
}

func sortedKeys(r datatable.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == datatable.DefaultKeyField:
			return -1
		case b == datatable.DefaultKeyField:
			return 1
		case a < b:
			return -1
		default:
			return 1
		}
	})
	return keys
}
