// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"maps"
	"slices"
)

type (
	// Selection tracks the identities of selected rows.
	//
	// Every mutation (Toggle, SelectAll, ClearAll) calls each registered
	// change handler once, synchronously, with the selected records of the
	// rows passed to the mutation. There is no batching.
	Selection[T any, K comparable] struct {
		key      KeyFunc[T, K]
		members  map[K]struct{}
		handlers []changeHandler[T]
		nextID   int
	}

	changeHandler[T any] struct {
		id int
		fn func(selected []T)
	}
)

// NewSelection creates an empty selection identifying rows with key.
func NewSelection[T any, K comparable](key KeyFunc[T, K]) *Selection[T, K] {
	return &Selection[T, K]{
		key:     key,
		members: make(map[K]struct{}),
	}
}

// OnChange registers fn to be called after every mutation. The returned
// function unregisters it.
func (s *Selection[T, K]) OnChange(fn func(selected []T)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, changeHandler[T]{id: id, fn: fn})
	return func() {
		s.handlers = slices.DeleteFunc(s.handlers, func(h changeHandler[T]) bool { return h.id == id })
	}
}

// Toggle adds id to the selection when included is true and removes it
// otherwise. Repeating a toggle does not change the set but still notifies.
func (s *Selection[T, K]) Toggle(rows []T, id K, included bool) {
	if included {
		s.members[id] = struct{}{}
	} else {
		delete(s.members, id)
	}
	s.notify(rows)
}

// Retain drops the identities that no row in rows carries. Handlers are
// notified only when the set shrinks; the result reports whether it did.
func (s *Selection[T, K]) Retain(rows []T) bool {
	present := make(map[K]struct{}, len(rows))
	for i, row := range rows {
		present[s.key(row, i)] = struct{}{}
	}
	before := len(s.members)
	maps.DeleteFunc(s.members, func(id K, _ struct{}) bool {
		_, ok := present[id]
		return !ok
	})
	if len(s.members) == before {
		return false
	}
	s.notify(rows)
	return true
}

// SelectAll replaces the selection with the identities of all rows.
func (s *Selection[T, K]) SelectAll(rows []T) {
	members := make(map[K]struct{}, len(rows))
	for i, row := range rows {
		members[s.key(row, i)] = struct{}{}
	}
	s.members = members
	s.notify(rows)
}

// ClearAll empties the selection.
func (s *Selection[T, K]) ClearAll(rows []T) {
	clear(s.members)
	s.notify(rows)
}

// Has reports whether id is selected.
func (s *Selection[T, K]) Has(id K) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of selected identities.
func (s *Selection[T, K]) Len() int {
	return len(s.members)
}

// IDs returns the selected identities in no particular order.
func (s *Selection[T, K]) IDs() []K {
	ids := make([]K, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	return ids
}

// Records returns the rows whose identity is selected, in the order of rows.
func (s *Selection[T, K]) Records(rows []T) []T {
	out := make([]T, 0, min(len(s.members), len(rows)))
	for i, row := range rows {
		if s.Has(s.key(row, i)) {
			out = append(out, row)
		}
	}
	return out
}

// AllSelected reports whether the selection covers rows: as many identities
// as rows, and at least one row.
func (s *Selection[T, K]) AllSelected(rows []T) bool {
	return len(rows) > 0 && len(s.members) == len(rows)
}

// SomeSelected reports the indeterminate state: some, but not all, rows.
func (s *Selection[T, K]) SomeSelected(rows []T) bool {
	return len(s.members) > 0 && len(s.members) < len(rows)
}

func (s *Selection[T, K]) notify(rows []T) {
	if len(s.handlers) == 0 {
		return
	}
	selected := s.Records(rows)
	// Handlers may unsubscribe while being notified.
	for _, h := range slices.Clone(s.handlers) {
		h.fn(selected)
	}
}
