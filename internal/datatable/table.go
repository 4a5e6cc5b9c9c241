// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultEmptyMessage is shown when a table has no rows.
const DefaultEmptyMessage = "No data available"

type (
	// Entry is a row together with its position in the supplied collection
	// and its identity.
	Entry[T any, K comparable] struct {
		Row   T
		Index int
		ID    K
	}

	// TableOptions configures a Table.
	TableOptions[T any, K comparable] struct {
		// Rows is the initial row collection.
		Rows []T
		// Columns is the initial column set.
		Columns []Column[T]
		// Key derives row identities. Required.
		Key KeyFunc[T, K]
		// Comparer orders column values (nil collates with DefaultLanguage).
		Comparer *Comparer
		// Sort is the initial sort state.
		Sort SortState
		// Loading starts the table in the loading state.
		Loading bool
		// EmptyMessage is shown when there are no rows.
		EmptyMessage string
	}

	// Table owns the sort state and selection of one table widget.
	//
	// Rows and columns may be replaced at any time; the table treats the
	// latest ones as the source of truth. The sorted view is cached until
	// rows, columns or the sort state change. Subscribers registered with
	// Subscribe run synchronously after every mutation.
	Table[T any, K comparable] struct {
		columns      []Column[T]
		key          KeyFunc[T, K]
		cmp          *Comparer
		sort         SortState
		loading      bool
		emptyMessage string

		entries   []Entry[T, K]
		sorted    []Entry[T, K]
		selection *Selection[Entry[T, K], K]

		subscribers []subscriber
		nextSubID   int
	}

	subscriber struct {
		id int
		fn func()
	}
)

// NewTable creates a Table from opts.
func NewTable[T any, K comparable](opts TableOptions[T, K]) (*Table[T, K], error) {
	if opts.Key == nil {
		return nil, ErrNoKeyFunc
	}
	if err := ValidateColumns(opts.Columns); err != nil {
		return nil, err
	}
	if ok, errs := opts.Sort.IsValid(); !ok {
		return nil, errors.Join(errs...)
	}
	cmp := opts.Comparer
	if cmp == nil {
		cmp = NewComparer(DefaultLanguage)
	}
	msg := opts.EmptyMessage
	if msg == "" {
		msg = DefaultEmptyMessage
	}

	t := &Table[T, K]{
		columns:      slices.Clone(opts.Columns),
		key:          opts.Key,
		cmp:          cmp,
		sort:         opts.Sort,
		loading:      opts.Loading,
		emptyMessage: msg,
		selection: NewSelection[Entry[T, K], K](func(e Entry[T, K], _ int) K {
			return e.ID
		}),
	}
	t.setRows(opts.Rows)
	return t, nil
}

// Subscribe registers fn to run after every mutation of the table. The
// returned function unregisters it.
func (t *Table[T, K]) Subscribe(fn func()) (unsubscribe func()) {
	t.nextSubID++
	id := t.nextSubID
	t.subscribers = append(t.subscribers, subscriber{id: id, fn: fn})
	return func() {
		t.subscribers = slices.DeleteFunc(t.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

// OnSelect registers fn to receive the selected records, in display order,
// after every selection mutation.
func (t *Table[T, K]) OnSelect(fn func(selected []T)) (unsubscribe func()) {
	return t.selection.OnChange(func(selected []Entry[T, K]) {
		fn(rowsOf(selected))
	})
}

// SetRows replaces the row collection. Selected identities still carried by
// a row stay selected; the others are dropped, notifying OnSelect handlers.
func (t *Table[T, K]) SetRows(rows []T) {
	t.setRows(rows)
	t.selection.Retain(t.Entries())
	t.changed()
}

// SetColumns replaces the column set. The sort state is kept; if it names a
// column that no longer sorts, rows are shown in their original order.
func (t *Table[T, K]) SetColumns(columns []Column[T]) error {
	if err := ValidateColumns(columns); err != nil {
		return err
	}
	t.columns = slices.Clone(columns)
	t.sorted = nil
	t.changed()
	return nil
}

// SetLoading switches the loading placeholder on or off.
func (t *Table[T, K]) SetLoading(loading bool) {
	if t.loading == loading {
		return
	}
	t.loading = loading
	t.changed()
}

// SetEmptyMessage sets the text shown when there are no rows.
func (t *Table[T, K]) SetEmptyMessage(msg string) {
	if msg == "" {
		msg = DefaultEmptyMessage
	}
	t.emptyMessage = msg
	t.changed()
}

// Loading reports whether the table shows its loading placeholder.
func (t *Table[T, K]) Loading() bool { return t.loading }

// EmptyMessage returns the text shown when there are no rows.
func (t *Table[T, K]) EmptyMessage() string { return t.emptyMessage }

// Columns returns the column set.
func (t *Table[T, K]) Columns() []Column[T] { return t.columns }

// Len returns the number of rows.
func (t *Table[T, K]) Len() int { return len(t.entries) }

// Sort returns the current sort state.
func (t *Table[T, K]) Sort() SortState { return t.sort }

// SetSort replaces the sort state.
func (t *Table[T, K]) SetSort(state SortState) error {
	if ok, errs := state.IsValid(); !ok {
		return errors.Join(errs...)
	}
	if state.IsSorted() {
		if _, found := FindColumn(t.columns, state.Column); !found {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, state.Column)
		}
	}
	t.sort = state
	t.sorted = nil
	t.changed()
	return nil
}

// ActivateColumn applies a header activation to column key. Activating a
// column that is not sortable changes nothing.
func (t *Table[T, K]) ActivateColumn(key string) error {
	col, ok := FindColumn(t.columns, key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, key)
	}
	next := t.sort.Activate(col.Key, col.Sortable && col.Value != nil)
	if next == t.sort {
		return nil
	}
	t.sort = next
	t.sorted = nil
	t.changed()
	return nil
}

// Entries returns the rows in display order with their original index and
// identity.
func (t *Table[T, K]) Entries() []Entry[T, K] {
	if t.sorted == nil {
		t.sorted = t.derive()
	}
	return t.sorted
}

// Rows returns the rows in display order.
func (t *Table[T, K]) Rows() []T {
	return rowsOf(t.Entries())
}

// ToggleRow selects or deselects the row with identity id. Selecting an
// identity that no row carries is a no-op.
func (t *Table[T, K]) ToggleRow(id K, included bool) {
	if included && !t.HasRow(id) {
		return
	}
	t.selection.Toggle(t.Entries(), id, included)
	t.changed()
}

// HasRow reports whether some row has identity id.
func (t *Table[T, K]) HasRow(id K) bool {
	return slices.ContainsFunc(t.entries, func(e Entry[T, K]) bool { return e.ID == id })
}

// SelectAll selects every row.
func (t *Table[T, K]) SelectAll() {
	t.selection.SelectAll(t.Entries())
	t.changed()
}

// ClearAll deselects every row.
func (t *Table[T, K]) ClearAll() {
	t.selection.ClearAll(t.Entries())
	t.changed()
}

// ToggleAll acts as the select-all checkbox: it clears the selection when
// every row is selected and selects every row otherwise.
func (t *Table[T, K]) ToggleAll() {
	if t.AllSelected() {
		t.ClearAll()
		return
	}
	t.SelectAll()
}

// IsSelected reports whether the row with identity id is selected.
func (t *Table[T, K]) IsSelected(id K) bool {
	return t.selection.Has(id)
}

// Selected returns the selected rows in display order.
func (t *Table[T, K]) Selected() []T {
	return rowsOf(t.selection.Records(t.Entries()))
}

// SelectedCount returns the number of selected identities.
func (t *Table[T, K]) SelectedCount() int {
	return t.selection.Len()
}

// AllSelected reports whether every row is selected.
func (t *Table[T, K]) AllSelected() bool {
	return t.selection.AllSelected(t.entries)
}

// SomeSelected reports whether some, but not all, rows are selected.
func (t *Table[T, K]) SomeSelected() bool {
	return t.selection.SomeSelected(t.entries)
}

func (t *Table[T, K]) setRows(rows []T) {
	entries := make([]Entry[T, K], len(rows))
	for i, row := range rows {
		entries[i] = Entry[T, K]{Row: row, Index: i, ID: t.key(row, i)}
	}
	t.entries = entries
	t.sorted = nil
}

func (t *Table[T, K]) derive() []Entry[T, K] {
	order := Order(t.entries, entryColumns[T, K](t.columns), t.sort, t.cmp)
	out := make([]Entry[T, K], len(order))
	for i, idx := range order {
		out[i] = t.entries[idx]
	}
	return out
}

func (t *Table[T, K]) changed() {
	for _, s := range slices.Clone(t.subscribers) {
		s.fn()
	}
}

// entryColumns lifts row columns to entry columns for sorting.
func entryColumns[T any, K comparable](columns []Column[T]) []Column[Entry[T, K]] {
	out := make([]Column[Entry[T, K]], len(columns))
	for i, c := range columns {
		out[i] = Column[Entry[T, K]]{Key: c.Key, Title: c.Title, Sortable: c.Sortable, Width: c.Width}
		if value := c.Value; value != nil {
			out[i].Value = func(e Entry[T, K]) any { return value(e.Row) }
		}
	}
	return out
}

func rowsOf[T any, K comparable](entries []Entry[T, K]) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.Row
	}
	return out
}
