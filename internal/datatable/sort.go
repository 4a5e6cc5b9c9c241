// SPDX-License-Identifier: MPL-2.0

package datatable

import "slices"

// Order returns the permutation of row indices that sorts rows under state.
//
// When the state is unsorted, or names no sortable column, the identity
// permutation is returned. The sort is stable: rows with equal values keep
// their original relative order in both directions. A nil Comparer collates
// with DefaultLanguage.
func Order[T any](rows []T, columns []Column[T], state SortState, cmp *Comparer) []int {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}

	col, ok := activeColumn(columns, state)
	if !ok || len(rows) < 2 {
		return idx
	}
	if cmp == nil {
		cmp = NewComparer(DefaultLanguage)
	}

	// Extract once; accessors may be arbitrarily expensive.
	values := make([]any, len(rows))
	for i, row := range rows {
		values[i] = col.Value(row)
	}

	slices.SortStableFunc(idx, func(i, j int) int {
		return cmp.CompareDirected(values[i], values[j], state.Direction)
	})
	return idx
}

// DeriveOrder returns rows ordered under state. The input slice is never
// modified; an unsorted state yields a copy in the original order.
func DeriveOrder[T any](rows []T, columns []Column[T], state SortState, cmp *Comparer) []T {
	order := Order(rows, columns, state, cmp)
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = rows[idx]
	}
	return out
}

func activeColumn[T any](columns []Column[T], state SortState) (Column[T], bool) {
	if !state.IsSorted() {
		return Column[T]{}, false
	}
	col, ok := FindColumn(columns, state.Column)
	if !ok || !col.Sortable || col.Value == nil {
		return Column[T]{}, false
	}
	return col, true
}
