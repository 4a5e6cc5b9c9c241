// SPDX-License-Identifier: MPL-2.0

// Package datatable implements the state behind a sortable, selectable table:
// the sort engine that orders rows by a column, the header activation cycle,
// and the selection tracker that keeps the set of selected row identities.
//
// Everything here is pure state derivation. Nothing renders, logs or blocks,
// and no type is safe for concurrent mutation: a Table belongs to one widget
// instance and is mutated from the goroutine that handles its input events.
package datatable
