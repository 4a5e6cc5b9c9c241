// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"errors"
	"slices"
	"testing"
)

func newUserTable(t *testing.T) *Table[user, int] {
	t.Helper()
	tbl, err := NewTable(TableOptions[user, int]{
		Rows:    testUsers(),
		Columns: userColumns(),
		Key:     userKey(),
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return tbl
}

func TestTable_HeaderActivationCycle(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)

	steps := []struct {
		want      []string
		direction SortDirection
	}{
		{[]string{"Bob Johnson", "Jane Smith", "John Doe"}, SortAscending},
		{[]string{"John Doe", "Jane Smith", "Bob Johnson"}, SortDescending},
		{[]string{"John Doe", "Jane Smith", "Bob Johnson"}, SortNone},
	}
	for i, step := range steps {
		if err := tbl.ActivateColumn("name"); err != nil {
			t.Fatalf("activation %d: ActivateColumn() error = %v", i+1, err)
		}
		if got := names(tbl.Rows()); !slices.Equal(got, step.want) {
			t.Errorf("activation %d: rows = %v, want %v", i+1, got, step.want)
		}
		if got := tbl.Sort().DirectionFor("name"); got != step.direction {
			t.Errorf("activation %d: direction = %v, want %v", i+1, got, step.direction)
		}
	}
}

func TestTable_ActivateOtherColumnResetsToAscending(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	_ = tbl.ActivateColumn("name")
	_ = tbl.ActivateColumn("name")
	if err := tbl.ActivateColumn("age"); err != nil {
		t.Fatalf("ActivateColumn(age) error = %v", err)
	}

	want := SortState{Column: "age", Direction: SortAscending}
	if got := tbl.Sort(); got != want {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
	if got := names(tbl.Rows()); !slices.Equal(got, []string{"Jane Smith", "John Doe", "Bob Johnson"}) {
		t.Errorf("rows = %v", got)
	}
}

func TestTable_ActivateNonSortableColumn(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	notified := 0
	tbl.Subscribe(func() { notified++ })

	if err := tbl.ActivateColumn("status"); err != nil {
		t.Fatalf("ActivateColumn(status) error = %v", err)
	}
	if tbl.Sort().IsSorted() {
		t.Errorf("Sort() = %v, want unsorted", tbl.Sort())
	}
	if notified != 0 {
		t.Errorf("subscribers notified %d times, want 0", notified)
	}
}

func TestTable_ActivateUnknownColumn(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	err := tbl.ActivateColumn("missing")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("ActivateColumn(missing) error = %v, want ErrColumnNotFound", err)
	}
}

func TestTable_SelectionScenario(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	var notifications [][]int
	tbl.OnSelect(func(selected []user) {
		notifications = append(notifications, ids(selected))
	})

	tbl.ToggleRow(1, true)
	tbl.ToggleAll()
	tbl.ToggleAll()

	want := [][]int{{1}, {1, 2, 3}, {}}
	if len(notifications) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(notifications), len(want))
	}
	for i := range want {
		if !slices.Equal(notifications[i], want[i]) {
			t.Errorf("notification %d = %v, want %v", i+1, notifications[i], want[i])
		}
	}
}

func TestTable_SelectionFollowsDisplayOrder(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	_ = tbl.ActivateColumn("name")

	var last []user
	tbl.OnSelect(func(selected []user) { last = selected })
	tbl.SelectAll()

	if got := ids(last); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("notified ids = %v, want display order [3 2 1]", got)
	}
	if got := ids(tbl.Selected()); !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("Selected() ids = %v, want [3 2 1]", got)
	}
}

func TestTable_SelectionSurvivesSorting(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	tbl.ToggleRow(2, true)
	_ = tbl.ActivateColumn("age")
	_ = tbl.ActivateColumn("age")

	if !tbl.IsSelected(2) {
		t.Error("IsSelected(2) = false after sorting")
	}
	if tbl.SelectedCount() != 1 {
		t.Errorf("SelectedCount() = %d, want 1", tbl.SelectedCount())
	}
	if !tbl.SomeSelected() || tbl.AllSelected() {
		t.Errorf("some=%v all=%v, want indeterminate", tbl.SomeSelected(), tbl.AllSelected())
	}
}

func TestTable_PositionalIdentityIgnoresSortOrder(t *testing.T) {
	t.Parallel()

	rows := []Record{
		{"name": "Charlie"},
		{"name": "Alice"},
		{"name": "Bob"},
	}
	tbl, err := NewTable(TableOptions[Record, any]{
		Rows:    rows,
		Columns: []Column[Record]{FieldColumn("name", "Name")},
		Key:     KeyByField(""),
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	_ = tbl.ActivateColumn("name")

	// Index 0 is Charlie in the supplied order, last once sorted.
	tbl.ToggleRow(int64(0), true)
	selected := tbl.Selected()
	if len(selected) != 1 || selected[0]["name"] != "Charlie" {
		t.Errorf("Selected() = %v, want [Charlie]", selected)
	}
	entries := tbl.Entries()
	if last := entries[len(entries)-1]; last.Index != 0 || last.ID != int64(0) {
		t.Errorf("last entry = %+v, want index 0", last)
	}
}

func TestTable_ToggleUnknownIdentity(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	notified := 0
	tbl.OnSelect(func([]user) { notified++ })

	tbl.ToggleRow(99, true)
	if tbl.SelectedCount() != 0 || tbl.SomeSelected() {
		t.Errorf("SelectedCount()=%d SomeSelected()=%v after selecting a missing row", tbl.SelectedCount(), tbl.SomeSelected())
	}
	if notified != 0 {
		t.Errorf("notified %d times, want 0", notified)
	}
	if tbl.HasRow(99) || !tbl.HasRow(2) {
		t.Errorf("HasRow(99)=%v HasRow(2)=%v", tbl.HasRow(99), tbl.HasRow(2))
	}
}

func TestTable_SetRowsDropsVanishedSelection(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	tbl.SelectAll()
	var last []user
	tbl.OnSelect(func(selected []user) { last = selected })

	tbl.SetRows(testUsers()[:2])
	if !tbl.AllSelected() || tbl.SomeSelected() {
		t.Errorf("all=%v some=%v, want all selected", tbl.AllSelected(), tbl.SomeSelected())
	}
	if got := ids(last); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("notification = %v, want [1 2]", got)
	}

	tbl.SetRows([]user{{ID: 7, Name: "New"}})
	if tbl.SelectedCount() != 0 || tbl.AllSelected() || tbl.SomeSelected() {
		t.Errorf("stale identities kept: count=%d all=%v some=%v", tbl.SelectedCount(), tbl.AllSelected(), tbl.SomeSelected())
	}
}

func TestTable_EmptyAndLoading(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable(TableOptions[user, int]{
		Columns: userColumns(),
		Key:     userKey(),
		Loading: true,
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if !tbl.Loading() {
		t.Error("Loading() = false, want true")
	}
	if got := tbl.EmptyMessage(); got != DefaultEmptyMessage {
		t.Errorf("EmptyMessage() = %q, want %q", got, DefaultEmptyMessage)
	}

	tbl.ToggleAll()
	if tbl.AllSelected() || tbl.SomeSelected() {
		t.Error("an empty table must be neither all nor some selected")
	}

	tbl.SetEmptyMessage("Nothing here")
	tbl.SetLoading(false)
	if tbl.Loading() || tbl.EmptyMessage() != "Nothing here" {
		t.Errorf("Loading()=%v EmptyMessage()=%q", tbl.Loading(), tbl.EmptyMessage())
	}
}

func TestTable_SetRowsResorts(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	_ = tbl.ActivateColumn("name")
	_ = tbl.Rows()

	rows := append(testUsers(), user{ID: 4, Name: "Alice Brown", Age: 40})
	tbl.SetRows(rows)

	want := []string{"Alice Brown", "Bob Johnson", "Jane Smith", "John Doe"}
	if got := names(tbl.Rows()); !slices.Equal(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}
	if tbl.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tbl.Len())
	}
}

func TestTable_SetColumnsDropsSortColumn(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	_ = tbl.ActivateColumn("name")

	cols := slices.DeleteFunc(userColumns(), func(c Column[user]) bool { return c.Key == "name" })
	if err := tbl.SetColumns(cols); err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}
	if got := names(tbl.Rows()); !slices.Equal(got, names(testUsers())) {
		t.Errorf("rows = %v, want original order", got)
	}
}

func TestTable_SetSort(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)

	if err := tbl.SetSort(SortState{Column: "missing", Direction: SortAscending}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("SetSort(missing) error = %v, want ErrColumnNotFound", err)
	}
	if err := tbl.SetSort(SortState{Column: "age", Direction: SortDirection(9)}); !errors.Is(err, ErrInvalidSortDirection) {
		t.Errorf("SetSort(bad direction) error = %v, want ErrInvalidSortDirection", err)
	}
	if err := tbl.SetSort(SortState{Column: "email", Direction: SortDescending}); err != nil {
		t.Fatalf("SetSort(email desc) error = %v", err)
	}
	if got := ids(tbl.Rows()); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("rows = %v, want [1 2 3]", got)
	}
}

func TestTable_SubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	tbl := newUserTable(t)
	calls := 0
	unsubscribe := tbl.Subscribe(func() { calls++ })

	_ = tbl.ActivateColumn("name")
	tbl.ToggleRow(1, true)
	tbl.SetLoading(true)
	tbl.SetLoading(true)
	unsubscribe()
	tbl.SetLoading(false)

	if calls != 3 {
		t.Errorf("subscriber called %d times, want 3", calls)
	}
}

func TestNewTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts TableOptions[user, int]
		want error
	}{
		{"missing key", TableOptions[user, int]{Columns: userColumns()}, ErrNoKeyFunc},
		{"duplicate column", TableOptions[user, int]{
			Key:     userKey(),
			Columns: append(userColumns(), Column[user]{Key: "name"}),
		}, ErrDuplicateColumn},
		{"empty column key", TableOptions[user, int]{
			Key:     userKey(),
			Columns: []Column[user]{{Title: "Untitled"}},
		}, ErrEmptyColumnKey},
		{"sortable without value", TableOptions[user, int]{
			Key:     userKey(),
			Columns: []Column[user]{{Key: "x", Sortable: true}},
		}, ErrNoValueFunc},
		{"invalid sort", TableOptions[user, int]{
			Key:     userKey(),
			Columns: userColumns(),
			Sort:    SortState{Direction: SortAscending},
		}, ErrInvalidSortState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTable(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}
