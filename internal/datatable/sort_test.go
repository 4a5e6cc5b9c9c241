// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"slices"
	"testing"
)

type user struct {
	ID     int
	Name   string
	Email  string
	Age    int
	Status string
	Team   *string
}

func strPtr(s string) *string { return &s }

func testUsers() []user {
	return []user{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 30, Status: "active"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Age: 25, Status: "inactive"},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com", Age: 35, Status: "active"},
	}
}

func userColumns() []Column[user] {
	return []Column[user]{
		{Key: "name", Title: "Name", Value: func(u user) any { return u.Name }, Sortable: true},
		{Key: "email", Title: "Email", Value: func(u user) any { return u.Email }, Sortable: true},
		{Key: "age", Title: "Age", Value: func(u user) any { return u.Age }, Sortable: true},
		{Key: "status", Title: "Status", Value: func(u user) any { return u.Status }},
		{Key: "team", Title: "Team", Value: func(u user) any { return u.Team }, Sortable: true},
	}
}

func names(users []user) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func ids(users []user) []int {
	out := make([]int, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestDeriveOrder_ByName(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	cols := userColumns()

	tests := []struct {
		name  string
		state SortState
		want  []string
	}{
		{"unsorted", SortState{}, []string{"John Doe", "Jane Smith", "Bob Johnson"}},
		{"ascending", SortState{Column: "name", Direction: SortAscending}, []string{"Bob Johnson", "Jane Smith", "John Doe"}},
		{"descending", SortState{Column: "name", Direction: SortDescending}, []string{"John Doe", "Jane Smith", "Bob Johnson"}},
		{"by age ascending", SortState{Column: "age", Direction: SortAscending}, []string{"Jane Smith", "John Doe", "Bob Johnson"}},
		{"unknown column passes through", SortState{Column: "missing", Direction: SortAscending}, []string{"John Doe", "Jane Smith", "Bob Johnson"}},
		{"non-sortable column passes through", SortState{Column: "status", Direction: SortAscending}, []string{"John Doe", "Jane Smith", "Bob Johnson"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := names(DeriveOrder(rows, cols, tt.state, nil))
			if !slices.Equal(got, tt.want) {
				t.Errorf("DeriveOrder(%v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestDeriveOrder_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	before := ids(rows)
	_ = DeriveOrder(rows, userColumns(), SortState{Column: "name", Direction: SortAscending}, nil)
	if !slices.Equal(ids(rows), before) {
		t.Errorf("input reordered to %v, want %v", ids(rows), before)
	}

	out := DeriveOrder(rows, userColumns(), SortState{}, nil)
	out[0].Name = "changed"
	if rows[0].Name == "changed" {
		t.Error("unsorted result aliases the input slice")
	}
}

func TestDeriveOrder_Stable(t *testing.T) {
	t.Parallel()

	rows := []user{
		{ID: 1, Status: "active"},
		{ID: 2, Status: "inactive"},
		{ID: 3, Status: "active"},
		{ID: 4, Status: "inactive"},
		{ID: 5, Status: "active"},
	}
	cols := []Column[user]{{Key: "status", Value: func(u user) any { return u.Status }, Sortable: true}}

	asc := ids(DeriveOrder(rows, cols, SortState{Column: "status", Direction: SortAscending}, nil))
	if want := []int{1, 3, 5, 2, 4}; !slices.Equal(asc, want) {
		t.Errorf("ascending = %v, want %v", asc, want)
	}

	desc := ids(DeriveOrder(rows, cols, SortState{Column: "status", Direction: SortDescending}, nil))
	if want := []int{2, 4, 1, 3, 5}; !slices.Equal(desc, want) {
		t.Errorf("descending = %v, want %v", desc, want)
	}
}

func TestDeriveOrder_AbsentValuesFirstInBothDirections(t *testing.T) {
	t.Parallel()

	rows := []user{
		{ID: 1, Team: strPtr("blue")},
		{ID: 2},
		{ID: 3, Team: strPtr("red")},
		{ID: 4},
	}
	cols := userColumns()

	asc := ids(DeriveOrder(rows, cols, SortState{Column: "team", Direction: SortAscending}, nil))
	if want := []int{2, 4, 1, 3}; !slices.Equal(asc, want) {
		t.Errorf("ascending = %v, want %v", asc, want)
	}

	// The present values flip; the absent ones stay in front.
	desc := ids(DeriveOrder(rows, cols, SortState{Column: "team", Direction: SortDescending}, nil))
	if want := []int{2, 4, 3, 1}; !slices.Equal(desc, want) {
		t.Errorf("descending = %v, want %v", desc, want)
	}
}

func TestDeriveOrder_Records(t *testing.T) {
	t.Parallel()

	rows := []Record{
		{"id": 1, "name": "John", "email": "john@example.com"},
		{"id": 2, "name": "", "email": "jane@example.com"},
		{"id": 3, "name": "Bob"},
	}
	cols := []Column[Record]{FieldColumn("name", "Name"), FieldColumn("email", "Email")}

	byEmail := DeriveOrder(rows, cols, SortState{Column: "email", Direction: SortDescending}, nil)
	var got []any
	for _, r := range byEmail {
		got = append(got, r["id"])
	}
	// Record 3 has no email and stays first under descending.
	if want := []any{3, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("email desc ids = %v, want %v", got, want)
	}

	byName := DeriveOrder(rows, cols, SortState{Column: "name", Direction: SortAscending}, nil)
	got = got[:0]
	for _, r := range byName {
		got = append(got, r["id"])
	}
	// The empty string is a value, not an absence; it collates first.
	if want := []any{2, 3, 1}; !slices.Equal(got, want) {
		t.Errorf("name asc ids = %v, want %v", got, want)
	}
}

func TestOrder_Permutation(t *testing.T) {
	t.Parallel()

	got := Order(testUsers(), userColumns(), SortState{Column: "age", Direction: SortDescending}, nil)
	if want := []int{2, 0, 1}; !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}

	if got := Order([]user{}, userColumns(), SortState{Column: "age", Direction: SortAscending}, nil); len(got) != 0 {
		t.Errorf("Order(empty) = %v, want empty", got)
	}
}
