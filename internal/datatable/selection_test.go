// SPDX-License-Identifier: MPL-2.0

package datatable

import (
	"maps"
	"math/rand/v2"
	"slices"
	"testing"
)

func userKey() KeyFunc[user, int] {
	return KeyByFunc(func(u user) int { return u.ID })
}

func TestSelection_ToggleIdempotent(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	once := NewSelection(userKey())
	once.Toggle(rows, 1, true)

	twice := NewSelection(userKey())
	notified := 0
	twice.OnChange(func([]user) { notified++ })
	twice.Toggle(rows, 1, true)
	twice.Toggle(rows, 1, true)

	if !maps.Equal(once.members, twice.members) {
		t.Errorf("members after two toggles = %v, want %v", twice.members, once.members)
	}
	if notified != 2 {
		t.Errorf("notified %d times, want 2 (one per mutation)", notified)
	}
}

func TestSelection_ToggleOff(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	s := NewSelection(userKey())
	s.Toggle(rows, 2, true)
	s.Toggle(rows, 2, false)
	s.Toggle(rows, 3, false)

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.Has(2) {
		t.Error("Has(2) = true after deselecting")
	}
}

func TestSelection_RecordsFollowRowOrder(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	s := NewSelection(userKey())
	s.Toggle(rows, 3, true)
	s.Toggle(rows, 1, true)

	if got := ids(s.Records(rows)); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Records(rows) = %v, want [1 3]", got)
	}
	reversed := slices.Clone(rows)
	slices.Reverse(reversed)
	if got := ids(s.Records(reversed)); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("Records(reversed) = %v, want [3 1]", got)
	}
}

func TestSelection_SelectAllAndClear(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	s := NewSelection(userKey())
	var last []user
	s.OnChange(func(selected []user) { last = selected })

	s.SelectAll(rows)
	if !s.AllSelected(rows) || s.SomeSelected(rows) {
		t.Errorf("after SelectAll: all=%v some=%v, want all only", s.AllSelected(rows), s.SomeSelected(rows))
	}
	if got := ids(last); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("notification = %v, want [1 2 3]", got)
	}

	s.ClearAll(rows)
	if s.AllSelected(rows) || s.SomeSelected(rows) {
		t.Error("after ClearAll: want neither all nor some selected")
	}
	if len(last) != 0 {
		t.Errorf("notification = %v, want empty", ids(last))
	}
}

func TestSelection_EmptyRowsNeverAllSelected(t *testing.T) {
	t.Parallel()

	s := NewSelection(userKey())
	s.SelectAll(nil)
	if s.AllSelected(nil) {
		t.Error("AllSelected(nil) = true, want false")
	}
	if s.SomeSelected(nil) {
		t.Error("SomeSelected(nil) = true, want false")
	}
}

func TestSelection_DuplicateIdentitiesCollapse(t *testing.T) {
	t.Parallel()

	rows := []user{{ID: 7, Name: "a"}, {ID: 7, Name: "b"}, {ID: 8, Name: "c"}}
	s := NewSelection(userKey())
	s.Toggle(rows, 7, true)

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if got := names(s.Records(rows)); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Records() = %v, want both rows sharing the identity", got)
	}
}

func TestSelection_Retain(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	s := NewSelection(userKey())
	s.Toggle(rows, 1, true)
	s.Toggle(rows, 3, true)
	notified := 0
	s.OnChange(func([]user) { notified++ })

	if s.Retain(rows) {
		t.Error("Retain() = true with every identity present")
	}
	if dropped := s.Retain(rows[:2]); !dropped {
		t.Error("Retain() = false after identity 3 vanished")
	}
	if s.Len() != 1 || !s.Has(1) {
		t.Errorf("members = %v, want {1}", s.members)
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
}

func TestSelection_Unsubscribe(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	s := NewSelection(userKey())
	calls := 0
	unsubscribe := s.OnChange(func([]user) { calls++ })
	s.Toggle(rows, 1, true)
	unsubscribe()
	s.Toggle(rows, 2, true)

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestSelection_DerivedFlagsConsistent(t *testing.T) {
	t.Parallel()

	rows := testUsers()
	r := rand.New(rand.NewPCG(1, 2))
	s := NewSelection(userKey())

	for step := range 500 {
		switch r.IntN(4) {
		case 0, 1:
			id := rows[r.IntN(len(rows))].ID
			s.Toggle(rows, id, r.IntN(2) == 0)
		case 2:
			s.SelectAll(rows)
		case 3:
			s.ClearAll(rows)
		}

		n := len(s.Records(rows))
		wantAll := n == len(rows) && len(rows) > 0
		wantSome := n > 0 && n < len(rows)
		if s.AllSelected(rows) != wantAll {
			t.Fatalf("step %d: AllSelected() = %v with %d/%d selected", step, s.AllSelected(rows), n, len(rows))
		}
		if s.SomeSelected(rows) != wantSome {
			t.Fatalf("step %d: SomeSelected() = %v with %d/%d selected", step, s.SomeSelected(rows), n, len(rows))
		}
	}
}
