// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func newTestDataTable(t *testing.T, opts DataTableOptions) *dataTableModel {
	t.Helper()
	if opts.Columns == nil {
		opts.Columns = testColumns()
	}
	if opts.Config.Provider == nil {
		opts.Config = testConfig()
	}
	m, err := NewDataTableModel(opts)
	if err != nil {
		t.Fatalf("NewDataTableModel() error = %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestDataTable_SortFromHeader(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Logger: log.New(&logs)})
	t.Cleanup(func() {
		if logs.Len() > 0 {
			t.Errorf("header activation logged:\n%s", logs.String())
		}
	})

	m.Update(keyRunes("s"))
	if got := recordIDs(m.State().Rows()); !slices.Equal(got, []any{3, 2, 1}) {
		t.Errorf("after one activation ids = %v, want [3 2 1]", got)
	}
	if !strings.Contains(m.View(), "Name ▲") {
		t.Errorf("View() lacks ascending indicator:\n%s", m.View())
	}

	m.Update(keyType(tea.KeyEnter))
	if got := m.State().Sort(); got.Direction != datatable.SortDescending {
		t.Errorf("after two activations sort = %v, want name:desc", got)
	}
	m.Update(keyRunes("s"))
	if got := recordIDs(m.State().Rows()); !slices.Equal(got, []any{1, 2, 3}) {
		t.Errorf("after three activations ids = %v, want original order", got)
	}

	m.Update(keyType(tea.KeyRight))
	m.Update(keyType(tea.KeyRight))
	m.Update(keyRunes("s"))
	if got := m.State().Sort(); got != (datatable.SortState{Column: "age", Direction: datatable.SortAscending}) {
		t.Errorf("sort = %v, want age:asc", got)
	}
}

func TestDataTable_HeaderFocusIsClamped(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords()})
	for range 10 {
		m.Update(keyType(tea.KeyRight))
	}
	if m.headerFocus != 2 {
		t.Errorf("headerFocus = %d, want 2", m.headerFocus)
	}
	for range 10 {
		m.Update(keyType(tea.KeyLeft))
	}
	if m.headerFocus != 0 {
		t.Errorf("headerFocus = %d, want 0", m.headerFocus)
	}
}

func TestDataTable_RowSelection(t *testing.T) {
	t.Parallel()

	var notifications [][]any
	m := newTestDataTable(t, DataTableOptions{
		Rows:       testRecords(),
		Selectable: true,
		OnSelect: func(selected []datatable.Record) {
			notifications = append(notifications, recordIDs(selected))
		},
	})

	m.Update(keyType(tea.KeyDown))
	m.Update(keySpaceMsg())
	if !m.State().IsSelected(int64(2)) {
		t.Fatal("row under the cursor was not selected")
	}
	view := m.View()
	if !strings.Contains(view, "1 of 3 row(s) selected") {
		t.Errorf("View() lacks the selection footer:\n%s", view)
	}
	if !strings.Contains(view, checkboxIndeterminate) {
		t.Errorf("View() lacks the indeterminate select-all box:\n%s", view)
	}

	m.Update(keyRunes("a"))
	if !strings.Contains(m.View(), "3 of 3 row(s) selected") {
		t.Errorf("View() after select-all:\n%s", m.View())
	}
	m.Update(keyRunes("a"))
	if strings.Contains(m.View(), "row(s) selected") {
		t.Errorf("footer shown with nothing selected:\n%s", m.View())
	}

	want := [][]any{{2}, {1, 2, 3}, {}}
	if len(notifications) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(notifications), len(want))
	}
	for i := range want {
		if !slices.Equal(notifications[i], want[i]) {
			t.Errorf("notification %d = %v, want %v", i+1, notifications[i], want[i])
		}
	}
}

func TestDataTable_CheckboxHeaderTogglesAll(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Selectable: true})
	m.Update(keyType(tea.KeyEnter))
	if !m.State().AllSelected() {
		t.Error("activating the checkbox header did not select all rows")
	}
	if !strings.Contains(m.View(), checkboxChecked) {
		t.Errorf("View() lacks checked boxes:\n%s", m.View())
	}
}

func TestDataTable_NotSelectableIgnoresSelectionKeys(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords()})
	m.Update(keySpaceMsg())
	m.Update(keyRunes("a"))
	if n := m.State().SelectedCount(); n != 0 {
		t.Errorf("SelectedCount() = %d, want 0", n)
	}
	if strings.Contains(m.View(), checkboxUnchecked) {
		t.Error("View() renders checkboxes for a non-selectable table")
	}
}

func TestDataTable_InitialSelection(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Selectable: true, Selected: []any{1, 3}})
	if got := recordIDs(m.State().Selected()); !slices.Equal(got, []any{1, 3}) {
		t.Errorf("Selected() = %v, want [1 3]", got)
	}
}

func TestDataTable_LoadingAndLoaded(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{
		Load: func() ([]datatable.Record, error) { return testRecords(), nil },
	})
	if m.Init() == nil {
		t.Fatal("Init() returned no command while loading")
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("View() while loading:\n%s", m.View())
	}

	m.Update(RowsLoadedMsg{Rows: testRecords()})
	if m.State().Loading() {
		t.Error("still loading after RowsLoadedMsg")
	}
	if !strings.Contains(m.View(), "Jane Smith") {
		t.Errorf("View() after load:\n%s", m.View())
	}
}

func TestDataTable_ReloadKeepsSortAndSelection(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{
		Rows:       testRecords(),
		Selectable: true,
		Selected:   []any{2},
		Sort:       datatable.SortState{Column: "age", Direction: datatable.SortAscending},
	})

	reloaded := append(testRecords(), datatable.Record{"id": 4, "name": "Amy Lee", "email": "amy@example.com", "age": 20})
	m.Update(RowsLoadedMsg{Rows: reloaded})

	if got := recordIDs(m.State().Rows()); !slices.Equal(got, []any{4, 2, 1, 3}) {
		t.Errorf("Rows() ids = %v, want [4 2 1 3]", got)
	}
	if got := recordIDs(m.State().Selected()); !slices.Equal(got, []any{2}) {
		t.Errorf("Selected() = %v, want [2]", got)
	}
}

func TestDataTable_ReloadDropsVanishedRows(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Selectable: true, Selected: []any{1, 3}})
	m.Update(RowsLoadedMsg{Rows: testRecords()[:2]})

	if got := recordIDs(m.State().Selected()); !slices.Equal(got, []any{1}) {
		t.Errorf("Selected() = %v, want [1]", got)
	}
	if !m.State().SomeSelected() || m.State().AllSelected() {
		t.Error("select-all control should be indeterminate")
	}
}

func TestDataTable_SelectedWithoutKeyField(t *testing.T) {
	t.Parallel()

	rows := []datatable.Record{{"name": "A"}, {"name": "B"}}
	m := newTestDataTable(t, DataTableOptions{
		Rows:       rows,
		Columns:    []datatable.Column[datatable.Record]{datatable.FieldColumn("name", "Name")},
		Selectable: true,
		Selected:   []any{1, int64(7)},
	})
	selected := m.State().Selected()
	if len(selected) != 1 || selected[0]["name"] != "B" {
		t.Errorf("Selected() = %v, want [B]", selected)
	}
}

func TestDataTable_LoadError(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Loading: true})
	m.Update(RowsLoadedMsg{Err: errors.New("disk on fire")})
	if !strings.Contains(m.View(), "disk on fire") {
		t.Errorf("View() does not show the load error:\n%s", m.View())
	}
}

func TestDataTable_EmptyState(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{EmptyMessage: "No users yet"})
	if !strings.Contains(m.View(), "No users yet") {
		t.Errorf("View() lacks empty message:\n%s", m.View())
	}

	d := newTestDataTable(t, DataTableOptions{})
	if !strings.Contains(d.View(), datatable.DefaultEmptyMessage) {
		t.Errorf("View() lacks default empty message:\n%s", d.View())
	}
}

func TestDataTable_TruncatesLongCells(t *testing.T) {
	t.Parallel()

	rows := []datatable.Record{{"id": 1, "name": "Maximilian Alexander"}}
	m := newTestDataTable(t, DataTableOptions{
		Rows:         rows,
		Columns:      []datatable.Column[datatable.Record]{datatable.FieldColumn("name", "Name")},
		MaxCellWidth: 8,
	})
	view := m.View()
	if strings.Contains(view, "Maximilian Alexander") {
		t.Errorf("long cell was not truncated:\n%s", view)
	}
	if !strings.Contains(view, ellipsis) {
		t.Errorf("truncated cell lacks ellipsis:\n%s", view)
	}
}

func TestDataTable_QuitAndCancel(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Selectable: true, Selected: []any{2}})
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil || !m.IsDone() || m.Cancelled() {
		t.Fatalf("q: done=%v cancelled=%v cmd=%v", m.IsDone(), m.Cancelled(), cmd)
	}
	result, err := m.Result()
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if got := recordIDs(result.([]datatable.Record)); !slices.Equal(got, []any{2}) {
		t.Errorf("Result() = %v, want [2]", got)
	}
	if m.View() != "" {
		t.Error("View() should be empty when done")
	}

	c := newTestDataTable(t, DataTableOptions{Rows: testRecords()})
	c.Update(keyType(tea.KeyEsc))
	if _, err := c.Result(); !errors.Is(err, ErrCancelled) {
		t.Errorf("Result() after esc error = %v, want ErrCancelled", err)
	}
}

func TestDataTable_ThemeToggleKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	m := newTestDataTable(t, DataTableOptions{Rows: testRecords(), Config: cfg})
	m.Update(keyRunes("t"))
	if cfg.Provider.Mode() != theme.ModeDark {
		t.Errorf("provider mode = %q, want dark", cfg.Provider.Mode())
	}
}

func TestDataTable_BlurredIgnoresKeys(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords()})
	m.Blur()
	m.Update(keyRunes("s"))
	if m.State().Sort().IsSorted() {
		t.Error("blurred table reacted to a key")
	}
	if strings.Contains(m.View(), dataTableHelp) {
		t.Error("blurred table shows key help")
	}
}

func TestDataTable_ExternalStateChangesRender(t *testing.T) {
	t.Parallel()

	m := newTestDataTable(t, DataTableOptions{Rows: testRecords()})
	m.State().SetRows(append(testRecords(), datatable.Record{"id": 4, "name": "Alice Brown"}))
	if !strings.Contains(m.View(), "Alice Brown") {
		t.Errorf("View() does not reflect replaced rows:\n%s", m.View())
	}
}

func TestNewDataTableModel_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewDataTableModel(DataTableOptions{Height: -1}); !errors.Is(err, ErrInvalidTerminalDimension) {
		t.Errorf("negative height error = %v", err)
	}
	dup := []datatable.Column[datatable.Record]{datatable.FieldColumn("a", ""), datatable.FieldColumn("a", "")}
	if _, err := NewDataTableModel(DataTableOptions{Columns: dup}); !errors.Is(err, datatable.ErrDuplicateColumn) {
		t.Errorf("duplicate columns error = %v", err)
	}
}
