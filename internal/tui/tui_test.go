// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func keySpaceMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func testConfig() Config {
	return Config{Provider: theme.NewProvider(theme.ModeLight)}
}

func testRecords() []datatable.Record {
	return []datatable.Record{
		{"id": 1, "name": "John Doe", "email": "john@example.com", "age": 30},
		{"id": 2, "name": "Jane Smith", "email": "jane@example.com", "age": 25},
		{"id": 3, "name": "Bob Johnson", "email": "bob@example.com", "age": 35},
	}
}

func testColumns() []datatable.Column[datatable.Record] {
	return []datatable.Column[datatable.Record]{
		datatable.FieldColumn("name", "Name"),
		datatable.FieldColumn("email", "Email"),
		datatable.FieldColumn("age", "Age"),
	}
}

func recordIDs(records []datatable.Record) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r["id"]
	}
	return out
}
