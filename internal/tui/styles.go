// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles builds the bubbles table styles for a palette.
func tableStyles(p theme.Palette) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(p.Primary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true)
	s.Cell = s.Cell.Foreground(p.Text)
	s.Selected = s.Selected.
		Foreground(p.SelectedText).
		Background(p.SelectedBackground).
		Bold(false)
	return s
}

func titleStyle(p theme.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
}

func mutedStyle(p theme.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Muted)
}

func errorStyle(p theme.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Error)
}
