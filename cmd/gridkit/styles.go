// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// colorWarning is amber in both modes.
const colorWarning = lipgloss.Color("#F59E0B")

// cliStyles holds the styles of plain CLI output for one theme mode.
type cliStyles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
}

// stylesFor derives the CLI styles from the palette of p's current mode.
func stylesFor(p *theme.Provider) cliStyles {
	pal := p.Palette()
	return cliStyles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(pal.Primary),
		Subtitle: lipgloss.NewStyle().Foreground(pal.Muted),
		Key:      lipgloss.NewStyle().Foreground(pal.Accent),
		Value:    lipgloss.NewStyle().Foreground(pal.Success),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(pal.Error),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(pal.Primary).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Foreground(pal.Text).Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(pal.Border),
	}
}
