// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/gridkit/gridkit/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sunIcon  = "☀"
	moonIcon = "☾"
	knobOn   = "●"
	knobOff  = "○"
)

// themeToggleModel is a light/dark switch bound to a theme.Provider.
// It implements EmbeddableComponent and Focusable.
type themeToggleModel struct {
	provider  *theme.Provider
	focused   bool
	done      bool
	cancelled bool
}

// NewThemeToggleModel creates a switch that toggles cfg.Provider.
func NewThemeToggleModel(cfg Config) *themeToggleModel {
	return &themeToggleModel{provider: cfg.provider(), focused: true}
}

// Init implements tea.Model.
func (m *themeToggleModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *themeToggleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch keyMsg.String() {
	case keySpace, keyEnter, "t":
		m.provider.Toggle()
	case keyCtrlC, keyEsc:
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case "q":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *themeToggleModel) View() string {
	mode := m.provider.Mode()
	p := m.provider.Palette()

	track := knobOn + knobOff
	if mode.IsDark() {
		track = knobOff + knobOn
	}
	border := p.Border
	if m.focused {
		border = p.Primary
	}
	sw := lipgloss.NewStyle().
		Foreground(p.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(sunIcon + " " + track + " " + moonIcon)

	return lipgloss.JoinHorizontal(lipgloss.Center, sw, " ", mutedStyle(p).Render(m.Label()))
}

// Label returns the accessible label describing what activation does.
func (m *themeToggleModel) Label() string {
	return m.provider.Mode().ToggleLabel()
}

// IsDone implements EmbeddableComponent.
func (m *themeToggleModel) IsDone() bool { return m.done }

// Result implements EmbeddableComponent. Returns the current theme.Mode.
func (m *themeToggleModel) Result() (any, error) {
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.provider.Mode(), nil
}

// Cancelled implements EmbeddableComponent.
func (m *themeToggleModel) Cancelled() bool { return m.cancelled }

// SetSize implements EmbeddableComponent. The toggle has a fixed size.
func (m *themeToggleModel) SetSize(_, _ TerminalDimension) {}

// Focus implements Focusable.
func (m *themeToggleModel) Focus() tea.Cmd {
	m.focused = true
	return nil
}

// Blur implements Focusable.
func (m *themeToggleModel) Blur() { m.focused = false }

// Focused implements Focusable.
func (m *themeToggleModel) Focused() bool { return m.focused }
