// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	focusToggle = iota
	focusEmail
	focusPassword
	focusTable
	focusCount

	demoTitle = "gridkit demo"
	demoHelp  = "tab/shift+tab focus • esc quit"

	minPasswordLength = 8
)

var errPasswordTooShort = fmt.Errorf("password must be at least %d characters", minPasswordLength)

type (
	// DemoOptions configures the demo app.
	DemoOptions struct {
		// Rows and Columns populate the users table.
		Rows    []datatable.Record
		Columns []datatable.Column[datatable.Record]
		// Logger receives selection and theme changes at debug level.
		Logger *log.Logger
		// Config holds common TUI configuration.
		Config Config
	}

	// demoModel composes the theme toggle, two input fields and a
	// selectable data table sharing one theme.Provider.
	demoModel struct {
		provider   *theme.Provider
		logger     *log.Logger
		toggle     *themeToggleModel
		email      *inputFieldModel
		password   *inputFieldModel
		table      *dataTableModel
		focus      int
		width      int
		done       bool
		cancelled  bool
		unsubTheme func()
	}
)

// NewDemoModel creates the demo app.
func NewDemoModel(opts DemoOptions) (*demoModel, error) {
	cfg := opts.Config
	cfg.Provider = cfg.provider()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	email, err := NewInputFieldModel(InputFieldOptions{
		Label:       "Email",
		Placeholder: "you@example.com",
		HelperText:  "We'll never share your email.",
		Required:    true,
		Validate:    validateEmail,
		Config:      cfg,
	})
	if err != nil {
		return nil, err
	}
	password, err := NewInputFieldModel(InputFieldOptions{
		Label:      "Password",
		HelperText: fmt.Sprintf("At least %d characters.", minPasswordLength),
		Required:   true,
		Password:   true,
		Variant:    VariantFilled,
		Validate:   validatePassword,
		Config:     cfg,
	})
	if err != nil {
		return nil, err
	}

	m := &demoModel{
		provider: cfg.Provider,
		logger:   logger,
		toggle:   NewThemeToggleModel(cfg),
		email:    email,
		password: password,
	}

	m.table, err = NewDataTableModel(DataTableOptions{
		Title:      "Users",
		Rows:       opts.Rows,
		Columns:    opts.Columns,
		Selectable: true,
		Height:     6,
		OnSelect:   m.logSelection,
		Logger:     logger,
		Config:     cfg,
	})
	if err != nil {
		return nil, err
	}

	m.unsubTheme = cfg.Provider.Subscribe(func(mode theme.Mode) {
		m.logger.Debug("theme changed", "mode", mode)
	})
	m.setFocus(focusToggle)
	return m, nil
}

// Init implements tea.Model.
func (m *demoModel) Init() tea.Cmd {
	return m.table.Init()
}

// Update implements tea.Model.
func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, isSize := msg.(tea.WindowSizeMsg); isSize {
			m.SetSize(TerminalDimension(size.Width), TerminalDimension(size.Height))
			return m, nil
		}
		_, tableCmd := m.table.Update(msg)
		var fieldCmd tea.Cmd
		if m.focus == focusEmail || m.focus == focusPassword {
			_, fieldCmd = m.focusedField().Update(msg)
		}
		return m, tea.Batch(tableCmd, fieldCmd)
	}

	switch keyMsg.String() {
	case keyCtrlC, keyEsc:
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case keyTab:
		return m, m.setFocus((m.focus + 1) % focusCount)
	case keyShiftTab:
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusEmail, focusPassword:
		field := m.focusedField()
		if keyMsg.String() == keyEnter {
			if field.Validate() {
				return m, m.setFocus(m.focus + 1)
			}
			return m, nil
		}
		_, cmd := field.Update(msg)
		return m, cmd
	case focusToggle, focusTable:
		if keyMsg.String() == "q" {
			m.done = true
			return m, tea.Quit
		}
		if m.focus == focusToggle {
			_, cmd := m.toggle.Update(msg)
			return m, cmd
		}
		_, cmd := m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *demoModel) View() string {
	if m.done {
		return ""
	}
	p := m.provider.Palette()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle(p).Render(demoTitle), "  ", m.toggle.View())
	form := lipgloss.JoinHorizontal(lipgloss.Top,
		m.email.View(), "  ", m.password.View())
	status := mutedStyle(p).Render(fmt.Sprintf("Selected users: %d • %s", len(m.table.State().Selected()), demoHelp))

	view := strings.Join([]string{header, "", form, "", m.table.View(), status}, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}

// IsDone implements EmbeddableComponent.
func (m *demoModel) IsDone() bool { return m.done }

// Result implements EmbeddableComponent. Returns the selected users.
func (m *demoModel) Result() (any, error) {
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.table.State().Selected(), nil
}

// Cancelled implements EmbeddableComponent.
func (m *demoModel) Cancelled() bool { return m.cancelled }

// SetSize implements EmbeddableComponent.
func (m *demoModel) SetSize(width, height TerminalDimension) {
	m.width = int(width)
	// Header, form and status take about twelve lines.
	m.table.SetSize(width, max(0, height-12))
}

// Close releases the subscriptions held by the demo and its table.
func (m *demoModel) Close() {
	m.table.Close()
	if m.unsubTheme != nil {
		m.unsubTheme()
	}
}

func (m *demoModel) focusables() []Focusable {
	return []Focusable{m.toggle, m.email, m.password, m.table}
}

func (m *demoModel) setFocus(idx int) tea.Cmd {
	m.focus = idx % focusCount
	var cmd tea.Cmd
	for i, f := range m.focusables() {
		if i == m.focus {
			cmd = f.Focus()
			continue
		}
		f.Blur()
	}
	return cmd
}

func (m *demoModel) focusedField() *inputFieldModel {
	if m.focus == focusPassword {
		return m.password
	}
	return m.email
}

func (m *demoModel) logSelection(selected []datatable.Record) {
	ids := make([]any, len(selected))
	for i, r := range selected {
		ids[i] = r[datatable.DefaultKeyField]
	}
	m.logger.Debug("selection changed", "count", len(selected), "ids", ids)
}

// RunDemo runs the demo app and returns the users selected when it exits.
func RunDemo(opts DemoOptions) ([]datatable.Record, error) {
	model, err := NewDemoModel(opts)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(getOutputWriter(opts.Config)))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	result, err := finalModel.(*demoModel).Result()
	if err != nil {
		return nil, err
	}
	return result.([]datatable.Record), nil
}

func validateEmail(s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len([]rune(s)) < minPasswordLength {
		return errPasswordTooShort
	}
	return nil
}
