// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"
)

const (
	checkboxChecked       = "[x]"
	checkboxUnchecked     = "[ ]"
	checkboxIndeterminate = "[-]"

	checkboxColumnWidth = 4
	defaultTableHeight  = 10
	defaultMaxCellWidth = 32
	skeletonRows        = 3
	ellipsis            = "…"
	headerFocusMarker   = "›"

	dataTableHelp = "↑/↓ row • ←/→ column • s sort • space select • a all • t theme • q done"
)

type (
	// DataTableOptions configures the DataTable component.
	DataTableOptions struct {
		// Title is displayed above the table.
		Title string
		// Rows is the initial row collection.
		Rows []datatable.Record
		// Columns describes the columns in display order.
		Columns []datatable.Column[datatable.Record]
		// Key derives row identities (default: the "id" field, falling back
		// to the row position).
		Key datatable.KeyFunc[datatable.Record, any]
		// Comparer orders values (nil collates with datatable.DefaultLanguage).
		Comparer *datatable.Comparer
		// Sort is the initial sort state.
		Sort datatable.SortState
		// Selected lists identities selected initially.
		Selected []any
		// Selectable adds the checkbox column and the select-all control.
		Selectable bool
		// Loading starts the table with the loading placeholder.
		Loading bool
		// Load, when set, runs in the background from Init and replaces the
		// rows with its result. The table shows the loading placeholder
		// until it returns.
		Load func() ([]datatable.Record, error)
		// Updates, when set, delivers replacement rows while the table runs
		// (RunDataTable only). The channel is drained until it is closed.
		Updates <-chan RowsLoadedMsg
		// EmptyMessage is shown when there are no rows.
		EmptyMessage string
		// Height is the number of visible rows (0 for auto).
		Height TerminalDimension
		// MaxCellWidth truncates longer cells (0 for the default).
		MaxCellWidth TerminalDimension
		// OnSelect receives the selected rows, in display order, after every
		// selection change.
		OnSelect func(selected []datatable.Record)
		// Logger receives diagnostics (discarded when nil).
		Logger *log.Logger
		// Config holds common TUI configuration.
		Config Config
	}

	// RowsLoadedMsg delivers the result of a background load.
	RowsLoadedMsg struct {
		Rows []datatable.Record
		Err  error
	}

	// dataTableModel is the bubbletea model for the data table component.
	// It implements EmbeddableComponent and Focusable.
	dataTableModel struct {
		state        *datatable.Table[datatable.Record, any]
		table        table.Model
		spinner      spinner.Model
		provider     *theme.Provider
		logger       *log.Logger
		load         func() ([]datatable.Record, error)
		title        string
		selectable   bool
		headerFocus  int
		maxCellWidth int
		width        int
		focused      bool
		done         bool
		cancelled    bool
		loadErr      error
		unsubscribe  []func()
	}
)

// NewDataTableModel creates an embeddable data table component.
func NewDataTableModel(opts DataTableOptions) (*dataTableModel, error) {
	if ok, errs := opts.Height.IsValid(); !ok {
		return nil, errs[0]
	}
	if ok, errs := opts.MaxCellWidth.IsValid(); !ok {
		return nil, errs[0]
	}
	key := opts.Key
	if key == nil {
		key = datatable.KeyByField(datatable.DefaultKeyField)
	}

	state, err := datatable.NewTable(datatable.TableOptions[datatable.Record, any]{
		Rows:         opts.Rows,
		Columns:      opts.Columns,
		Key:          key,
		Comparer:     opts.Comparer,
		Sort:         opts.Sort,
		Loading:      opts.Loading || opts.Load != nil,
		EmptyMessage: opts.EmptyMessage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	if opts.Selectable {
		for _, id := range opts.Selected {
			if !state.HasRow(id) {
				id = datatable.NormalizeKey(id)
			}
			state.ToggleRow(id, true)
		}
	}

	provider := opts.Config.provider()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &dataTableModel{
		state:        state,
		provider:     provider,
		logger:       logger,
		load:         opts.Load,
		title:        opts.Title,
		selectable:   opts.Selectable,
		maxCellWidth: opts.MaxCellWidth.Or(defaultMaxCellWidth),
		width:        int(opts.Config.Width),
		focused:      true,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(opts.Height.Or(defaultTableHeight)),
		),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	m.applyTheme()
	m.syncTable()

	m.unsubscribe = append(m.unsubscribe,
		state.Subscribe(m.syncTable),
		provider.Subscribe(func(theme.Mode) { m.applyTheme() }),
	)
	if opts.OnSelect != nil {
		m.unsubscribe = append(m.unsubscribe, state.OnSelect(opts.OnSelect))
	}
	return m, nil
}

// Init implements tea.Model.
func (m *dataTableModel) Init() tea.Cmd {
	if !m.state.Loading() {
		return nil
	}
	cmds := []tea.Cmd{m.spinner.Tick}
	if load := m.load; load != nil {
		cmds = append(cmds, func() tea.Msg {
			rows, err := load()
			return RowsLoadedMsg{Rows: rows, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *dataTableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RowsLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.state.SetRows(msg.Rows)
		}
		m.state.SetLoading(false)
		return m, nil
	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.SetSize(TerminalDimension(msg.Width), TerminalDimension(msg.Height))
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *dataTableModel) View() string {
	if m.done {
		return ""
	}
	p := m.provider.Palette()

	lines := make([]string, 0, 8)
	if m.title != "" {
		lines = append(lines, titleStyle(p).Render(m.title))
	}

	switch {
	case m.state.Loading():
		lines = append(lines, m.headerLine(p), m.spinner.View()+" Loading…")
		skeleton := mutedStyle(p).Render(strings.Repeat("░", max(lipgloss.Width(m.headerLine(p)), 12)))
		for range skeletonRows {
			lines = append(lines, skeleton)
		}
	case m.loadErr != nil:
		lines = append(lines, m.headerLine(p), errorStyle(p).Render("Failed to load rows: "+m.loadErr.Error()))
	case m.state.Len() == 0:
		lines = append(lines, m.headerLine(p), mutedStyle(p).Padding(1, 2).Render(m.state.EmptyMessage()))
	default:
		lines = append(lines, m.table.View())
	}

	if n := len(m.state.Selected()); n > 0 {
		lines = append(lines, mutedStyle(p).Render(fmt.Sprintf("%d of %d row(s) selected", n, m.state.Len())))
	}
	if m.focused {
		lines = append(lines, mutedStyle(p).Render(dataTableHelp))
	}

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}

// IsDone implements EmbeddableComponent.
func (m *dataTableModel) IsDone() bool {
	return m.done
}

// Result implements EmbeddableComponent.
// Returns the selected rows in display order, or ErrCancelled.
func (m *dataTableModel) Result() (any, error) {
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.state.Selected(), nil
}

// Cancelled implements EmbeddableComponent.
func (m *dataTableModel) Cancelled() bool {
	return m.cancelled
}

// SetSize implements EmbeddableComponent.
func (m *dataTableModel) SetSize(width, height TerminalDimension) {
	m.width = int(width)
	if width > 0 {
		m.table.SetWidth(int(width))
	}
	if height > 0 {
		// Title, footer and help take up to three lines.
		m.table.SetHeight(max(3, int(height)-3))
	}
}

// Focus implements Focusable.
func (m *dataTableModel) Focus() tea.Cmd {
	m.focused = true
	m.table.Focus()
	m.syncTable()
	return nil
}

// Blur implements Focusable.
func (m *dataTableModel) Blur() {
	m.focused = false
	m.table.Blur()
	m.syncTable()
}

// Focused implements Focusable.
func (m *dataTableModel) Focused() bool {
	return m.focused
}

// State returns the table state the component renders. Mutations made
// through it are reflected on the next View.
func (m *dataTableModel) State() *datatable.Table[datatable.Record, any] {
	return m.state
}

// Close unregisters the component from its table state and theme provider.
func (m *dataTableModel) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}

func (m *dataTableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC, keyEsc:
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case "q":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		m.table.MoveUp(1)
	case "down", "j":
		m.table.MoveDown(1)
	case "pgup":
		m.table.MoveUp(m.table.Height())
	case "pgdown":
		m.table.MoveDown(m.table.Height())
	case "home", "g":
		m.table.GotoTop()
	case "end", "G":
		m.table.GotoBottom()
	case "left", "h":
		m.moveHeaderFocus(-1)
	case "right", "l":
		m.moveHeaderFocus(1)
	case "s", keyEnter:
		m.activateHeader()
	case keySpace:
		m.toggleCursorRow()
	case "a":
		if m.selectable {
			m.state.ToggleAll()
		}
	case "t":
		m.provider.Toggle()
	}
	return m, nil
}

func (m *dataTableModel) headerCount() int {
	n := len(m.state.Columns())
	if m.selectable {
		n++
	}
	return n
}

func (m *dataTableModel) moveHeaderFocus(delta int) {
	n := m.headerCount()
	if n == 0 {
		return
	}
	m.headerFocus = min(max(m.headerFocus+delta, 0), n-1)
	m.syncTable()
}

// activateHeader applies a header activation to the focused header. The
// checkbox header acts as the select-all control.
func (m *dataTableModel) activateHeader() {
	idx := m.headerFocus
	if m.selectable {
		if idx == 0 {
			m.state.ToggleAll()
			return
		}
		idx--
	}
	cols := m.state.Columns()
	if idx < 0 || idx >= len(cols) {
		return
	}
	if err := m.state.ActivateColumn(cols[idx].Key); err != nil {
		m.logger.Warn("sort column", "column", cols[idx].Key, "err", err)
	}
}

func (m *dataTableModel) toggleCursorRow() {
	if !m.selectable {
		return
	}
	entries := m.state.Entries()
	i := m.table.Cursor()
	if i < 0 || i >= len(entries) {
		return
	}
	id := entries[i].ID
	m.state.ToggleRow(id, !m.state.IsSelected(id))
}

func (m *dataTableModel) selectAllBox() string {
	switch {
	case m.state.AllSelected():
		return checkboxChecked
	case m.state.SomeSelected():
		return checkboxIndeterminate
	default:
		return checkboxUnchecked
	}
}

// syncTable rebuilds the bubbles table columns and rows from the state.
func (m *dataTableModel) syncTable() {
	entries := m.state.Entries()
	cols := m.state.Columns()
	sortState := m.state.Sort()

	offset := 0
	if m.selectable {
		offset = 1
	}

	cells := make([][]string, len(entries))
	for i, e := range entries {
		row := make([]string, 0, len(cols)+offset)
		if m.selectable {
			box := checkboxUnchecked
			if m.state.IsSelected(e.ID) {
				box = checkboxChecked
			}
			row = append(row, box)
		}
		for _, c := range cols {
			row = append(row, m.fit(c.Cell(e.Row, i)))
		}
		cells[i] = row
	}

	tcols := make([]table.Column, 0, len(cols)+offset)
	if m.selectable {
		tcols = append(tcols, table.Column{Title: m.headerLabel(0, m.selectAllBox()), Width: checkboxColumnWidth})
	}
	for j, c := range cols {
		title := c.Title
		if title == "" {
			title = c.Key
		}
		if c.Sortable {
			if ind := sortState.DirectionFor(c.Key).Indicator(); ind != "" {
				title += " " + ind
			}
		}
		width := c.Width
		if width <= 0 {
			width = autoColumnWidth(headerFocusMarker+title, cells, j+offset)
		}
		tcols = append(tcols, table.Column{Title: m.headerLabel(j+offset, title), Width: width})
	}

	rows := make([]table.Row, len(cells))
	for i, r := range cells {
		rows[i] = r
	}

	// Rows wider than the column set must not be rendered, even transiently.
	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(tcols)
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

func (m *dataTableModel) headerLabel(idx int, title string) string {
	if m.focused && idx == m.headerFocus {
		return headerFocusMarker + title
	}
	return title
}

func (m *dataTableModel) headerLine(p theme.Palette) string {
	cols := m.table.Columns()
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = lipgloss.NewStyle().Width(c.Width).Render(c.Title)
	}
	return tableStyles(p).Header.Render(strings.Join(titles, "  "))
}

// fit flattens a cell to one line and truncates it to the maximum width.
func (m *dataTableModel) fit(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= m.maxCellWidth {
		return s
	}
	return truncate.StringWithTail(s, uint(m.maxCellWidth), ellipsis)
}

func (m *dataTableModel) applyTheme() {
	p := m.provider.Palette()
	m.table.SetStyles(tableStyles(p))
	m.spinner.Style = lipgloss.NewStyle().Foreground(p.Primary)
}

func autoColumnWidth(title string, cells [][]string, col int) int {
	width := lipgloss.Width(title)
	for _, row := range cells {
		if col < len(row) {
			width = max(width, lipgloss.Width(row[col]))
		}
	}
	return width
}

// RunDataTable runs a data table on its own program and returns the
// selection the user confirmed with q.
func RunDataTable(opts DataTableOptions) ([]datatable.Record, error) {
	model, err := NewDataTableModel(opts)
	if err != nil {
		return nil, err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithOutput(getOutputWriter(opts.Config)))
	if opts.Updates != nil {
		go func() {
			for msg := range opts.Updates {
				p.Send(msg)
			}
		}()
	}
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result, err := finalModel.(*dataTableModel).Result()
	if err != nil {
		return nil, err
	}
	if m := finalModel.(*dataTableModel); m.loadErr != nil {
		return nil, m.loadErr
	}
	return result.([]datatable.Record), nil
}
