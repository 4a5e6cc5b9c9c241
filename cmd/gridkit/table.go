// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/issue"
	"github.com/gridkit/gridkit/internal/tui"
	"github.com/gridkit/gridkit/internal/watch"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

const (
	checkboxChecked   = "[x]"
	checkboxUnchecked = "[ ]"

	// clearScreen erases the terminal and homes the cursor.
	clearScreen = "\033[2J\033[H"
)

var (
	// errNoSource is returned when neither a file, --db nor piped input is given.
	errNoSource = errors.New("a file argument, --db or piped input is required")

	errWatchStdin = errors.New("--watch needs a file or --db, not standard input")
)

type (
	// tableFlags holds the flags of `gridkit table`.
	tableFlags struct {
		format       string
		db           string
		query        string
		key          string
		columns      string
		sort         string
		selected     string
		selectable   bool
		plain        bool
		emptyMessage string
		watch        bool
	}

	// tableView is everything needed to show a loaded dataset.
	tableView struct {
		ds           *dataset.Dataset
		columns      []datatable.Column[datatable.Record]
		keyField     string
		sort         datatable.SortState
		selected     []any
		selectable   bool
		emptyMessage string
		comparer     *datatable.Comparer
	}
)

func newTableCommand(app *App) *cobra.Command {
	flags := &tableFlags{}
	cmd := &cobra.Command{
		Use:   "table [file]",
		Short: "Show a dataset as a sortable, selectable table",
		Long: `Show a dataset as a sortable, selectable table.

The format is taken from the file extension (.csv, .tsv, .json, .yaml,
.toml, .db) and may be followed by .gz or .zst. Use - to read standard
input together with --format.

When output is not a terminal, or with --plain, the table is printed
once in its sorted order instead of running interactively.

With --watch the file is reloaded whenever it changes. Sort order and
selection are kept across reloads; plain output is printed again.`,
		Example: `  gridkit table users.csv
  gridkit table users.json.gz --sort age:desc --columns name,email,age
  gridkit table --db app.db --query 'SELECT id, name FROM users' --plain
  cat users.tsv | gridkit table - --format tsv --select 1,3 --plain
  gridkit table users.csv --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd.Context(), app, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "", "dataset format: csv, tsv, json, yaml, toml or sqlite (default from extension)")
	f.StringVar(&flags.db, "db", "", "SQLite database to query")
	f.StringVar(&flags.query, "query", "", "SQL query selecting the rows (with --db or a .db file)")
	f.StringVar(&flags.key, "key", "", "field identifying rows (default \"id\", falling back to position)")
	f.StringVar(&flags.columns, "columns", "", "comma-separated fields to show, in order")
	f.StringVar(&flags.sort, "sort", "", "initial sort as key[:asc|desc]")
	f.StringVar(&flags.selected, "select", "", "comma-separated row identities to preselect")
	f.BoolVar(&flags.selectable, "selectable", false, "add the selection checkbox column")
	f.BoolVar(&flags.plain, "plain", false, "print the table instead of running interactively")
	f.StringVar(&flags.emptyMessage, "empty-message", "", "message shown when there are no rows")
	f.BoolVar(&flags.watch, "watch", false, "reload the table when the file changes")
	return cmd
}

func runTable(ctx context.Context, app *App, flags *tableFlags, args []string) error {
	src, err := flags.source(app, args)
	if err != nil {
		return usageError(err)
	}
	if flags.watch && (src.Path == "" || src.Path == dataset.StdinPath) {
		return usageError(errWatchStdin)
	}

	ds, err := app.loader().Load(ctx, src)
	if err != nil {
		return loadError(src, err)
	}

	view, err := flags.view(app, ds)
	if err != nil {
		return usageError(issue.NewErrorContext().
			WithOperation("configure table").
			WithResource(ds.Source).
			WithSuggestion("Available fields: " + strings.Join(ds.Fields, ", ")).
			WithIssue(issue.UnknownColumnId).
			Wrap(err).
			BuildError())
	}

	if flags.plain || !app.interactive() {
		app.logger.Debug("printing plain table", "rows", ds.Len(), "interactive", app.interactive())
		if err := printPlainTable(app.stdout, app, view); err != nil {
			return err
		}
		if !flags.watch {
			return nil
		}
		return watchDataset(ctx, app, src, func(ds *dataset.Dataset) {
			reprintPlainTable(app, flags, ds)
		})
	}

	var updates chan tui.RowsLoadedMsg
	if flags.watch {
		updates = make(chan tui.RowsLoadedMsg)
		watchCtx, stop := context.WithCancel(ctx)
		watchErr := make(chan error, 1)
		go func() {
			defer close(updates)
			watchErr <- watchDataset(watchCtx, app, src, func(ds *dataset.Dataset) {
				select {
				case updates <- tui.RowsLoadedMsg{Rows: ds.Records}:
				case <-watchCtx.Done():
				}
			})
		}()
		defer func() {
			stop()
			if err := <-watchErr; err != nil {
				app.logger.Warn("watch stopped", "err", err)
			}
		}()
	}

	cfg := app.tuiConfig()
	selected, err := tui.RunDataTable(tui.DataTableOptions{
		Title:        ds.Source,
		Rows:         ds.Records,
		Columns:      view.columns,
		Key:          datatable.KeyByField(view.keyField),
		Comparer:     view.comparer,
		Sort:         view.sort,
		Selected:     view.selected,
		Selectable:   view.selectable,
		EmptyMessage: view.emptyMessage,
		Height:       tui.TerminalDimension(app.settings.Table.Height),
		MaxCellWidth: tui.TerminalDimension(app.settings.Table.MaxCellWidth),
		Updates:      updates,
		Logger:       app.logger.WithPrefix("table"),
		OnSelect: func(rows []datatable.Record) {
			app.logger.Debug("selection changed", "count", len(rows))
		},
		Config: cfg,
	})
	if err != nil {
		return cancelledOr(err)
	}
	for _, r := range selected {
		fmt.Fprintln(app.stdout, selectedLine(r, view))
	}
	return nil
}

// watchDataset reloads src each time its file changes and passes every
// dataset that loads to onLoad. It blocks until ctx is done.
func watchDataset(ctx context.Context, app *App, src dataset.Source, onLoad func(*dataset.Dataset)) error {
	cfg, err := watch.ForFile(src.Path)
	if err != nil {
		return err
	}
	cfg.Logger = app.logger.WithPrefix("watch")
	cfg.OnChange = func(ctx context.Context, _ []string) error {
		ds, err := app.loader().Load(ctx, src)
		if err != nil {
			return fmt.Errorf("reload %s: %w", src.Path, err)
		}
		app.logger.Info("dataset reloaded", "source", ds.Source, "rows", ds.Len())
		onLoad(ds)
		return nil
	}

	w, err := watch.New(cfg)
	if err != nil {
		return err
	}
	app.logger.Debug("watching dataset", "path", src.Path)
	return w.Run(ctx)
}

// reprintPlainTable prints a reloaded dataset below, or on a terminal in
// place of, the previous output.
func reprintPlainTable(app *App, flags *tableFlags, ds *dataset.Dataset) {
	view, err := flags.view(app, ds)
	if err != nil {
		app.logger.Warn("reloaded dataset does not fit the table flags", "err", err)
		return
	}
	if isTerminal(app.stdout) {
		fmt.Fprint(app.stdout, clearScreen)
	} else {
		fmt.Fprintln(app.stdout)
	}
	if err := printPlainTable(app.stdout, app, view); err != nil {
		app.logger.Warn("print reloaded table", "err", err)
	}
}

// source resolves where the dataset comes from.
func (flags *tableFlags) source(app *App, args []string) (dataset.Source, error) {
	src := dataset.Source{Query: flags.query, Stdin: app.stdin}
	if flags.format != "" {
		format, err := dataset.ParseFormat(flags.format)
		if err != nil {
			return src, err
		}
		src.Format = format
	}

	switch {
	case flags.db != "" && len(args) > 0:
		return src, errors.New("pass either a file or --db, not both")
	case flags.db != "":
		src.Path = flags.db
		src.Format = dataset.FormatSQLite
	case len(args) > 0:
		src.Path = args[0]
	case !isTerminal(app.stdin):
		src.Path = dataset.StdinPath
	default:
		return src, errNoSource
	}
	return src, nil
}

// view validates the column, key, sort and selection flags against ds.
func (flags *tableFlags) view(app *App, ds *dataset.Dataset) (*tableView, error) {
	columns, err := dataset.Columns(ds.Fields, splitList(flags.columns))
	if err != nil {
		return nil, err
	}

	keyField := datatable.DefaultKeyField
	if flags.key != "" {
		if err := dataset.RequireField(ds.Fields, flags.key); err != nil {
			return nil, err
		}
		keyField = flags.key
	}

	sortState, err := dataset.ParseSortSpec(flags.sort, datatable.ColumnKeys(columns))
	if err != nil {
		return nil, err
	}

	selected := dataset.ParseKeys(flags.selected)
	emptyMessage := flags.emptyMessage
	if emptyMessage == "" {
		emptyMessage = app.settings.Table.EmptyMessage
	}

	return &tableView{
		ds:           ds,
		columns:      columns,
		keyField:     keyField,
		sort:         sortState,
		selected:     selected,
		selectable:   flags.selectable || app.settings.Table.Selectable || len(selected) > 0,
		emptyMessage: emptyMessage,
		comparer:     datatable.NewComparer(app.settings.Locale.Tag()),
	}, nil
}

// printPlainTable writes the sorted rows of view as a bordered table,
// followed by a summary of the selection.
func printPlainTable(w io.Writer, app *App, view *tableView) error {
	state, err := datatable.NewTable(datatable.TableOptions[datatable.Record, any]{
		Rows:         view.ds.Records,
		Columns:      view.columns,
		Key:          datatable.KeyByField(view.keyField),
		Comparer:     view.comparer,
		Sort:         view.sort,
		EmptyMessage: view.emptyMessage,
	})
	if err != nil {
		return err
	}
	for _, id := range view.selected {
		if !state.HasRow(id) {
			app.logger.Warn("no row has the selected identity", "id", id)
			continue
		}
		state.ToggleRow(id, true)
	}

	st := stylesFor(app.provider)
	if state.Len() == 0 {
		fmt.Fprintln(w, st.Subtitle.Render(state.EmptyMessage()))
		return nil
	}

	maxWidth := app.settings.Table.MaxCellWidth
	headers := make([]string, 0, len(view.columns)+1)
	if view.selectable {
		headers = append(headers, selectAllBox(state))
	}
	for _, c := range view.columns {
		title := c.Title
		if ind := state.Sort().DirectionFor(c.Key).Indicator(); ind != "" {
			title += " " + ind
		}
		headers = append(headers, title)
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return st.Header
			}
			return st.Cell
		})
	for i, e := range state.Entries() {
		cells := make([]string, 0, len(headers))
		if view.selectable {
			box := checkboxUnchecked
			if state.IsSelected(e.ID) {
				box = checkboxChecked
			}
			cells = append(cells, box)
		}
		for _, c := range view.columns {
			cells = append(cells, fitCell(c.Cell(e.Row, i), maxWidth))
		}
		t.Row(cells...)
	}
	fmt.Fprintln(w, t.Render())

	summary := fmt.Sprintf("%d row(s)", state.Len())
	var ids []string
	for _, e := range state.Entries() {
		if state.IsSelected(e.ID) {
			ids = append(ids, datatable.FormatValue(e.ID))
		}
	}
	if len(ids) > 0 {
		summary += fmt.Sprintf(", %d selected: %s", len(ids), strings.Join(ids, ", "))
	}
	fmt.Fprintln(w, st.Subtitle.Render(summary))
	return nil
}

func selectAllBox(state *datatable.Table[datatable.Record, any]) string {
	switch {
	case state.AllSelected():
		return checkboxChecked
	case state.SomeSelected():
		return "[-]"
	default:
		return checkboxUnchecked
	}
}

// selectedLine prints a selected row: its key when it has one, its shown
// cells otherwise.
func selectedLine(r datatable.Record, view *tableView) string {
	if v, ok := r[view.keyField]; ok {
		return datatable.FormatValue(v)
	}
	cells := make([]string, len(view.columns))
	for i, c := range view.columns {
		cells[i] = c.Cell(r, i)
	}
	return strings.Join(cells, "\t")
}

func fitCell(s string, maxWidth int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if maxWidth <= 0 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	return truncate.StringWithTail(s, uint(maxWidth), "…")
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// loadError adds remediation hints to a dataset load failure.
func loadError(src dataset.Source, err error) error {
	b := issue.NewErrorContext().
		WithOperation("load dataset").
		WithResource(src.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.WithSuggestion("Check the path; relative paths resolve from the current directory").
			WithIssue(issue.DatasetNotFoundId)
	case errors.Is(err, dataset.ErrUnknownFormat), errors.Is(err, dataset.ErrFormatRequired):
		b.WithSuggestion("Pass --format with one of: csv, tsv, json, yaml, toml, sqlite").
			WithIssue(issue.UnknownFormatId)
	case errors.Is(err, dataset.ErrNotTabular):
		b.WithSuggestion("Use a list of objects, or an object with a rows list").
			WithIssue(issue.NotTabularId)
	case errors.Is(err, dataset.ErrEmptyQuery):
		b.WithSuggestion("Pass --query with a SELECT statement")
	case src.Query != "":
		b.WithSuggestion("Only read-only SELECT statements are allowed").
			WithIssue(issue.QueryFailedId)
	}
	return b.Wrap(err).BuildError()
}
