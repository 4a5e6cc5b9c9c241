// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/issue"
	"github.com/gridkit/gridkit/internal/tui"

	"github.com/spf13/cobra"
)

func newDemoCommand(app *App) *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the example app: theme toggle, form fields and a users table",
		Long: `Run the example app.

The demo combines the theme toggle, an email and a password field and a
selectable users table that share one theme. Tab moves focus, esc quits.
The ids of the selected users are printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.interactive() {
				return issue.NewErrorContext().
					WithOperation("run demo").
					WithSuggestion("Run gridkit demo in a terminal").
					WithSuggestion("Browse static renders with gridkit catalog").
					WithIssue(issue.NotATerminalId).
					BuildError()
			}

			ds := dataset.SampleUsers()
			if rows > 0 {
				ds = dataset.GenerateUsers(rows)
			}
			columns, err := dataset.Columns(ds.Fields, []string{"name", "email", "age", "status", "role"})
			if err != nil {
				return err
			}

			selected, err := tui.RunDemo(tui.DemoOptions{
				Rows:    ds.Records,
				Columns: columns,
				Logger:  app.logger,
				Config:  app.tuiConfig(),
			})
			if err != nil {
				return cancelledOr(err)
			}
			for _, r := range selected {
				fmt.Fprintln(app.stdout, datatable.FormatValue(r[datatable.DefaultKeyField]))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "generate this many users instead of the five samples")
	return cmd
}
