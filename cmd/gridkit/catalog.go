// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/gridkit/gridkit/internal/catalog"
	"github.com/gridkit/gridkit/internal/issue"
	"github.com/gridkit/gridkit/internal/tui"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newCatalogCommand(app *App) *cobra.Command {
	var (
		docs      bool
		component string
	)
	cmd := &cobra.Command{
		Use:   "catalog [story|component]",
		Short: "List and render component stories",
		Long: `List and render component stories.

Without arguments the stories are listed. With a story name the story is
rendered once. With --docs the documentation of the story's component, or
of the named component, is shown.`,
		Example: `  gridkit catalog
  gridkit catalog --component input
  gridkit catalog datatable/products --theme dark
  gridkit catalog datatable --docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := tui.ComponentType(component)
			if ct != "" {
				if ok, errs := ct.IsValid(); !ok {
					return usageError(errs[0])
				}
			}
			if len(args) == 0 {
				if docs {
					if ct == "" {
						return usageError(errors.New("--docs needs a story or a component"))
					}
					return printDocs(app, ct)
				}
				return listStories(app, ct)
			}

			name := args[0]
			if docs {
				if named := tui.ComponentType(name); isComponent(named) {
					return printDocs(app, named)
				}
			}
			story, err := app.Catalog.Lookup(name)
			if err != nil {
				return unknownStoryError(err)
			}
			if docs {
				return printDocs(app, story.Component)
			}

			out, err := app.Catalog.Render(story.Name, app.tuiConfig())
			if err != nil {
				return err
			}
			app.logger.Debug("rendered story", "story", story.Name, "theme", app.provider.Mode())
			fmt.Fprintln(app.stdout, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&docs, "docs", false, "show the component documentation")
	cmd.Flags().StringVar(&component, "component", "", "only list stories of this component (datatable, input, theme-toggle)")
	return cmd
}

func listStories(app *App, ct tui.ComponentType) error {
	stories := app.Catalog.Stories()
	if ct != "" {
		stories = app.Catalog.ByComponent(ct)
	}

	st := stylesFor(app.provider)
	t := ltable.New().
		Border(lipgloss.HiddenBorder()).
		Headers("STORY", "COMPONENT", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return st.Header
			case col == 0:
				return st.Key.Padding(0, 1)
			default:
				return st.Cell
			}
		})
	for _, s := range stories {
		t.Row(s.Name, s.Component.String(), s.Description)
	}
	fmt.Fprintln(app.stdout, t.Render())
	return nil
}

func printDocs(app *App, ct tui.ComponentType) error {
	out, err := catalog.RenderDocs(ct, app.tuiConfig(), !isTerminal(app.stdout))
	if err != nil {
		return err
	}
	fmt.Fprint(app.stdout, out)
	return nil
}

func isComponent(ct tui.ComponentType) bool {
	ok, _ := ct.IsValid()
	return ok
}

func unknownStoryError(err error) error {
	b := issue.NewErrorContext().
		WithOperation("render story").
		WithIssue(issue.UnknownStoryId)
	var unknown *catalog.UnknownStoryError
	if errors.As(err, &unknown) {
		b.WithResource(unknown.Name)
		if unknown.Suggestion != "" {
			b.WithSuggestion(fmt.Sprintf("Did you mean %q?", unknown.Suggestion))
		}
	}
	return usageError(b.Wrap(err).BuildError())
}
