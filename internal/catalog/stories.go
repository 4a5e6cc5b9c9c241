// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"

	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/tui"
)

const (
	lowStockThreshold = 20
	largeDatasetSize  = 50
)

func builtinStories() []Story {
	var stories []Story
	stories = append(stories, inputStories()...)
	stories = append(stories, Story{
		Name:        "theme-toggle/default",
		Component:   tui.ComponentTypeThemeToggle,
		Description: "Switch between the light and dark appearance",
		Render: func(cfg tui.Config) (string, error) {
			m := tui.NewThemeToggleModel(cfg)
			m.Blur()
			return m.View(), nil
		},
	})
	stories = append(stories, tableStories()...)
	return stories
}

func inputStory(name, description string, opts tui.InputFieldOptions) Story {
	return Story{
		Name:        "input/" + name,
		Component:   tui.ComponentTypeInput,
		Description: description,
		Render: func(cfg tui.Config) (string, error) {
			// The field width follows its size class.
			cfg.Width = 0
			opts.Config = cfg
			m, err := tui.NewInputFieldModel(opts)
			if err != nil {
				return "", err
			}
			m.Blur()
			return m.View(), nil
		},
	}
}

func inputStories() []Story {
	email := tui.InputFieldOptions{
		Label:       "Email",
		Placeholder: "Enter your email",
		HelperText:  "We'll never share your email with anyone else.",
	}
	variant := func(v tui.Variant) tui.InputFieldOptions {
		return tui.InputFieldOptions{Label: dataset.Title(v.String()) + " Input", Placeholder: "Type here", Variant: v}
	}
	size := func(s tui.Size) tui.InputFieldOptions {
		return tui.InputFieldOptions{Label: "Size " + s.String(), Placeholder: "Type here", Size: s}
	}

	return []Story{
		inputStory("default", "Labelled field with placeholder and helper text", email),
		inputStory("with-value", "Field with an initial value", tui.InputFieldOptions{
			Label: "Username",
			Value: "john_doe",
		}),
		inputStory("required", "Required field marked with an asterisk", tui.InputFieldOptions{
			Label:       "Full Name",
			Placeholder: "Enter your full name",
			Required:    true,
		}),
		inputStory("invalid", "Field showing a validation error", tui.InputFieldOptions{
			Label:        "Email",
			Value:        "invalid-email",
			Invalid:      true,
			ErrorMessage: "Please enter a valid email address",
		}),
		inputStory("disabled", "Field that does not accept input", tui.InputFieldOptions{
			Label:    "Disabled Field",
			Value:    "Cannot edit this",
			Disabled: true,
		}),
		inputStory("outlined", "Outlined variant", variant(tui.VariantOutlined)),
		inputStory("filled", "Filled variant", variant(tui.VariantFilled)),
		inputStory("ghost", "Ghost variant", variant(tui.VariantGhost)),
		inputStory("small", "Small size", size(tui.SizeSmall)),
		inputStory("medium", "Medium size", size(tui.SizeMedium)),
		inputStory("large", "Large size", size(tui.SizeLarge)),
		inputStory("password", "Masked password field", tui.InputFieldOptions{
			Label:      "Password",
			Value:      "hunter22",
			HelperText: "At least 8 characters.",
			Password:   true,
		}),
	}
}

func tableStory(name, description string, build func() (tui.DataTableOptions, error)) Story {
	return Story{
		Name:        "datatable/" + name,
		Component:   tui.ComponentTypeDataTable,
		Description: description,
		Render: func(cfg tui.Config) (string, error) {
			opts, err := build()
			if err != nil {
				return "", err
			}
			opts.Config = cfg
			m, err := tui.NewDataTableModel(opts)
			if err != nil {
				return "", err
			}
			defer m.Close()
			m.Blur()
			return m.View(), nil
		},
	}
}

// usersTable returns options showing ds with the given column order.
func usersTable(ds *dataset.Dataset, order ...string) (tui.DataTableOptions, error) {
	columns, err := dataset.Columns(ds.Fields, order)
	if err != nil {
		return tui.DataTableOptions{}, err
	}
	return tui.DataTableOptions{Title: "Users", Rows: ds.Records, Columns: columns}, nil
}

func tableStories() []Story {
	return []Story{
		tableStory("default", "Sortable users table", func() (tui.DataTableOptions, error) {
			return usersTable(dataset.SampleUsers())
		}),
		tableStory("sorted", "Users sorted by age, descending", func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.SampleUsers())
			opts.Sort = datatable.SortState{Column: "age", Direction: datatable.SortDescending}
			return opts, err
		}),
		tableStory("with-selection", "Selectable rows with two users preselected", func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.SampleUsers())
			opts.Selectable = true
			opts.Selected = []any{int64(1), int64(3)}
			return opts, err
		}),
		tableStory("loading", "Loading placeholder", func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.SampleUsers())
			opts.Rows = nil
			opts.Loading = true
			return opts, err
		}),
		tableStory("empty", "Table without rows", func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.SampleUsers())
			opts.Rows = nil
			opts.EmptyMessage = "No users found. Try adjusting your search criteria."
			return opts, err
		}),
		tableStory("products", "Custom cell rendering", func() (tui.DataTableOptions, error) {
			ds := dataset.SampleProducts()
			return tui.DataTableOptions{
				Title:      "Products",
				Rows:       ds.Records,
				Columns:    productColumns(),
				Selectable: true,
			}, nil
		}),
		tableStory("large", fmt.Sprintf("%d generated users", largeDatasetSize), func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.GenerateUsers(largeDatasetSize))
			opts.Selectable = true
			opts.Height = 12
			return opts, err
		}),
		tableStory("minimal-columns", "Only the name and email columns", func() (tui.DataTableOptions, error) {
			return usersTable(dataset.SampleUsers(), "name", "email")
		}),
		tableStory("custom-row-key", "Rows identified by email", func() (tui.DataTableOptions, error) {
			opts, err := usersTable(dataset.SampleUsers(), "name", "email", "role")
			opts.Key = datatable.KeyByField("email")
			opts.Selectable = true
			opts.Selected = []any{"jane.smith@example.com"}
			return opts, err
		}),
	}
}

func productColumns() []datatable.Column[datatable.Record] {
	field := func(key string) func(datatable.Record) any {
		return func(r datatable.Record) any { return r[key] }
	}
	return []datatable.Column[datatable.Record]{
		datatable.FieldColumn("name", "Product Name"),
		datatable.FieldColumn("category", "Category"),
		{
			Key:      "price",
			Title:    "Price",
			Value:    field("price"),
			Sortable: true,
			Render: func(v any, _ datatable.Record, _ int) string {
				price, _ := v.(float64)
				return fmt.Sprintf("$%.2f", price)
			},
		},
		{
			Key:      "stock",
			Title:    "Stock",
			Value:    field("stock"),
			Sortable: true,
			Render: func(v any, _ datatable.Record, _ int) string {
				stock, _ := v.(int64)
				if stock < lowStockThreshold {
					return fmt.Sprintf("%d ⚠", stock)
				}
				return fmt.Sprintf("%d", stock)
			},
		},
		{
			Key:      "rating",
			Title:    "Rating",
			Value:    field("rating"),
			Sortable: true,
			Render: func(v any, _ datatable.Record, _ int) string {
				rating, _ := v.(float64)
				return fmt.Sprintf("★ %.1f", rating)
			},
		},
		{
			Key:   "featured",
			Title: "Featured",
			Value: field("featured"),
			Render: func(v any, _ datatable.Record, _ int) string {
				if featured, _ := v.(bool); featured {
					return "⭐"
				}
				return ""
			},
		},
	}
}
