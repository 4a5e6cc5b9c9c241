// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/gridkit/gridkit/internal/tui"

	"github.com/spf13/cobra"
)

// inputFlags holds the flags of `gridkit input`.
type inputFlags struct {
	label       string
	placeholder string
	helper      string
	value       string
	required    bool
	password    bool
	charLimit   int
	variant     string
	size        string
	appearance  string
}

func newInputCommand(app *App) *cobra.Command {
	flags := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "input",
		Short: "Prompt for a single value with a themed input field",
		Long: `Prompt for a single value with a themed input field and print it.

The prompt is drawn on stderr, so the value can be captured:

  name=$(gridkit input --label Name --required)

When stdin is not a terminal, or ACCESSIBLE is set, a plain line-based
prompt is used instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options()
			if err != nil {
				return usageError(err)
			}
			cfg := app.tuiConfig()
			cfg.Output = app.stderr
			opts.Config = cfg

			value, err := tui.InputField(opts)
			if err != nil {
				return cancelledOr(err)
			}
			fmt.Fprintln(app.stdout, value)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.label, "label", "Value", "label shown above the field")
	f.StringVar(&flags.placeholder, "placeholder", "", "placeholder shown while empty")
	f.StringVar(&flags.helper, "helper", "", "helper text shown below the field")
	f.StringVar(&flags.value, "value", "", "initial value")
	f.BoolVar(&flags.required, "required", false, "reject an empty value")
	f.BoolVar(&flags.password, "password", false, "mask the typed characters")
	f.IntVar(&flags.charLimit, "char-limit", 0, "maximum number of characters (0 for no limit)")
	f.StringVar(&flags.variant, "variant", string(tui.VariantOutlined), "outlined, filled or ghost")
	f.StringVar(&flags.size, "size", string(tui.SizeMedium), "sm, md or lg")
	f.StringVar(&flags.appearance, "appearance", string(tui.AppearanceAuto), "auto, light or dark")
	return cmd
}

// options validates the flags and converts them to field options.
func (flags *inputFlags) options() (tui.InputFieldOptions, error) {
	opts := tui.InputFieldOptions{
		Label:       flags.label,
		Placeholder: flags.placeholder,
		HelperText:  flags.helper,
		Value:       flags.value,
		Required:    flags.required,
		Password:    flags.password,
		CharLimit:   flags.charLimit,
		Variant:     tui.Variant(flags.variant),
		Size:        tui.Size(flags.size),
		Appearance:  tui.Appearance(flags.appearance),
	}

	var errs []error
	for _, check := range []func() (bool, []error){opts.Variant.IsValid, opts.Size.IsValid, opts.Appearance.IsValid} {
		if ok, e := check(); !ok {
			errs = append(errs, e...)
		}
	}
	if flags.charLimit < 0 {
		errs = append(errs, fmt.Errorf("char limit must not be negative, got %d", flags.charLimit))
	}
	return opts, errors.Join(errs...)
}
