// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	// VariantOutlined draws a rounded border around the field.
	VariantOutlined Variant = "outlined"
	// VariantFilled fills the field and underlines it.
	VariantFilled Variant = "filled"
	// VariantGhost draws neither border nor fill.
	VariantGhost Variant = "ghost"

	// SizeSmall is a compact field.
	SizeSmall Size = "sm"
	// SizeMedium is the default field size.
	SizeMedium Size = "md"
	// SizeLarge is a wide, padded field.
	SizeLarge Size = "lg"

	// AppearanceAuto follows the theme provider.
	AppearanceAuto Appearance = "auto"
	// AppearanceLight forces the light palette.
	AppearanceLight Appearance = "light"
	// AppearanceDark forces the dark palette.
	AppearanceDark Appearance = "dark"

	requiredMarker = "*"
)

var (
	// ErrInvalidVariant is the sentinel error wrapped by InvalidVariantError.
	ErrInvalidVariant = errors.New("invalid input variant")
	// ErrInvalidSize is the sentinel error wrapped by InvalidSizeError.
	ErrInvalidSize = errors.New("invalid input size")
	// ErrInvalidAppearance is the sentinel error wrapped by InvalidAppearanceError.
	ErrInvalidAppearance = errors.New("invalid input appearance")
	// ErrRequired is returned by validation when a required field is empty.
	ErrRequired = errors.New("this field is required")
)

type (
	// Variant is the visual style of an input field.
	Variant string

	// Size is the dimension class of an input field.
	Size string

	// Appearance selects the palette of an input field.
	Appearance string

	// InvalidVariantError is returned when a Variant is unknown.
	// It wraps ErrInvalidVariant for errors.Is() compatibility.
	InvalidVariantError struct {
		Value Variant
	}

	// InvalidSizeError is returned when a Size is unknown.
	// It wraps ErrInvalidSize for errors.Is() compatibility.
	InvalidSizeError struct {
		Value Size
	}

	// InvalidAppearanceError is returned when an Appearance is unknown.
	// It wraps ErrInvalidAppearance for errors.Is() compatibility.
	InvalidAppearanceError struct {
		Value Appearance
	}

	// InputFieldOptions configures the InputField component.
	InputFieldOptions struct {
		// Label is displayed above the field.
		Label string
		// Placeholder is shown while the field is empty.
		Placeholder string
		// HelperText is shown below the field unless an error is shown.
		HelperText string
		// ErrorMessage is shown below the field while it is invalid.
		ErrorMessage string
		// Value is the initial value.
		Value string
		// Required marks the label and rejects an empty value on submit.
		Required bool
		// Invalid starts the field in the invalid state.
		Invalid bool
		// Disabled ignores all input except cancellation.
		Disabled bool
		// Password hides the typed characters.
		Password bool
		// CharLimit limits the number of characters (0 for no limit).
		CharLimit int
		// Variant selects the visual style (default outlined).
		Variant Variant
		// Size selects the dimension class (default md).
		Size Size
		// Appearance selects the palette (default auto).
		Appearance Appearance
		// Width overrides the width implied by Size.
		Width TerminalDimension
		// Validate checks the value on submit. A non-nil error marks the
		// field invalid and becomes its error message.
		Validate func(string) error
		// Config holds common TUI configuration.
		Config Config
	}

	// inputFieldModel implements EmbeddableComponent and Focusable for a
	// single-line input.
	inputFieldModel struct {
		input     textinput.Model
		opts      InputFieldOptions
		provider  *theme.Provider
		errMsg    string
		invalid   bool
		width     int
		done      bool
		cancelled bool
	}

	// InputFieldBuilder provides a fluent API for building InputField prompts.
	InputFieldBuilder struct {
		opts InputFieldOptions
	}

	sizeSpec struct {
		width    int
		padTopY  int
		padSideX int
	}
)

var sizeSpecs = map[Size]sizeSpec{
	SizeSmall:  {width: 20},
	SizeMedium: {width: 32, padSideX: 1},
	SizeLarge:  {width: 48, padTopY: 1, padSideX: 2},
}

// String returns the string representation of the Variant.
func (v Variant) String() string { return string(v) }

// IsValid returns whether the Variant is one of the defined variants.
func (v Variant) IsValid() (bool, []error) {
	switch v {
	case VariantOutlined, VariantFilled, VariantGhost:
		return true, nil
	default:
		return false, []error{&InvalidVariantError{Value: v}}
	}
}

// String returns the string representation of the Size.
func (s Size) String() string { return string(s) }

// IsValid returns whether the Size is one of the defined sizes.
func (s Size) IsValid() (bool, []error) {
	if _, ok := sizeSpecs[s]; ok {
		return true, nil
	}
	return false, []error{&InvalidSizeError{Value: s}}
}

// String returns the string representation of the Appearance.
func (a Appearance) String() string { return string(a) }

// IsValid returns whether the Appearance is one of the defined appearances.
func (a Appearance) IsValid() (bool, []error) {
	switch a {
	case AppearanceAuto, AppearanceLight, AppearanceDark:
		return true, nil
	default:
		return false, []error{&InvalidAppearanceError{Value: a}}
	}
}

// Error implements the error interface for InvalidVariantError.
func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid input variant %q (valid: outlined, filled, ghost)", e.Value)
}

// Unwrap returns ErrInvalidVariant for errors.Is() compatibility.
func (e *InvalidVariantError) Unwrap() error { return ErrInvalidVariant }

// Error implements the error interface for InvalidSizeError.
func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid input size %q (valid: sm, md, lg)", e.Value)
}

// Unwrap returns ErrInvalidSize for errors.Is() compatibility.
func (e *InvalidSizeError) Unwrap() error { return ErrInvalidSize }

// Error implements the error interface for InvalidAppearanceError.
func (e *InvalidAppearanceError) Error() string {
	return fmt.Sprintf("invalid input appearance %q (valid: auto, light, dark)", e.Value)
}

// Unwrap returns ErrInvalidAppearance for errors.Is() compatibility.
func (e *InvalidAppearanceError) Unwrap() error { return ErrInvalidAppearance }

// NewInputFieldModel creates an embeddable input field. Empty Variant, Size
// and Appearance take their defaults; unknown ones are rejected.
func NewInputFieldModel(opts InputFieldOptions) (*inputFieldModel, error) {
	if opts.Variant == "" {
		opts.Variant = VariantOutlined
	}
	if opts.Size == "" {
		opts.Size = SizeMedium
	}
	if opts.Appearance == "" {
		opts.Appearance = AppearanceAuto
	}
	var errs []error
	for _, check := range []func() (bool, []error){opts.Variant.IsValid, opts.Size.IsValid, opts.Appearance.IsValid, opts.Width.IsValid} {
		if ok, e := check(); !ok {
			errs = append(errs, e...)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.SetValue(opts.Value)
	ti.Prompt = ""
	if opts.CharLimit > 0 {
		ti.CharLimit = opts.CharLimit
	}
	if opts.Password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	m := &inputFieldModel{
		input:    ti,
		opts:     opts,
		provider: opts.Config.provider(),
		errMsg:   opts.ErrorMessage,
		invalid:  opts.Invalid,
		width:    opts.Width.Or(opts.Config.Width.Or(sizeSpecs[opts.Size].width)),
	}
	m.input.Width = m.innerWidth()
	return m, nil
}

// Init implements tea.Model.
func (m *inputFieldModel) Init() tea.Cmd {
	if m.opts.Disabled {
		return nil
	}
	return m.input.Focus()
}

// Update implements tea.Model.
func (m *inputFieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case keyCtrlC, keyEsc:
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case keyEnter:
			if m.opts.Disabled {
				return m, nil
			}
			if m.Validate() {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
		if m.opts.Disabled || !m.input.Focused() {
			return m, nil
		}
	case tea.WindowSizeMsg:
		if m.opts.Width == 0 && m.opts.Config.Width == 0 {
			m.SetSize(TerminalDimension(min(msg.Width, sizeSpecs[m.opts.Size].width)), 0)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *inputFieldModel) View() string {
	if m.done {
		return ""
	}
	p := m.palette()

	lines := make([]string, 0, 3)
	if m.opts.Label != "" {
		label := lipgloss.NewStyle().Bold(true).Foreground(p.Text).Render(m.opts.Label)
		if m.opts.Required {
			label += " " + errorStyle(p).Render(requiredMarker)
		}
		lines = append(lines, label)
	}

	lines = append(lines, m.boxStyle(p).Render(m.input.View()))

	switch {
	case m.invalid && m.errMsg != "":
		lines = append(lines, errorStyle(p).Render(m.errMsg))
	case m.opts.HelperText != "":
		lines = append(lines, mutedStyle(p).Render(m.opts.HelperText))
	}
	return strings.Join(lines, "\n")
}

// IsDone implements EmbeddableComponent.
func (m *inputFieldModel) IsDone() bool {
	return m.done
}

// Result implements EmbeddableComponent.
// Returns ErrCancelled if the user cancelled the operation.
func (m *inputFieldModel) Result() (any, error) {
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.input.Value(), nil
}

// Cancelled implements EmbeddableComponent.
func (m *inputFieldModel) Cancelled() bool {
	return m.cancelled
}

// SetSize implements EmbeddableComponent. Only the width is used.
func (m *inputFieldModel) SetSize(width, _ TerminalDimension) {
	if width > 0 {
		m.width = int(width)
		m.input.Width = m.innerWidth()
	}
}

// Focus implements Focusable. A disabled field does not take focus.
func (m *inputFieldModel) Focus() tea.Cmd {
	if m.opts.Disabled {
		return nil
	}
	return m.input.Focus()
}

// Blur implements Focusable.
func (m *inputFieldModel) Blur() {
	m.input.Blur()
}

// Focused implements Focusable.
func (m *inputFieldModel) Focused() bool {
	return m.input.Focused()
}

// Value returns the current text.
func (m *inputFieldModel) Value() string {
	return m.input.Value()
}

// Invalid reports whether the field shows its error state.
func (m *inputFieldModel) Invalid() bool {
	return m.invalid
}

// Validate runs the required check and the Validate option against the
// current value, updates the error state and reports whether it passed.
func (m *inputFieldModel) Validate() bool {
	err := m.check(m.input.Value())
	if err == nil {
		m.invalid = false
		m.errMsg = m.opts.ErrorMessage
		return true
	}
	m.invalid = true
	m.errMsg = err.Error()
	return false
}

func (m *inputFieldModel) check(value string) error {
	if m.opts.Required && strings.TrimSpace(value) == "" {
		return ErrRequired
	}
	if m.opts.Validate != nil {
		return m.opts.Validate(value)
	}
	return nil
}

func (m *inputFieldModel) palette() theme.Palette {
	switch m.opts.Appearance {
	case AppearanceLight:
		return theme.PaletteFor(theme.ModeLight)
	case AppearanceDark:
		return theme.PaletteFor(theme.ModeDark)
	default:
		return m.provider.Palette()
	}
}

// boxStyle maps variant, size and state to the field's frame.
func (m *inputFieldModel) boxStyle(p theme.Palette) lipgloss.Style {
	spec := sizeSpecs[m.opts.Size]

	accent := p.Border
	switch {
	case m.opts.Disabled:
		accent = p.Disabled
	case m.invalid:
		accent = p.Error
	case m.input.Focused():
		accent = p.Primary
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(spec.padTopY, spec.padSideX).
		Foreground(p.Text)
	if m.opts.Disabled {
		style = style.Foreground(p.Disabled)
	}

	switch m.opts.Variant {
	case VariantFilled:
		style = style.
			Background(p.Surface).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(accent)
	case VariantGhost:
		if m.invalid {
			style = style.Foreground(p.Error)
		}
	default:
		style = style.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent)
	}
	return style
}

// innerWidth is the text width left inside the frame.
func (m *inputFieldModel) innerWidth() int {
	spec := sizeSpecs[m.opts.Size]
	return max(1, m.width-2*spec.padSideX-1)
}

// InputField prompts for a single value. In accessible mode the prompt is
// a plain line-based form; otherwise it runs the themed field.
func InputField(opts InputFieldOptions) (string, error) {
	if opts.Config.Accessible {
		return accessibleInput(opts)
	}

	model, err := NewInputFieldModel(opts)
	if err != nil {
		return "", err
	}
	p := tea.NewProgram(model, tea.WithOutput(getOutputWriter(opts.Config)))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, err := finalModel.(*inputFieldModel).Result()
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func accessibleInput(opts InputFieldOptions) (string, error) {
	value := opts.Value
	title := opts.Label
	if opts.Required {
		title += " " + requiredMarker
	}

	in := huh.NewInput().
		Title(title).
		Description(opts.HelperText).
		Placeholder(opts.Placeholder).
		Value(&value)
	if opts.CharLimit > 0 {
		in = in.CharLimit(opts.CharLimit)
	}
	if opts.Password {
		in = in.EchoMode(huh.EchoModePassword)
	}
	probe := &inputFieldModel{opts: opts}
	in = in.Validate(probe.check)

	form := huh.NewForm(huh.NewGroup(in)).
		WithAccessible(true).
		WithOutput(getOutputWriter(opts.Config))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	return value, nil
}

// NewInputField creates a new InputFieldBuilder with default options.
func NewInputField() *InputFieldBuilder {
	return &InputFieldBuilder{
		opts: InputFieldOptions{
			Variant:    VariantOutlined,
			Size:       SizeMedium,
			Appearance: AppearanceAuto,
			Config:     DefaultConfig(),
		},
	}
}

// Label sets the label.
func (b *InputFieldBuilder) Label(label string) *InputFieldBuilder {
	b.opts.Label = label
	return b
}

// Placeholder sets the placeholder text.
func (b *InputFieldBuilder) Placeholder(placeholder string) *InputFieldBuilder {
	b.opts.Placeholder = placeholder
	return b
}

// HelperText sets the helper text.
func (b *InputFieldBuilder) HelperText(text string) *InputFieldBuilder {
	b.opts.HelperText = text
	return b
}

// Value sets the initial value.
func (b *InputFieldBuilder) Value(value string) *InputFieldBuilder {
	b.opts.Value = value
	return b
}

// Required marks the field as required.
func (b *InputFieldBuilder) Required() *InputFieldBuilder {
	b.opts.Required = true
	return b
}

// Password enables password mode (hidden input).
func (b *InputFieldBuilder) Password() *InputFieldBuilder {
	b.opts.Password = true
	return b
}

// CharLimit sets the character limit.
func (b *InputFieldBuilder) CharLimit(limit int) *InputFieldBuilder {
	b.opts.CharLimit = limit
	return b
}

// Variant sets the visual style.
func (b *InputFieldBuilder) Variant(v Variant) *InputFieldBuilder {
	b.opts.Variant = v
	return b
}

// Size sets the dimension class.
func (b *InputFieldBuilder) Size(s Size) *InputFieldBuilder {
	b.opts.Size = s
	return b
}

// Appearance sets the palette selection.
func (b *InputFieldBuilder) Appearance(a Appearance) *InputFieldBuilder {
	b.opts.Appearance = a
	return b
}

// Validate sets the submit validation.
func (b *InputFieldBuilder) Validate(fn func(string) error) *InputFieldBuilder {
	b.opts.Validate = fn
	return b
}

// Config replaces the common TUI configuration.
func (b *InputFieldBuilder) Config(cfg Config) *InputFieldBuilder {
	b.opts.Config = cfg
	return b
}

// Run executes the prompt and returns the entered value.
func (b *InputFieldBuilder) Run() (string, error) {
	return InputField(b.opts)
}

// Model returns the embeddable model for composition.
func (b *InputFieldBuilder) Model() (EmbeddableComponent, error) {
	m, err := NewInputFieldModel(b.opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}
