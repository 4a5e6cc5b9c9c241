// SPDX-License-Identifier: MPL-2.0

package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors components draw with in one mode.
type Palette struct {
	// Primary is used for titles, focused borders and sort indicators.
	Primary lipgloss.Color
	// Accent is used for the checked state of checkboxes and switches.
	Accent lipgloss.Color
	// Text is the default foreground.
	Text lipgloss.Color
	// Muted is used for placeholders, helper text and footers.
	Muted lipgloss.Color
	// Border is used for unfocused borders and header rules.
	Border lipgloss.Color
	// Background is the canvas color.
	Background lipgloss.Color
	// Surface is the fill of the filled input variant.
	Surface lipgloss.Color
	// SelectedText and SelectedBackground style selected rows.
	SelectedText       lipgloss.Color
	SelectedBackground lipgloss.Color
	// Error is used for validation messages and invalid borders.
	Error lipgloss.Color
	// Success is used for positive status.
	Success lipgloss.Color
	// Disabled is used for disabled controls.
	Disabled lipgloss.Color
}

var (
	lightPalette = Palette{
		Primary:            lipgloss.Color("#7C3AED"),
		Accent:             lipgloss.Color("#3B82F6"),
		Text:               lipgloss.Color("#111827"),
		Muted:              lipgloss.Color("#6B7280"),
		Border:             lipgloss.Color("#D1D5DB"),
		Background:         lipgloss.Color("#FFFFFF"),
		Surface:            lipgloss.Color("#F3F4F6"),
		SelectedText:       lipgloss.Color("#1E3A8A"),
		SelectedBackground: lipgloss.Color("#DBEAFE"),
		Error:              lipgloss.Color("#DC2626"),
		Success:            lipgloss.Color("#059669"),
		Disabled:           lipgloss.Color("#9CA3AF"),
	}

	darkPalette = Palette{
		Primary:            lipgloss.Color("#A78BFA"),
		Accent:             lipgloss.Color("#60A5FA"),
		Text:               lipgloss.Color("#F9FAFB"),
		Muted:              lipgloss.Color("#9CA3AF"),
		Border:             lipgloss.Color("#4B5563"),
		Background:         lipgloss.Color("#1a1a2e"),
		Surface:            lipgloss.Color("#1F2937"),
		SelectedText:       lipgloss.Color("#FFFFFF"),
		SelectedBackground: lipgloss.Color("#7C3AED"),
		Error:              lipgloss.Color("#EF4444"),
		Success:            lipgloss.Color("#10B981"),
		Disabled:           lipgloss.Color("#6B7280"),
	}
)

// PaletteFor returns the palette of mode m. Unknown modes get the light palette.
func PaletteFor(m Mode) Palette {
	if m == ModeDark {
		return darkPalette
	}
	return lightPalette
}
