// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"github.com/gridkit/gridkit/internal/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownOptions configures RenderMarkdown.
type MarkdownOptions struct {
	// Content is the markdown source.
	Content string
	// Width is the word wrap width (0 for no wrap).
	Width TerminalDimension
	// Plain renders without colors, for pipes and accessible output.
	Plain bool
	// Config supplies the theme provider.
	Config Config
}

// RenderMarkdown renders markdown with the glamour style matching the
// provider's mode.
func RenderMarkdown(opts MarkdownOptions) (string, error) {
	style := styles.LightStyle
	switch {
	case opts.Plain || opts.Config.Accessible:
		style = styles.NoTTYStyle
	case opts.Config.provider().Mode().IsDark():
		style = styles.DarkStyle
	}

	rendererOpts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(int(opts.Width)))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(opts.Content)
}
