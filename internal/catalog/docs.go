// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"embed"
	"errors"
	"fmt"

	"github.com/gridkit/gridkit/internal/tui"
)

//go:embed docs/*.md
var docsFS embed.FS

// Docs returns the markdown documentation of ct.
func Docs(ct tui.ComponentType) (string, error) {
	if ok, errs := ct.IsValid(); !ok {
		return "", errors.Join(errs...)
	}
	data, err := docsFS.ReadFile("docs/" + ct.String() + ".md")
	if err != nil {
		return "", fmt.Errorf("read docs for %s: %w", ct, err)
	}
	return string(data), nil
}

// RenderDocs renders the documentation of ct as terminal markdown.
func RenderDocs(ct tui.ComponentType, cfg tui.Config, plain bool) (string, error) {
	md, err := Docs(ct)
	if err != nil {
		return "", err
	}
	return tui.RenderMarkdown(tui.MarkdownOptions{
		Content: md,
		Width:   cfg.Width,
		Plain:   plain,
		Config:  cfg,
	})
}
