// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown(MarkdownOptions{
		Content: "# DataTable\n\nSortable **columns**.",
		Width:   60,
		Plain:   true,
		Config:  testConfig(),
	})
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	for _, want := range []string{"DataTable", "Sortable", "columns"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**") {
		t.Errorf("emphasis markers were not rendered:\n%s", out)
	}
}
