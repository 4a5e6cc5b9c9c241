// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestIssuesRegistry(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != int(UnknownStoryId) {
		t.Fatalf("Values() has %d issues, want %d", len(all), UnknownStoryId)
	}
	for i, is := range all {
		if is.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, is.Id(), i+1)
		}
		if is.Title() == "" || strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no content", is.Id())
		}
		if Get(is.Id()) != is {
			t.Errorf("Get(%d) does not return the registered issue", is.Id())
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	if _, err := Lookup(QueryFailedId); err != nil {
		t.Errorf("Lookup(QueryFailedId) error = %v", err)
	}
	if _, err := Lookup(Id(999)); !errors.Is(err, ErrUnknownIssue) {
		t.Errorf("Lookup(999) error = %v, want ErrUnknownIssue", err)
	}
	if Get(Id(0)) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(QueryFailedId).Markdown()
	for _, want := range []string{"# SQLite query failed", "## See also", "<https://www.sqlite.org/lang_select.html>"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(Get(UnknownStoryId).Markdown(), "See also") {
		t.Error("issue without links should have no See also section")
	}

	links := Get(QueryFailedId).DocLinks()
	links[0] = "mutated"
	if Get(QueryFailedId).DocLinks()[0] == "mutated" {
		t.Error("DocLinks() must return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		out, err := is.Render("notty")
		if err != nil {
			t.Errorf("Render(%d) error = %v", is.Id(), err)
			continue
		}
		if !strings.Contains(out, is.Title()) {
			t.Errorf("Render(%d) output lacks title %q", is.Id(), is.Title())
		}
	}
}
