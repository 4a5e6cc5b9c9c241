// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ErrUnknownIssue is returned by Lookup for an unregistered Id.
var ErrUnknownIssue = errors.New("unknown issue")

const (
	// DatasetNotFoundId: the dataset file does not exist.
	DatasetNotFoundId Id = iota + 1
	// UnknownFormatId: the dataset format could not be determined.
	UnknownFormatId
	// NotTabularId: the document is not a list of rows.
	NotTabularId
	// UnknownColumnId: a flag names a column the dataset lacks.
	UnknownColumnId
	// QueryFailedId: the SQLite query failed.
	QueryFailedId
	// ConfigLoadFailedId: the configuration file is missing or invalid.
	ConfigLoadFailedId
	// NotATerminalId: an interactive command ran without a terminal.
	NotATerminalId
	// UnknownStoryId: the catalog has no story of that name.
	UnknownStoryId
)

type (
	// Id identifies a documented issue.
	Id int

	// MarkdownMsg is Markdown guidance text.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a documented recurring problem.
	Issue struct {
		id       Id
		title    string
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// render is replaced in tests.
var render = glamour.Render

// Id returns the issue identifier.
func (i *Issue) Id() Id { return i.id }

// Title returns the one-line summary.
func (i *Issue) Title() string { return i.title }

// MarkdownMsg returns the raw guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns the documentation links.
func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Markdown returns the full document: title, guidance and links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(i.title)
	sb.WriteString("\n")
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("\n- <")
			sb.WriteString(string(link))
			sb.WriteString(">")
		}
	}
	return sb.String()
}

// Render renders the issue with a glamour standard style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var issues = map[Id]*Issue{
	DatasetNotFoundId: {
		id:    DatasetNotFoundId,
		title: "Dataset not found",
		mdMsg: `
The file passed to ` + "`gridkit table`" + ` does not exist or cannot be read.

## Things you can try
- Check the path, relative paths resolve from the current directory.
- Read from standard input with ` + "`-`" + ` and an explicit format:
~~~
$ cat users.csv | gridkit table - --format csv
~~~`,
	},
	UnknownFormatId: {
		id:    UnknownFormatId,
		title: "Unknown dataset format",
		mdMsg: `
The format is taken from the file extension. Recognized extensions are
` + "`.csv`, `.tsv`, `.json`, `.yaml`, `.yml`, `.toml`, `.db`, `.sqlite`" + `,
optionally followed by ` + "`.gz` or `.zst`" + `.

## Things you can try
- Name the format explicitly: ` + "`--format csv`",
	},
	NotTabularId: {
		id:    NotTabularId,
		title: "Document is not a table",
		mdMsg: `
JSON and YAML documents must be a list of objects, or an object with a
` + "`rows`" + ` list. TOML documents must hold ` + "`[[rows]]`" + ` tables.

~~~yaml
rows:
  - id: 1
    name: John Doe
~~~`,
	},
	UnknownColumnId: {
		id:    UnknownColumnId,
		title: "Unknown column",
		mdMsg: `
A column named by ` + "`--columns`, `--sort` or `--key`" + ` is not a field of the dataset.
Field names are case sensitive.

## Things you can try
- Run with ` + "`--plain`" + ` and no ` + "`--columns`" + ` to see every field.`,
	},
	QueryFailedId: {
		id:    QueryFailedId,
		title: "SQLite query failed",
		mdMsg: `
The database is opened read-only, so only ` + "`SELECT`" + ` statements succeed.

## Things you can try
- Check table and column names with ` + "`SELECT name FROM sqlite_master`" + `.`,
		docLinks: []HttpLink{"https://www.sqlite.org/lang_select.html"},
	},
	ConfigLoadFailedId: {
		id:    ConfigLoadFailedId,
		title: "Configuration could not be loaded",
		mdMsg: `
The configuration file is CUE, validated against the built-in schema.

## Things you can try
- Print the effective configuration: ` + "`gridkit config show`" + `
- Print where the file is looked up: ` + "`gridkit config path`",
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	},
	NotATerminalId: {
		id:    NotATerminalId,
		title: "No terminal available",
		mdMsg: `
Interactive views need a terminal on standard input and output.

## Things you can try
- Use ` + "`--plain`" + ` to print the table instead.
- Set ` + "`ACCESSIBLE=1`" + ` for line-based prompts.`,
	},
	UnknownStoryId: {
		id:    UnknownStoryId,
		title: "Unknown story",
		mdMsg: `
Run ` + "`gridkit catalog`" + ` without arguments to list the stories.`,
	},
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// Lookup returns the issue for id or ErrUnknownIssue.
func Lookup(id Id) (*Issue, error) {
	if i, ok := issues[id]; ok {
		return i, nil
	}
	return nil, ErrUnknownIssue
}

// Values returns every issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}
