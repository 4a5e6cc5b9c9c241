// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"regexp"
	"strings"
	"testing"
)

const usersCSV = `id,name,email,age
1,John Doe,john@example.com,30
2,Jane Smith,jane@example.com,25
3,Bob Johnson,bob@example.com,35
`

func TestTable_PlainSortScenario(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort  string
		order string
	}{
		{"", `(?s)John Doe.*Jane Smith.*Bob Johnson`},
		{"name", `(?s)Bob Johnson.*Jane Smith.*John Doe`},
		{"name:desc", `(?s)John Doe.*Jane Smith.*Bob Johnson`},
		{"age:asc", `(?s)Jane Smith.*John Doe.*Bob Johnson`},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runCLI(t, nil, usersCSV, "table", "-", "--format", "csv", "--plain", "--sort", tt.sort)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
			}
			if !regexp.MustCompile(tt.order).MatchString(stdout) {
				t.Errorf("rows not in order %s:\n%s", tt.order, stdout)
			}
		})
	}
}

func TestTable_PlainSelection(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, nil, usersCSV, "table", "-", "--format", "csv", "--plain", "--select", "1,2,3")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "3 selected: 1, 2, 3") {
		t.Errorf("stdout:\n%s", stdout)
	}
	if strings.Contains(stdout, checkboxUnchecked) {
		t.Errorf("every row and the header should be checked:\n%s", stdout)
	}

	// Unknown identities are ignored.
	_, stdout, _ = runCLI(t, nil, usersCSV, "table", "-", "--format", "csv", "--plain", "--select", "9")
	if strings.Contains(stdout, "selected") {
		t.Errorf("stdout:\n%s", stdout)
	}
}

func TestTable_PlainTruncatesCells(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 80)
	code, stdout, _ := runCLI(t, nil, "id,note\n1,"+long+"\n", "table", "-", "--format", "csv", "--plain")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(stdout, long) || !strings.Contains(stdout, "…") {
		t.Errorf("long cell was not truncated:\n%s", stdout)
	}
}

func TestTable_NoSource(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, nil, "", "table", "--plain")
	if code == 0 {
		t.Fatal("table without a source succeeded")
	}
	if !strings.Contains(stderr, "format is required") {
		t.Errorf("stderr:\n%s", stderr)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	if got := splitList("  "); got != nil {
		t.Errorf("splitList(blank) = %v, want nil", got)
	}
	if got := splitList("a,b"); len(got) != 2 {
		t.Errorf("splitList(a,b) = %v", got)
	}
}

func TestFitCell(t *testing.T) {
	t.Parallel()

	if got := fitCell("a\nb", 10); got != "a b" {
		t.Errorf("fitCell() = %q, want newlines flattened", got)
	}
	if got := fitCell("abcdef", 0); got != "abcdef" {
		t.Errorf("fitCell(max 0) = %q, want unchanged", got)
	}
	if got := fitCell("abcdef", 4); got != "abc…" {
		t.Errorf("fitCell(max 4) = %q, want abc…", got)
	}
}

func TestTable_PlainSelectionByPosition(t *testing.T) {
	t.Parallel()

	const noKey = "name,age\nAda,36\nBen,41\nCy,29\n"
	code, stdout, stderr := runCLI(t, nil, noKey, "table", "-", "--format", "csv", "--plain", "--select", "0,2")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout, "2 selected: 0, 2") {
		t.Errorf("stdout:\n%s", stdout)
	}
	if !regexp.MustCompile(`\[x\].*Cy`).MatchString(stdout) || regexp.MustCompile(`\[x\].*Ben`).MatchString(stdout) {
		t.Errorf("wrong rows checked:\n%s", stdout)
	}
}

func TestTable_PlainSelectionUnknownIdentity(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, nil, usersCSV, "table", "-", "--format", "csv", "--plain", "--select", "99")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}
	if strings.Contains(stdout, "selected") || strings.Contains(stdout, "[-]") {
		t.Errorf("unmatched identity counted as a selection:\n%s", stdout)
	}
	if !strings.Contains(stderr, "no row has the selected identity") {
		t.Errorf("stderr:\n%s", stderr)
	}
}
