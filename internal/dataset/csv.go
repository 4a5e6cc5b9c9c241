// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"
)

// ReadDelimited decodes delimited text with a header row. Header names are
// trimmed, and blank or repeated names are replaced with column_N. Rows may
// be shorter or longer than the header: missing cells are absent and extra
// cells are dropped.
func ReadDelimited(r io.Reader, comma rune) ([]string, []datatable.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if comma == '\t' {
		cr.LazyQuotes = true
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	fields := headerFields(header)

	var records []datatable.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(records)+1, err)
		}
		if isBlankRow(row) {
			continue
		}
		rec := make(datatable.Record, len(fields))
		for i, name := range fields {
			if i >= len(row) {
				break
			}
			if v := InferValue(row[i]); v != nil {
				rec[name] = v
			}
		}
		records = append(records, rec)
	}
	return fields, records, nil
}

func headerFields(header []string) []string {
	fields := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := seen[name]; name == "" || dup {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[name] = struct{}{}
		fields[i] = name
	}
	return fields
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
