// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/gridkit/gridkit/internal/datatable"

	"github.com/pelletier/go-toml/v2"
)

// ReadTOML decodes the [[rows]] array of tables. TOML tables decode without
// key order, so fields are ordered as described by Fields.
func ReadTOML(r io.Reader) ([]string, []datatable.Record, error) {
	var doc map[string]any
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decoding TOML: %w", err)
	}
	raw, ok := doc[RowsKey]
	if !ok {
		if len(doc) == 0 {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: no [[%s]] tables", ErrNotTabular, RowsKey)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q is %T", ErrNotTabular, RowsKey, raw)
	}

	records := make([]datatable.Record, 0, len(items))
	for i, item := range items {
		table, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, ErrNotTabular)
		}
		rec := make(datatable.Record, len(table))
		for k, v := range table {
			rec[k] = normalizeTOML(v)
		}
		records = append(records, rec)
	}
	return Fields(records), records, nil
}

// normalizeTOML turns local dates and times into values that sort and
// print like the other formats.
func normalizeTOML(v any) any {
	switch x := v.(type) {
	case toml.LocalDate:
		return x.AsTime(time.UTC)
	case toml.LocalDateTime:
		return x.AsTime(time.UTC)
	case toml.LocalTime:
		return x.String()
	case []any:
		for i := range x {
			x[i] = normalizeTOML(x[i])
		}
		return x
	default:
		return v
	}
}
