// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gridkit/gridkit/internal/datatable"
)

// ReadJSON decodes an array of objects, or an object whose "rows" member is
// one. Field order follows the object keys as written. Integral numbers
// decode as int64 and other numbers as float64.
func ReadJSON(r io.Reader) ([]string, []datatable.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, nil
	}

	var items []json.RawMessage
	if data[0] == '{' {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("decoding JSON: %w", err)
		}
		rows, ok := doc[RowsKey]
		if !ok {
			return nil, nil, fmt.Errorf("%w: object has no %q member", ErrNotTabular, RowsKey)
		}
		data = rows
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotTabular, err)
	}

	fields := newFieldSet()
	records := make([]datatable.Record, 0, len(items))
	for i, item := range items {
		rec, err := decodeJSONObject(item, fields)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return fields.order, records, nil
}

// decodeJSONObject walks the object token by token to keep key order.
func decodeJSONObject(raw json.RawMessage, fields *fieldSet) (datatable.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: got %s", ErrNotTabular, bytes.TrimSpace(raw))
	}

	rec := make(datatable.Record)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields.add(key)
		if v = normalizeJSON(v); v != nil {
			rec[key] = v
		}
	}
	return rec, nil
}

func normalizeJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		for i := range x {
			x[i] = normalizeJSON(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeJSON(x[k])
		}
		return x
	default:
		return v
	}
}
