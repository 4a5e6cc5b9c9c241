// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gridkit/gridkit/internal/datatable"

	"gopkg.in/yaml.v3"
)

// ReadYAML decodes a sequence of mappings, or a mapping whose "rows" key
// holds one. Field order follows the mapping keys as written.
func ReadYAML(r io.Reader) ([]string, []datatable.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("decoding YAML: %w", err)
	}

	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.MappingNode {
		rows := mappingValue(node, RowsKey)
		if rows == nil {
			return nil, nil, fmt.Errorf("%w: mapping has no %q key", ErrNotTabular, RowsKey)
		}
		node = rows
	}
	if node.Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("%w: line %d", ErrNotTabular, node.Line)
	}

	fields := newFieldSet()
	records := make([]datatable.Record, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("row %d: %w: line %d", i+1, ErrNotTabular, item.Line)
		}
		rec := make(datatable.Record, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			v, err := decodeYAMLValue(item.Content[j+1])
			if err != nil {
				return nil, nil, fmt.Errorf("row %d field %q: %w", i+1, key, err)
			}
			fields.add(key)
			if v = normalizeYAML(v); v != nil {
				rec[key] = v
			}
		}
		records = append(records, rec)
	}
	return fields.order, records, nil
}

// decodeYAMLValue decodes timestamps as time.Time; yaml.v3 hands them to
// interface values as strings.
func decodeYAMLValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return t, nil
		}
	}
	var v any
	err := n.Decode(&v)
	return v, err
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// normalizeYAML widens integers to int64 so identities match other formats.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case uint64:
		return x
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeYAML(x[k])
		}
		return x
	default:
		return v
	}
}
