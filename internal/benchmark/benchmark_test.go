// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridkit/gridkit/internal/catalog"
	"github.com/gridkit/gridkit/internal/config"
	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/theme"
	"github.com/gridkit/gridkit/internal/tui"

	"golang.org/x/text/language"
)

const benchmarkRows = 1000

func usersCSV(b *testing.B, n int) []byte {
	b.Helper()
	ds := dataset.GenerateUsers(n)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Fields); err != nil {
		b.Fatal(err)
	}
	for _, r := range ds.Records {
		row := make([]string, len(ds.Fields))
		for i, f := range ds.Fields {
			row[i] = datatable.FormatValue(r[f])
		}
		if err := w.Write(row); err != nil {
			b.Fatal(err)
		}
	}
	w.Flush()
	return buf.Bytes()
}

func usersJSON(b *testing.B, n int) []byte {
	b.Helper()
	data, err := json.Marshal(dataset.GenerateUsers(n).Records)
	if err != nil {
		b.Fatal(err)
	}
	return data
}

func BenchmarkDatasetReadCSV(b *testing.B) {
	data := usersCSV(b, benchmarkRows)
	loader := dataset.NewLoader(nil)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		ds, err := loader.Read(bytes.NewReader(data), dataset.FormatCSV)
		if err != nil {
			b.Fatalf("Read failed: %v", err)
		}
		if ds.Len() != benchmarkRows {
			b.Fatalf("got %d rows", ds.Len())
		}
	}
}

func BenchmarkDatasetReadJSON(b *testing.B) {
	data := usersJSON(b, benchmarkRows)
	loader := dataset.NewLoader(nil)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if _, err := loader.Read(bytes.NewReader(data), dataset.FormatJSON); err != nil {
			b.Fatalf("Read failed: %v", err)
		}
	}
}

func BenchmarkSortOrder(b *testing.B) {
	rows := dataset.GenerateUsers(benchmarkRows).Records
	columns, err := dataset.Columns(dataset.SampleFields, nil)
	if err != nil {
		b.Fatal(err)
	}
	cmp := datatable.NewComparer(language.English)

	for _, key := range []string{"name", "age", "last_login"} {
		b.Run(key, func(b *testing.B) {
			state := datatable.SortState{Column: key, Direction: datatable.SortDescending}
			b.ReportAllocs()
			for b.Loop() {
				if order := datatable.Order(rows, columns, state, cmp); len(order) != len(rows) {
					b.Fatalf("order has %d entries", len(order))
				}
			}
		})
	}
}

func BenchmarkTableSortAndSelect(b *testing.B) {
	rows := dataset.GenerateUsers(benchmarkRows).Records
	columns, err := dataset.Columns(dataset.SampleFields, nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		tbl, err := datatable.NewTable(datatable.TableOptions[datatable.Record, any]{
			Rows:    rows,
			Columns: columns,
			Key:     datatable.KeyByField(datatable.DefaultKeyField),
		})
		if err != nil {
			b.Fatalf("NewTable failed: %v", err)
		}
		if err := tbl.ActivateColumn("name"); err != nil {
			b.Fatal(err)
		}
		tbl.ToggleAll()
		if tbl.SelectedCount() != benchmarkRows {
			b.Fatalf("selected %d rows", tbl.SelectedCount())
		}
	}
}

func BenchmarkConfigLoad(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "config.cue")
	if err := os.WriteFile(path, []byte(config.GenerateCUE(config.DefaultConfig())), 0o644); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if _, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: path}); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

func BenchmarkCatalogRender(b *testing.B) {
	c := catalog.New()
	cfg := tui.Config{Provider: theme.NewProvider(theme.ModeLight)}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, name := range c.Names() {
			if _, err := c.Render(name, cfg); err != nil {
				b.Fatalf("Render(%s) failed: %v", name, err)
			}
		}
	}
}
