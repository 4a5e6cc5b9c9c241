// SPDX-License-Identifier: MPL-2.0

// Package benchmark holds benchmarks for the gridkit hot paths:
//   - dataset decoding (CSV and JSON)
//   - sorting and selection on large tables
//   - CUE config loading
//   - story rendering
//
// Run them with:
//
//	go test -bench=. -benchmem ./internal/benchmark/
//
// Passing -cpuprofile=default.pgo produces a profile usable for PGO builds.
package benchmark
