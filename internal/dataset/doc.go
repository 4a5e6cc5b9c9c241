// SPDX-License-Identifier: MPL-2.0

// Package dataset loads tabular data into datatable records.
//
// Files may be CSV, TSV, JSON, YAML or TOML, optionally compressed with gzip
// or zstd. SQLite databases are read through a query. Every loader produces
// records whose field order follows the source where the format preserves it.
package dataset
