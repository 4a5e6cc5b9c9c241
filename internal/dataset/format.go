// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"path/filepath"
	"strings"
)

const (
	// FormatCSV is comma-separated values with a header row.
	FormatCSV Format = "csv"
	// FormatTSV is tab-separated values with a header row.
	FormatTSV Format = "tsv"
	// FormatJSON is an array of objects, or an object with a "rows" array.
	FormatJSON Format = "json"
	// FormatYAML is a sequence of mappings, or a mapping with a "rows" sequence.
	FormatYAML Format = "yaml"
	// FormatTOML is a document of [[rows]] tables.
	FormatTOML Format = "toml"
	// FormatSQLite is a SQLite database read through a query.
	FormatSQLite Format = "sqlite"

	// RowsKey is the document key holding rows in object-shaped JSON and
	// YAML documents and in TOML documents.
	RowsKey = "rows"
)

type (
	// Format identifies a dataset encoding.
	Format string

	// Compression identifies a transparent file compression.
	Compression string
)

const (
	// CompressionNone reads the file as is.
	CompressionNone Compression = ""
	// CompressionGzip decompresses .gz files.
	CompressionGzip Compression = "gzip"
	// CompressionZstd decompresses .zst files.
	CompressionZstd Compression = "zstd"
)

var extensions = map[string]Format{
	".csv":     FormatCSV,
	".tsv":     FormatTSV,
	".tab":     FormatTSV,
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".toml":    FormatTOML,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatTSV, FormatJSON, FormatYAML, FormatTOML, FormatSQLite}
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// IsValid returns whether f is a supported format, and a list of validation
// errors if it is not.
func (f Format) IsValid() (bool, []error) {
	for _, known := range Formats() {
		if f == known {
			return true, nil
		}
	}
	return false, []error{&UnknownFormatError{Value: string(f)}}
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		name = string(FormatYAML)
	}
	f := Format(name)
	if ok, errs := f.IsValid(); !ok {
		return "", errs[0]
	}
	return f, nil
}

// DetectFormat derives the format and compression of path from its
// extensions, e.g. "users.csv.gz" is gzip-compressed CSV.
func DetectFormat(path string) (Format, Compression, error) {
	base := strings.ToLower(filepath.Base(path))
	compression := CompressionNone
	switch {
	case strings.HasSuffix(base, ".gz"):
		compression = CompressionGzip
		base = strings.TrimSuffix(base, ".gz")
	case strings.HasSuffix(base, ".zst"):
		compression = CompressionZstd
		base = strings.TrimSuffix(base, ".zst")
	}

	ext := filepath.Ext(base)
	f, ok := extensions[ext]
	if !ok {
		return "", compression, &UnknownFormatError{Value: ext}
	}
	if f == FormatSQLite && compression != CompressionNone {
		return "", compression, &UnknownFormatError{Value: ext + "." + string(compression)}
	}
	return f, compression, nil
}
