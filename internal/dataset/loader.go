// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// StdinPath names standard input as a source.
const StdinPath = "-"

// ErrFormatRequired is returned when reading standard input without a format.
var ErrFormatRequired = errors.New("format is required when reading standard input")

type (
	// Source describes where a dataset comes from.
	Source struct {
		// Path is a file path, or StdinPath.
		Path string
		// Format overrides the format derived from Path's extension.
		Format Format
		// Compression overrides the compression derived from Path's extension.
		Compression Compression
		// Query selects rows from a SQLite database.
		Query string
		// Stdin is read when Path is StdinPath.
		Stdin io.Reader
	}

	// Loader reads datasets and logs what it loaded.
	Loader struct {
		logger *log.Logger
	}
)

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{logger: logger}
}

// Load reads the dataset described by src.
func (l *Loader) Load(ctx context.Context, src Source) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	format, compression, err := src.resolve()
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loading dataset", "path", src.Path, "format", format, "compression", compression)

	var ds *Dataset
	switch {
	case format == FormatSQLite:
		fields, records, qerr := QuerySQLite(ctx, src.Path, src.Query)
		if qerr != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, qerr)
		}
		ds = &Dataset{Format: format, Fields: fields, Records: records}
	case src.Path == StdinPath || src.Path == "":
		if src.Stdin == nil {
			return nil, errors.New("no standard input to read")
		}
		rc, derr := decompress(src.Stdin, compression)
		if derr != nil {
			return nil, derr
		}
		defer func() { _ = rc.Close() }()
		ds, err = l.Read(rc, format)
	default:
		rc, oerr := openFile(src.Path, compression)
		if oerr != nil {
			return nil, oerr
		}
		defer func() { _ = rc.Close() }()
		ds, err = l.Read(rc, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	ds.Source = src.Path
	l.logger.Debug("loaded dataset",
		"path", src.Path, "rows", ds.Len(), "fields", len(ds.Fields), "elapsed", time.Since(start))
	return ds, nil
}

// Read decodes a dataset of format f from r.
func (l *Loader) Read(r io.Reader, f Format) (*Dataset, error) {
	var (
		ds  = &Dataset{Format: f}
		err error
	)
	switch f {
	case FormatCSV:
		ds.Fields, ds.Records, err = ReadDelimited(r, ',')
	case FormatTSV:
		ds.Fields, ds.Records, err = ReadDelimited(r, '\t')
	case FormatJSON:
		ds.Fields, ds.Records, err = ReadJSON(r)
	case FormatYAML:
		ds.Fields, ds.Records, err = ReadYAML(r)
	case FormatTOML:
		ds.Fields, ds.Records, err = ReadTOML(r)
	default:
		return nil, &UnknownFormatError{Value: string(f)}
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (src Source) resolve() (Format, Compression, error) {
	format, compression := src.Format, src.Compression
	if src.Path == StdinPath || src.Path == "" {
		if format == "" {
			return "", "", ErrFormatRequired
		}
		if format == FormatSQLite {
			return "", "", fmt.Errorf("%w: sqlite needs a file path", ErrFormatRequired)
		}
		return format, compression, nil
	}

	detected, detectedCompression, err := DetectFormat(src.Path)
	if format == "" {
		if err != nil {
			return "", "", err
		}
		format = detected
	}
	if compression == CompressionNone {
		compression = detectedCompression
	}
	if ok, errs := format.IsValid(); !ok {
		return "", "", errs[0]
	}
	return format, compression, nil
}
