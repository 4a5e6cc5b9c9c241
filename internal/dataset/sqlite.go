// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/gridkit/gridkit/internal/datatable"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqlitePragmas keep the connection read-only and tolerant of concurrent writers.
var sqlitePragmas = []string{
	"PRAGMA query_only = ON",
	"PRAGMA busy_timeout = 5000",
}

// QuerySQLite runs query against the SQLite database at path and returns one
// record per result row, with fields in result column order. The database
// must already exist; it is never created or modified.
func QuerySQLite(ctx context.Context, path, query string) ([]string, []datatable.Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil, ErrEmptyQuery
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	fields, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	fields = headerFields(fields)

	var records []datatable.Record
	values := make([]any, len(fields))
	dest := make([]any, len(fields))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scanning row %d: %w", len(records)+1, err)
		}
		rec := make(datatable.Record, len(fields))
		for i, name := range fields {
			switch v := values[i].(type) {
			case nil:
			case []byte:
				rec[name] = string(v)
			default:
				rec[name] = v
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	return fields, records, nil
}
