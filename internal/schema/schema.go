// Package schema declares the two tables of the climate dataset. The server
// checks them once at startup with Verify; Create exists for fixtures and
// local tooling, the server itself never changes the schema.
// DDL files are named with a 4-digit prefix for order: 0001_station.sql, 0002_measurement.sql.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"

	"github.com/Masterminds/squirrel"
)

//go:embed sql/*.sql
var sqlFS embed.FS

const ddlDir = "sql"

var ddlFileRe = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

// Table is the explicit column mapping of one dataset table.
type Table struct {
	Name    string
	Columns []string
}

var (
	Station = Table{
		Name:    "station",
		Columns: []string{"id", "station", "name", "latitude", "longitude", "elevation"},
	}
	Measurement = Table{
		Name:    "measurement",
		Columns: []string{"id", "station", "date", "prcp", "tobs"},
	}
)

func Tables() []Table {
	return []Table{Station, Measurement}
}

// Verify probes every declared table with a zero-row select over its declared
// columns, so a missing table or column fails before any request is served.
func Verify(ctx context.Context, db *sql.DB) error {
	for _, t := range Tables() {
		query, args, err := squirrel.Select(t.Columns...).From(t.Name).Limit(0).ToSql()
		if err != nil {
			return fmt.Errorf("build probe for table %s: %w", t.Name, err)
		}
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("verify table %s: %w", t.Name, err)
		}
		if err := rows.Close(); err != nil {
			return fmt.Errorf("verify table %s: %w", t.Name, err)
		}
		slog.Debug("table verified", "table", t.Name, "columns", t.Columns)
	}
	return nil
}

type ddlFile struct {
	version string
	name    string
	body    string
}

// Create applies the embedded DDL in version order. Every statement is
// CREATE ... IF NOT EXISTS, so running it against an existing dataset is a no-op.
func Create(ctx context.Context, db *sql.DB) error {
	files, err := loadDDL()
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := db.ExecContext(ctx, f.body); err != nil {
			return fmt.Errorf("apply %s_%s.sql: %w", f.version, f.name, err)
		}
	}
	return nil
}

func loadDDL() ([]ddlFile, error) {
	entries, err := fs.ReadDir(sqlFS, ddlDir)
	if err != nil {
		return nil, fmt.Errorf("read ddl dir: %w", err)
	}
	var out []ddlFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		version, name, ok := parseDDLFilename(e.Name())
		if !ok {
			continue
		}
		body, err := fs.ReadFile(sqlFS, ddlDir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read ddl %s: %w", e.Name(), err)
		}
		out = append(out, ddlFile{version: version, name: name, body: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func parseDDLFilename(filename string) (version, name string, ok bool) {
	m := ddlFileRe.FindStringSubmatch(filename)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
