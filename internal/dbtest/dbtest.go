// Package dbtest builds small on-disk copies of the climate dataset for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"climate-server/internal/schema"
)

// Fixture summary, kept in sync with fixtureSQL.
const (
	MeasurementRows = 9
	WindowRows      = 7 // date in [2016-08-23, 2017-08-23]
	NullPrcpRows    = 2
)

var StationIDs = []string{"USC00519397", "USC00513117", "USC00519281"}

const fixtureSQL = `
INSERT INTO station (id, station, name, latitude, longitude, elevation) VALUES
  (1, 'USC00519397', 'WAIKIKI 717.2, HI US', 21.2716, -157.8168, 3.0),
  (2, 'USC00513117', 'KANEOHE 838.1, HI US', 21.4234, -157.8015, 14.6),
  (3, 'USC00519281', 'WAIHEE 837.5, HI US', 21.45167, -157.84889, 32.9);

INSERT INTO measurement (id, station, date, prcp, tobs) VALUES
  (1, 'USC00519397', '2016-08-22', 0.4,  78.0),
  (2, 'USC00519397', '2016-08-23', 0.0,  81.0),
  (3, 'USC00513117', '2016-08-23', 0.15, 76.0),
  (4, 'USC00519281', '2016-12-31', NULL, 66.0),
  (5, 'USC00519397', '2017-01-01', 0.0,  62.0),
  (6, 'USC00513117', '2017-01-01', 0.29, 66.0),
  (7, 'USC00519281', '2017-05-15', NULL, 74.0),
  (8, 'USC00519397', '2017-08-23', 0.0,  81.0),
  (9, 'USC00513117', '2017-08-24', 0.05, 82.0);
`

// NewFile writes a fixture dataset to a temp dir and returns its path.
func NewFile(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close fixture db: %v", err)
		}
	}()
	Seed(t, db)
	return path
}

// Open returns a read-write handle on a fresh fixture dataset.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+NewFile(t))
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// OpenEmpty returns a handle on a dataset with both tables and no rows.
func OpenEmpty(t testing.TB) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.sqlite")
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		t.Fatalf("open empty db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := schema.Create(context.Background(), db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

// Seed creates the schema on db and inserts the fixture rows.
func Seed(t testing.TB, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	if err := schema.Create(ctx, db); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if _, err := db.ExecContext(ctx, fixtureSQL); err != nil {
		t.Fatalf("insert fixtures: %v", err)
	}
}
