package db

import (
	"path/filepath"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-server/internal/config"
	"climate-server/internal/dbtest"
)

func sqliteConfig(driver, path string) config.Config {
	return config.Config{
		DBDriver:       driver,
		SQLitePath:     path,
		DBMaxOpenConns: 2,
		DBMaxIdleConns: 2,
	}
}

func TestOpen_SQLite3ReadOnly(t *testing.T) {
	path := dbtest.NewFile(t)

	conn, err := Open(sqliteConfig("sqlite3", path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM measurement`).Scan(&n))
	assert.Equal(t, dbtest.MeasurementRows, n)

	_, err = conn.Exec(`DELETE FROM measurement`)
	assert.Error(t, err, "dataset must be opened read-only")
}

func TestOpen_ModerncDriver(t *testing.T) {
	path := dbtest.NewFile(t)

	conn, err := Open(sqliteConfig("sqlite", path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM station`).Scan(&n))
	assert.Equal(t, len(dbtest.StationIDs), n)
}

func TestOpen_LogQueries(t *testing.T) {
	path := dbtest.NewFile(t)
	cfg := sqliteConfig("sqlite3", path)
	cfg.DBLogQueries = true

	conn, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	var station string
	require.NoError(t, conn.QueryRow(`SELECT station FROM station WHERE id = ?`, 1).Scan(&station))
	assert.Equal(t, dbtest.StationIDs[0], station)
}

func TestOpen_MissingFileFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "hawaii.sqlite")

	_, err := Open(sqliteConfig("sqlite3", missing))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping")
	assert.NoFileExists(t, missing)
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit dsn wins",
			cfg:  config.Config{DBDriver: "sqlite3", DBDSN: "file:x.db?cache=shared", SQLitePath: "ignored.db"},
			want: "file:x.db?cache=shared",
		},
		{
			name: "sqlite3 plain path",
			cfg:  config.Config{DBDriver: "sqlite3", SQLitePath: "hawaii.sqlite"},
			want: "file:hawaii.sqlite?mode=ro&_busy_timeout=5000",
		},
		{
			name: "modernc plain path",
			cfg:  config.Config{DBDriver: "sqlite", SQLitePath: "/data/hawaii.sqlite"},
			want: "file:/data/hawaii.sqlite?mode=ro&_pragma=busy_timeout(5000)",
		},
		{
			name: "file uri without query",
			cfg:  config.Config{DBDriver: "sqlite3", SQLitePath: "file:/data/hawaii.sqlite"},
			want: "file:/data/hawaii.sqlite?mode=ro&_busy_timeout=5000",
		},
		{
			name: "file uri with query",
			cfg:  config.Config{DBDriver: "sqlite3", SQLitePath: "file:/data/hawaii.sqlite?cache=private"},
			want: "file:/data/hawaii.sqlite?cache=private&mode=ro&_busy_timeout=5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildDSN(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildDSN_Errors(t *testing.T) {
	_, err := buildDSN(config.Config{DBDriver: "pgx"})
	assert.Error(t, err, "pgx without DSN")

	_, err = buildDSN(config.Config{DBDriver: "sqlite3"})
	assert.Error(t, err, "empty path")
}

func TestPlaceholderFormat(t *testing.T) {
	sql, _, err := squirrel.Select("tobs").From("measurement").
		Where(squirrel.GtOrEq{"date": "2017-01-01"}).
		PlaceholderFormat(PlaceholderFormat("pgx")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT tobs FROM measurement WHERE date >= $1", sql)

	sql, _, err = squirrel.Select("tobs").From("measurement").
		Where(squirrel.GtOrEq{"date": "2017-01-01"}).
		PlaceholderFormat(PlaceholderFormat("sqlite3")).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT tobs FROM measurement WHERE date >= ?", sql)
}
