package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"climate-server/internal/config"
)

// Open connects to the dataset described by cfg. SQLite files are opened
// read-only and must already exist; the server never writes to storage.
func Open(cfg config.Config) (*sql.DB, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	if cfg.DBLogQueries && cfg.DBDriver == "sqlite3" {
		connector, err := NewLoggingConnector(dsn, slog.Default())
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		db = sql.OpenDB(connector)
	} else {
		if cfg.DBLogQueries {
			slog.Warn("DB_LOG_QUERIES is only supported by the sqlite3 driver", "driver", cfg.DBDriver)
		}
		db, err = sql.Open(cfg.DBDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
	}

	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns >= 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	// Validate connectivity early; a missing sqlite file fails here.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// PlaceholderFormat returns the bind-parameter style squirrel must emit for driver.
func PlaceholderFormat(driver string) squirrel.PlaceholderFormat {
	if driver == "pgx" {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func buildDSN(cfg config.Config) (string, error) {
	if cfg.DBDSN != "" {
		return cfg.DBDSN, nil
	}

	var params []string
	switch cfg.DBDriver {
	case "sqlite3":
		// mattn/go-sqlite3 reads _busy_timeout itself and hands mode= to sqlite.
		params = []string{"mode=ro", "_busy_timeout=5000"}
	case "sqlite":
		params = []string{"mode=ro", "_pragma=busy_timeout(5000)"}
	default:
		return "", errors.New("DB_DSN is required for driver " + cfg.DBDriver)
	}

	path := cfg.SQLitePath
	if path == "" {
		return "", errors.New("SQLITE_PATH is empty")
	}

	// If caller provided something like "file:/data/hawaii.sqlite?x=y" as path, don't double-wrap.
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}

	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
