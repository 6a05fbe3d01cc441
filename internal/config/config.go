package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	// HTTPReadHeaderTimeout bounds how long the server waits for request headers.
	HTTPReadHeaderTimeout time.Duration

	// DBDriver selects the database/sql driver: "sqlite3" (mattn, cgo),
	// "sqlite" (modernc, pure Go) or "pgx" (Postgres).
	DBDriver string
	// DBDSN, when set, is passed to the driver verbatim and SQLitePath is ignored.
	DBDSN string
	// SQLitePath is the pre-existing dataset file. It is opened read-only and never created.
	SQLitePath string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	// DBLogQueries wraps the sqlite3 driver so every statement is logged at debug level.
	DBLogQueries bool
}

// Dev reports whether the process runs with APP_ENV=dev. Error responses carry
// the underlying error text only in dev.
func (c Config) Dev() bool {
	return c.AppEnv == "dev"
}

// LoadFromEnv reads configuration from the environment. Variables found in the
// file named by ENV_FILE (default ".env") are loaded first; variables already
// present in the environment take precedence and a missing file is ignored.
func LoadFromEnv() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	httpAddr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	readHeaderTimeout, err := durationFromEnv("HTTP_READ_HEADER_TIMEOUT", "5s")
	if err != nil {
		return Config{}, err
	}

	driver := strings.TrimSpace(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = "sqlite3"
	}
	switch driver {
	case "sqlite3", "sqlite", "pgx":
	default:
		return Config{}, fmt.Errorf("invalid DB_DRIVER %q (allowed: sqlite3, sqlite, pgx)", driver)
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if driver == "pgx" && dsn == "" {
		return Config{}, errors.New("DB_DSN is required when DB_DRIVER=pgx")
	}

	path := strings.TrimSpace(os.Getenv("SQLITE_PATH"))
	if path == "" {
		path = "hawaii.sqlite"
	}

	maxOpenConns, err := intFromEnv("DB_MAX_OPEN_CONNS", "4")
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := intFromEnv("DB_MAX_IDLE_CONNS", "4")
	if err != nil {
		return Config{}, err
	}
	connMaxLifetime, err := durationFromEnv("DB_CONN_MAX_LIFETIME", "0s")
	if err != nil {
		return Config{}, err
	}

	logQueries := false
	if s := strings.TrimSpace(os.Getenv("DB_LOG_QUERIES")); s != "" {
		logQueries, err = strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DB_LOG_QUERIES %q: %w", s, err)
		}
	}

	return Config{
		AppEnv:                appEnv,
		LogLevel:              level,
		HTTPAddr:              httpAddr,
		HTTPReadHeaderTimeout: readHeaderTimeout,
		DBDriver:              driver,
		DBDSN:                 dsn,
		SQLitePath:            path,
		DBMaxOpenConns:        maxOpenConns,
		DBMaxIdleConns:        maxIdleConns,
		DBConnMaxLifetime:     connMaxLifetime,
		DBLogQueries:          logQueries,
	}, nil
}

func loadEnvFile() error {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %q: %w", path, err)
}

func intFromEnv(key, def string) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		s = def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func durationFromEnv(key, def string) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
