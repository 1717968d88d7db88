// Package database handles connection management and migration execution
// for the lead store using goose. PostgreSQL (through pgx) and SQLite
// (through modernc.org/sqlite) share one set of portable migrations.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Connect opens a connection pool for driver and verifies it with a ping.
// For SQLite the DSN is a file path; its directory is created if needed.
func Connect(driver, dsn string) (*sql.DB, error) {
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("database dir: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	switch driver {
	case DriverSQLite:
		// One writer; PRAGMAs are per connection.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	if driver == DriverSQLite {
		for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("database %s: %w", pragma, err)
			}
		}
	}

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// Dialect returns the goose dialect for a database/sql driver name.
func Dialect(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", driver)
	}
}

// Migrate runs all pending goose migrations from the embedded SQL files.
func Migrate(db *sql.DB, driver string) error {
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "dialect", dialect)
	return nil
}
