// store_test.go provides shared test database helpers for the store
// tests. SQLite runs against a temp file; PostgreSQL tests are skipped
// when no server is available.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"rupinder/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "rupinder")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "rupinder")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// sqliteDB opens a migrated SQLite database in a temp dir.
func sqliteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, filepath.Join(t.TempDir(), "leads.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, database.DriverSQLite); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// postgresDB opens the test PostgreSQL database and runs migrations.
// If the database is unavailable, the test is skipped.
func postgresDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(database.DriverPostgres, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db, database.DriverPostgres); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// cleanLeads removes test leads by email. Call in t.Cleanup().
func cleanLeads(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM leads WHERE email = $1", email)
	}
}
