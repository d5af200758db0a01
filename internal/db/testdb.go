package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDB returns a migrated database under tb.TempDir, closed on cleanup.
// It is file-backed because a :memory: database is private to one pooled
// connection and the ledger concurrency tests use many.
func NewTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "farmbook.sqlite3")
	database, err := Open(path)
	if err != nil {
		tb.Fatalf("opening test database %s: %v", path, err)
	}
	tb.Cleanup(func() { database.Close() })

	if err := Migrate(database); err != nil {
		tb.Fatalf("migrating test database: %v", err)
	}
	return database
}
