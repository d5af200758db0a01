package db

import (
	"net/url"
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/farm.sqlite3")

	if !strings.HasPrefix(dsn, "file:/tmp/farm.sqlite3?") {
		t.Fatalf("unexpected DSN prefix: %s", dsn)
	}

	q, err := url.ParseQuery(dsn[strings.Index(dsn, "?")+1:])
	if err != nil {
		t.Fatalf("parsing DSN query: %v", err)
	}
	if got := q.Get("_txlock"); got != "immediate" {
		t.Errorf("expected _txlock=immediate, got %q", got)
	}
	if got := len(q["_pragma"]); got != len(pragmas) {
		t.Errorf("expected %d pragmas, got %d", len(pragmas), got)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	// NewTestDB already migrated once.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("reading foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1 on pooled connection, got %d", fk)
	}
}
