package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: lot lookups by (user, number) from a transportation go
	// through the lot_number column; index it for the per-field listing too.
	`CREATE INDEX IF NOT EXISTS idx_transportations_lot ON transportations(lot_number)`,
	// Migration 2: transportation listings are ordered by date.
	`CREATE INDEX IF NOT EXISTS idx_transportations_date ON transportations(transport_date)`,
}

// Migrate ensures the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
