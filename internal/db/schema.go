package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS fields (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL REFERENCES users(id),
    field_name  TEXT NOT NULL,
    location    TEXT NOT NULL DEFAULT '',
    area        REAL NOT NULL CHECK (area >= 0),
    potato_type TEXT NOT NULL DEFAULT '',
    season      TEXT NOT NULL DEFAULT '',
    year        INTEGER NOT NULL,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_fields_user ON fields(user_id);

CREATE TABLE IF NOT EXISTS lots (
    id             INTEGER PRIMARY KEY,
    user_id        INTEGER NOT NULL REFERENCES users(id),
    lot_number     TEXT NOT NULL,
    field_name     TEXT NOT NULL DEFAULT '',
    small_packets  INTEGER NOT NULL DEFAULT 0,
    medium_packets INTEGER NOT NULL DEFAULT 0,
    large_packets  INTEGER NOT NULL DEFAULT 0,
    xlarge_packets INTEGER NOT NULL DEFAULT 0,
    storage_date   TEXT NOT NULL,
    notes          TEXT NOT NULL DEFAULT '',
    photo          BLOB,
    photo_mime     TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_lots_user_number ON lots(user_id, lot_number);

CREATE TABLE IF NOT EXISTS transportations (
    id             INTEGER PRIMARY KEY,
    field_id       INTEGER NOT NULL REFERENCES fields(id),
    lot_number     TEXT NOT NULL,
    transport_date TEXT NOT NULL,
    small_packets  INTEGER NOT NULL DEFAULT 0 CHECK (small_packets >= 0),
    medium_packets INTEGER NOT NULL DEFAULT 0 CHECK (medium_packets >= 0),
    large_packets  INTEGER NOT NULL DEFAULT 0 CHECK (large_packets >= 0),
    xlarge_packets INTEGER NOT NULL DEFAULT 0 CHECK (xlarge_packets >= 0),
    notes          TEXT,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_transportations_field ON transportations(field_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
