// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database types accepted by Open
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		// one writer; also keeps an in-memory database alive across queries
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Valid in both PostgreSQL and SQLite.
const schema = `
-- Racks
CREATE TABLE IF NOT EXISTS rack (
    name TEXT PRIMARY KEY,
    display_order INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL CHECK (height > 0)
);

-- Devices
CREATE TABLE IF NOT EXISTS device (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    rack TEXT NOT NULL REFERENCES rack(name),
    rack_first_slot INTEGER NOT NULL CHECK (rack_first_slot >= 1),
    rack_last_slot INTEGER NOT NULL CHECK (rack_last_slot >= rack_first_slot),
    owner TEXT NOT NULL,
    contact TEXT NOT NULL,
    service_level TEXT NOT NULL,
    model TEXT NOT NULL,
    ip TEXT,
    comments TEXT,
    last_updated_by TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_device_rack ON device(rack);
`
