// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and inventory queries.

# Connections

Open accepts "postgres" (github.com/lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple times -
uses IF NOT EXISTS for all tables and indexes. The same DDL runs on both
databases.

# Tables

  - rack: name, display_order, height
  - device: slot range, owner, contact, service level, model, optional ip
    and comments, last_updated_by, updated_at

	rack 1──* device

# Store

Store wraps queries and writes:

	store := db.NewStore(conn)
	racks, err := store.AllRacks(ctx)
	err = store.AddDevice(ctx, &device)

AddDevice and UpdateDevice re-read the rack inside their transaction, so
the slot range check and the write commit together.

# Rack Definitions

Racks are declared in a TOML file and synced at startup:

	racks, err := db.LoadRacks("racks.toml")
	err = store.SyncRacks(ctx, racks)
*/
package db
