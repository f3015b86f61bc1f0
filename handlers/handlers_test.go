// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/db"
	"github.com/celskeggs/hwops/render"
	"github.com/celskeggs/hwops/testutil"
)

// newTestEnv wires handlers to a fresh database and the test directory
func newTestEnv(t *testing.T) (*Env, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	dir := testutil.GetTestDirectory(t)
	cfg := testutil.GetTestConfig()
	return &Env{
		Store:    db.NewStore(conn),
		Oracle:   dir,
		Authz:    auth.NewAuthorizer(dir, cfg.OperatorGroup),
		Renderer: renderer,
		Config:   cfg,
		Realm:    dir.Realm,
	}, conn
}
