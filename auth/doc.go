// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies callers and decides what they may change.

# Principals

Identity comes from the front end, never from the application:

	user := auth.Principal(r, cfg.UserHeader, cfg.Realm)

A verified TLS client certificate whose email address is in the realm wins.
Otherwise the configured trusted header is read. An empty string means the
caller is unauthenticated.

AuthLink builds the link that sends unauthenticated users to the secure
port, where the front end asks for a ticket.

# Group Oracle

GroupOracle answers membership questions. Directory implements it from a
TOML file with a realm, known users, nested groups, and per-device notes:

	dir, err := auth.LoadDirectory("/etc/hwops/directory.toml")
	dir.HasAccess("alice", "hwops@example.org")

# Authorization

	authz := auth.NewAuthorizer(dir, cfg.OperatorGroup)
	authz.IsHardwareOperator(user)  // may add and edit anything
	authz.CanEdit(user, &device)    // operator or owner group member

Unauthenticated callers can never edit.

# ID Generation

	id := auth.GenerateID()  // random UUID for new device records
*/
package auth
