// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the hwops inventory.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, dir, renderer, cfg)

# Endpoints

Health:

	GET /health

Views (public; edit controls appear for permitted users):

	GET /               - All racks side by side
	GET /racks/{name}   - Devices in one rack
	GET /devices/{id}   - Device details and edit form
	GET /add?rack&slot  - Add form for an empty slot

Edits (authenticated; anonymous callers are redirected to the secure port):

	POST /devices       - Add a device (hardware operators)
	POST /devices/{id}  - Update a device (operators and owner group)

# Handler Initialization

Handlers share one handlers.Env holding the store, the group directory,
the authorizer, and the templates.
*/
package router
