// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the hwops inventory.

# Handler Types

Each handler embeds a shared *Env with the store, group directory,
authorizer, and templates:

  - RackHandler: rack table and single-rack listing
  - DeviceHandler: device view, add form, add and update submissions

	env := &handlers.Env{Store: store, Oracle: dir, Authz: authz, Renderer: r, Config: cfg}
	rackHandler := handlers.NewRackHandler(env)

# Permissions

Views are public. The caller comes from a verified client certificate or
the trusted user header. Adding requires membership of the operator
group; updating requires operator membership or access to the device's
owner. Anonymous POSTs are redirected to the secure port.

# Validation

Submissions are checked in order: form fields, rack, slot range, owner.
The store repeats the range check inside the write transaction, so a
rejected submission never leaves a partial record.
*/
package handlers
