// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and page types for the inventory.

# Domain Types

  - Rack: name, display order, height in slots
  - Device: a record occupying slots FirstSlot..LastSlot of one rack
  - Cell: a rendered table cell (one or more merged devices, or an empty
    placeholder), never persisted

# Request Types

DeviceParams holds the add/update form fields. Apply copies them onto a
Device; the caller sets LastUpdatedBy.

# Page Types

Every page embeds Viewer (user, auth link, whether edit controls show):

  - RacksPage, RackPage, DevicePage, AddPage, DonePage, ErrorPage

# Errors

Sentinel errors are wrapped with %w and matched with errors.Is:

	ErrUnknownRack, ErrUnknownDevice, ErrSlotRange,
	ErrForbidden, ErrBadOwner, ErrInvalidParam
*/
package models
