// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/celskeggs/hwops/auth"
	"github.com/celskeggs/hwops/models"
	"github.com/celskeggs/hwops/render"
)

type DeviceHandler struct {
	*Env
}

func NewDeviceHandler(env *Env) *DeviceHandler {
	return &DeviceHandler{Env: env}
}

// ViewDevice handles GET /devices/{id}
func (h *DeviceHandler) ViewDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	device, err := h.Store.Device(ctx, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rack, err := h.Store.Rack(ctx, device.Rack)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user := h.user(r)
	h.page(w, r, http.StatusOK, render.PageDevice, models.DevicePage{
		Viewer: h.viewer(r, user, h.Authz.CanEdit(user, &device)),
		Device: device,
		Rack:   rack,
		Info:   h.Oracle.Info(device.Name),
	})
}

// AddForm handles GET /add?rack={name}&slot={n}
// Shows the add form, pre-filled with the caller's address
func (h *DeviceHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	rack, err := h.Store.Rack(ctx, query.Get("rack"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	slot, err := strconv.Atoi(query.Get("slot"))
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: slot must be a number", models.ErrInvalidParam))
		return
	}
	if slot < 1 || slot > rack.Height {
		h.fail(w, r, fmt.Errorf("slot %d in rack %q (height %d): %w", slot, rack.Name, rack.Height, models.ErrSlotRange))
		return
	}

	user := h.user(r)
	h.page(w, r, http.StatusOK, render.PageAdd, models.AddPage{
		Viewer: h.viewer(r, user, h.Authz.IsHardwareOperator(user)),
		Rack:   rack,
		Slot:   slot,
		Email:  h.Oracle.UserEmail(user),
	})
}

// SubmitAdd handles POST /devices
// Only hardware operators may add devices
func (h *DeviceHandler) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r, addFormPath(r))
	if user == "" {
		return
	}
	if !h.Authz.IsHardwareOperator(user) {
		h.fail(w, r, fmt.Errorf("%s may not add devices: %w", user, models.ErrForbidden))
		return
	}

	params, err := parseDeviceParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	device := &models.Device{ID: auth.GenerateID()}
	if err := h.save(r.Context(), user, params, device, h.Store.AddDevice); err != nil {
		h.fail(w, r, err)
		return
	}

	slog.Info("device added", "device_id", device.ID, "name", device.Name, "rack", device.Rack, "user", user)
	h.page(w, r, http.StatusCreated, render.PageDone, models.DonePage{ID: device.ID})
}

// SubmitUpdate handles POST /devices/{id}
// Operators and members of the device's owner group may update it
func (h *DeviceHandler) SubmitUpdate(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r, "/devices/"+url.PathEscape(r.PathValue("id")))
	if user == "" {
		return
	}

	ctx := r.Context()
	device, err := h.Store.Device(ctx, r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !h.Authz.CanEdit(user, &device) {
		h.fail(w, r, fmt.Errorf("%s may not edit device %s: %w", user, device.ID, models.ErrForbidden))
		return
	}

	params, err := parseDeviceParams(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.save(ctx, user, params, &device, h.Store.UpdateDevice); err != nil {
		h.fail(w, r, err)
		return
	}

	slog.Info("device updated", "device_id", device.ID, "name", device.Name, "rack", device.Rack, "user", user)
	h.page(w, r, http.StatusOK, render.PageDone, models.DonePage{ID: device.ID})
}

// addFormPath returns the add form the submission came from, or the rack
// table when the form is too broken to say.
func addFormPath(r *http.Request) string {
	rack := strings.TrimSpace(r.PostFormValue("rack"))
	slot, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("first")))
	if rack == "" || err != nil || slot < 1 {
		return "/"
	}
	return "/add?" + url.Values{"rack": {rack}, "slot": {strconv.Itoa(slot)}}.Encode()
}

// save validates params, applies them to device, and writes it with write.
// Nothing is written unless every check passes.
func (h *DeviceHandler) save(ctx context.Context, user string, params models.DeviceParams,
	device *models.Device, write func(context.Context, *models.Device) error) error {

	rack, err := h.Store.Rack(ctx, params.Rack)
	if err != nil {
		return err
	}
	if !models.ValidRange(params.FirstSlot, params.LastSlot, rack.Height) {
		return fmt.Errorf("slots %d-%d in rack %q (height %d): %w",
			params.FirstSlot, params.LastSlot, rack.Name, rack.Height, models.ErrSlotRange)
	}
	if !h.Oracle.ValidOwner(params.Owner) {
		return fmt.Errorf("%w: %q", models.ErrBadOwner, params.Owner)
	}

	params.Apply(device)
	device.LastUpdatedBy = user
	return write(ctx, device)
}
