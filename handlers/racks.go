// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/celskeggs/hwops/layout"
	"github.com/celskeggs/hwops/models"
	"github.com/celskeggs/hwops/render"
)

type RackHandler struct {
	*Env
}

func NewRackHandler(env *Env) *RackHandler {
	return &RackHandler{Env: env}
}

// ListRacks handles GET /
// Renders every rack side by side
func (h *RackHandler) ListRacks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	racks, err := h.Store.AllRacks(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	devices, err := h.Store.AllDevices(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	// stored data that cannot be laid out is our problem, not the caller's
	table, err := layout.Build(racks, devices)
	if err != nil {
		h.failStatus(w, r, http.StatusInternalServerError, err)
		return
	}

	user := h.user(r)
	h.page(w, r, http.StatusOK, render.PageRacks, models.RacksPage{
		Viewer: h.viewer(r, user, h.Authz.IsHardwareOperator(user)),
		Racks:  table.Racks,
		Rows:   table.Rows,
	})
}

// ViewRack handles GET /racks/{name}
func (h *RackHandler) ViewRack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	rack, err := h.Store.Rack(ctx, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	devices, err := h.Store.DevicesInRack(ctx, name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user := h.user(r)
	h.page(w, r, http.StatusOK, render.PageRack, models.RackPage{
		Viewer:  h.viewer(r, user, h.Authz.IsHardwareOperator(user)),
		Rack:    rack,
		Devices: devices,
	})
}
