// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"github.com/celskeggs/hwops/models"
)

// parseDeviceParams reads the add/update form fields
func parseDeviceParams(r *http.Request) (models.DeviceParams, error) {
	if err := r.ParseForm(); err != nil {
		return models.DeviceParams{}, fmt.Errorf("%w: malformed form", models.ErrInvalidParam)
	}

	var p models.DeviceParams
	var err error
	if p.FirstSlot, err = formInt(r, "first"); err != nil {
		return models.DeviceParams{}, err
	}
	if p.LastSlot, err = formInt(r, "last"); err != nil {
		return models.DeviceParams{}, err
	}

	required := []struct {
		field string
		dest  *string
	}{
		{"rack", &p.Rack},
		{"devicename", &p.Name},
		{"owner", &p.Owner},
		{"contact", &p.Contact},
		{"service", &p.Service},
		{"model", &p.Model},
	}
	for _, f := range required {
		*f.dest = strings.TrimSpace(r.PostForm.Get(f.field))
		if *f.dest == "" {
			return models.DeviceParams{}, fmt.Errorf("%w: %s is required", models.ErrInvalidParam, f.field)
		}
	}

	p.IP = formOptional(r, "ip")
	if p.IP != nil {
		if _, err := netip.ParseAddr(*p.IP); err != nil {
			return models.DeviceParams{}, fmt.Errorf("%w: ip %q is not an address", models.ErrInvalidParam, *p.IP)
		}
	}
	p.Comments = formOptional(r, "comments")

	return p, nil
}

func formInt(r *http.Request, field string) (int, error) {
	s := strings.TrimSpace(r.PostForm.Get(field))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", models.ErrInvalidParam, field)
	}
	return n, nil
}

// formOptional returns nil for a missing or blank field
func formOptional(r *http.Request, field string) *string {
	s := strings.TrimSpace(r.PostForm.Get(field))
	if s == "" {
		return nil
	}
	return &s
}
