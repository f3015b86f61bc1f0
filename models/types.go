// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"time"
)

// EmptyName is the label shown for a slot that no device occupies.
const EmptyName = "-- empty --"

// Validation and lookup failures. Handlers map these to HTTP statuses.
var (
	ErrUnknownRack   = errors.New("unknown rack")
	ErrUnknownDevice = errors.New("unknown device")
	ErrSlotRange     = errors.New("device range error")
	ErrForbidden     = errors.New("no access")
	ErrBadOwner      = errors.New("bad owner")
	ErrInvalidParam  = errors.New("invalid parameter")
)

// Domain types

type Rack struct {
	Name   string `json:"name" toml:"name"`
	Order  int    `json:"order" toml:"order"`
	Height int    `json:"height" toml:"height"`
}

type Device struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Rack          string    `json:"rack"`
	FirstSlot     int       `json:"first_slot"`
	LastSlot      int       `json:"last_slot"`
	Owner         string    `json:"owner"`
	Contact       string    `json:"contact"`
	ServiceLevel  string    `json:"service_level"`
	Model         string    `json:"model"`
	IP            *string   `json:"ip,omitempty"`
	Comments      *string   `json:"comments,omitempty"`
	LastUpdatedBy string    `json:"last_updated_by"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Slots is the number of slots the device occupies.
func (d Device) Slots() int {
	return d.LastSlot - d.FirstSlot + 1
}

// Cell is one rendered table cell: an empty placeholder or one or more
// devices merged together. IDs is nil for placeholders.
type Cell struct {
	Names []string
	IDs   []string
	Span  int
	Rack  string
	Slot  int
}

func NewDeviceCell(d Device, slot, span int) *Cell {
	return &Cell{
		Names: []string{d.Name},
		IDs:   []string{d.ID},
		Span:  span,
		Rack:  d.Rack,
		Slot:  slot,
	}
}

func NewEmptyCell(rack string, slot int) *Cell {
	return &Cell{
		Names: []string{EmptyName},
		Span:  1,
		Rack:  rack,
		Slot:  slot,
	}
}

// IsEmpty reports whether the cell is a placeholder for unoccupied slots.
func (c *Cell) IsEmpty() bool {
	return c.IDs == nil
}

// Merge adds another device to the cell.
func (c *Cell) Merge(name, id string) {
	if c.IDs == nil {
		// a placeholder absorbing a device stops being a placeholder
		c.Names = nil
		c.IDs = []string{}
	}
	c.Names = append(c.Names, name)
	c.IDs = append(c.IDs, id)
}

// Request types

// DeviceParams is the field set submitted by the add and update forms.
type DeviceParams struct {
	Rack      string
	FirstSlot int
	LastSlot  int
	Name      string
	Owner     string
	Contact   string
	Service   string
	Model     string
	IP        *string
	Comments  *string
}

// Apply copies the submitted fields onto d.
func (p DeviceParams) Apply(d *Device) {
	d.Name = p.Name
	d.Rack = p.Rack
	d.FirstSlot = p.FirstSlot
	d.LastSlot = p.LastSlot
	d.Owner = p.Owner
	d.Contact = p.Contact
	d.ServiceLevel = p.Service
	d.Model = p.Model
	d.IP = p.IP
	d.Comments = p.Comments
}

// ValidRange reports whether first..last fits in a rack of the given height.
func ValidRange(first, last, height int) bool {
	return 1 <= first && first <= last && last <= height
}

// Page types

// Viewer is the authentication state every page receives.
type Viewer struct {
	User      string
	AuthLink  string
	CanUpdate bool
}

type RacksPage struct {
	Viewer
	Racks []Rack
	Rows  [][]*Cell
}

type RackPage struct {
	Viewer
	Rack    Rack
	Devices []Device
}

type DevicePage struct {
	Viewer
	Device Device
	Rack   Rack
	Info   string
}

type AddPage struct {
	Viewer
	Rack  Rack
	Slot  int
	Email string
}

type DonePage struct {
	ID string
}

type ErrorPage struct {
	Status  int
	Title   string
	Message string
}
