// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package layout

import (
	"fmt"
	"sort"

	"github.com/celskeggs/hwops/models"
)

// Table is every rack laid out side by side. Rows runs top to bottom, so the
// last row holds slot 1.
type Table struct {
	Racks     []models.Rack
	Rows      [][]*models.Cell
	MaxHeight int
}

// Build lays out all racks and the devices mounted in them.
// Any device with a bad slot range or an unknown rack fails the whole build.
func Build(racks []models.Rack, devices []models.Device) (*Table, error) {
	if len(racks) == 0 {
		return &Table{}, nil
	}

	sorted := make([]models.Rack, len(racks))
	copy(sorted, racks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].Name < sorted[j].Name
	})

	position := make(map[string]int, len(sorted))
	maxHeight := 0
	for i, rack := range sorted {
		position[rack.Name] = i
		if rack.Height > maxHeight {
			maxHeight = rack.Height
		}
	}

	inRack := make([][]models.Device, len(sorted))
	for _, d := range devices {
		i, ok := position[d.Rack]
		if !ok {
			return nil, fmt.Errorf("device %q: %w: %q", d.Name, models.ErrUnknownRack, d.Rack)
		}
		inRack[i] = append(inRack[i], d)
	}

	columns := make([][]*models.Cell, len(sorted))
	for i, rack := range sorted {
		column, err := Column(rack, inRack[i], maxHeight)
		if err != nil {
			return nil, err
		}
		columns[i] = column
	}

	return &Table{
		Racks:     sorted,
		Rows:      Spannify(columns, maxHeight),
		MaxHeight: maxHeight,
	}, nil
}

// Column lays out a single rack, top slot first. Entries past the rack's
// height up to maxHeight are nil.
func Column(rack models.Rack, devices []models.Device, maxHeight int) ([]*models.Cell, error) {
	sorted := make([]models.Device, len(devices))
	copy(sorted, devices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FirstSlot < sorted[j].FirstSlot
	})

	var column []*models.Cell
	next := 1
	for _, d := range sorted {
		if !models.ValidRange(d.FirstSlot, d.LastSlot, rack.Height) {
			return nil, fmt.Errorf("device %q slots %d-%d in rack %q (height %d): %w",
				d.Name, d.FirstSlot, d.LastSlot, rack.Name, rack.Height, models.ErrSlotRange)
		}

		if next > d.FirstSlot {
			mergeBackward(column, d, next)
		}
		for next < d.FirstSlot {
			column = append(column, models.NewEmptyCell(rack.Name, next))
			next++
		}
		if slots := d.LastSlot - next + 1; slots > 0 {
			column = append(column, models.NewDeviceCell(d, next, slots))
			next += slots
		}
	}

	for next <= rack.Height {
		column = append(column, models.NewEmptyCell(rack.Name, next))
		next++
	}
	for next <= maxHeight {
		column = append(column, nil)
		next++
	}

	for i, j := 0, len(column)-1; i < j; i, j = i+1, j-1 {
		column[i], column[j] = column[j], column[i]
	}
	return column, nil
}

// mergeBackward folds d into the cells it overlaps, walking back from the
// most recent one. Partial overlaps are not handled precisely: the walk
// subtracts the span of the cell it is about to visit, not the one it merged.
func mergeBackward(column []*models.Cell, d models.Device, next int) {
	backwards := next - 1
	for cidx := len(column) - 1; cidx >= 0 && backwards >= d.FirstSlot; {
		column[cidx].Merge(d.Name, d.ID)
		cidx--
		if cidx < 0 {
			break
		}
		backwards -= column[cidx].Span
	}
}

// Spannify transposes columns into table rows. Row i holds each column's
// entry that starts at row i; a cell spanning several rows is absent from
// the rows it covers below its first.
func Spannify(columns [][]*models.Cell, height int) [][]*models.Cell {
	if len(columns) == 0 {
		return nil
	}
	rows := make([][]*models.Cell, height)
	for _, column := range columns {
		ri := 0
		for _, cell := range column {
			if ri >= height {
				break
			}
			rows[ri] = append(rows[ri], cell)
			if cell != nil {
				ri += cell.Span
			} else {
				ri++
			}
		}
	}
	return rows
}
