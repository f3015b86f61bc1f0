// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package layout packs devices into rack columns and aligns the columns into
table rows for HTML rendering.

# Columns

Column walks a rack's slots from 1 upward. Gaps become "-- empty --"
placeholder cells of span 1, each device becomes one cell spanning its
slots, and slots above the rack's height (up to the tallest rack) become
nil padding. The result is reversed so slot 1 renders at the bottom.

A device that starts below the next free slot overlaps what came before it.
Its name and id are merged into the preceding cells; partial overlaps are
not resolved precisely.

# Rows

Spannify transposes columns into rows. A cell spanning n slots appears only
in its first row, so the renderer emits rowspan=n and skips it afterwards:

	table, err := layout.Build(racks, devices)
	for _, row := range table.Rows {
		for _, cell := range row { ... }
	}

Build fails as a whole when any device's range is invalid for its rack.
*/
package layout
