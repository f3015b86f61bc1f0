// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/celskeggs/hwops/models"
)

type racksFile struct {
	Racks []models.Rack `toml:"rack"`
}

// LoadRacks reads rack definitions from a TOML file:
//
//	[[rack]]
//	name = "A1"
//	order = 1
//	height = 42
func LoadRacks(path string) ([]models.Rack, error) {
	var f racksFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load racks %s: %w", path, err)
	}
	return f.Racks, validateRacks(f.Racks)
}

// ParseRacks decodes rack definitions from TOML text
func ParseRacks(data string) ([]models.Rack, error) {
	var f racksFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse racks: %w", err)
	}
	return f.Racks, validateRacks(f.Racks)
}

func validateRacks(racks []models.Rack) error {
	seen := make(map[string]bool, len(racks))
	for _, r := range racks {
		if r.Name == "" {
			return fmt.Errorf("rack without a name: %w", models.ErrInvalidParam)
		}
		if seen[r.Name] {
			return fmt.Errorf("rack %q defined twice: %w", r.Name, models.ErrInvalidParam)
		}
		seen[r.Name] = true
		if r.Height < 1 {
			return fmt.Errorf("rack %q has height %d: %w", r.Name, r.Height, models.ErrInvalidParam)
		}
	}
	return nil
}
