// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/celskeggs/hwops/models"
)

// Store reads and writes racks and devices.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const deviceColumns = `
	id, name, rack, rack_first_slot, rack_last_slot, owner, contact,
	service_level, model, ip, comments, last_updated_by, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanDevice(row scanner) (models.Device, error) {
	var d models.Device
	var ip, comments sql.NullString
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Rack,
		&d.FirstSlot,
		&d.LastSlot,
		&d.Owner,
		&d.Contact,
		&d.ServiceLevel,
		&d.Model,
		&ip,
		&comments,
		&d.LastUpdatedBy,
		&d.UpdatedAt,
	)
	if err != nil {
		return models.Device{}, err
	}
	if ip.Valid {
		d.IP = &ip.String
	}
	if comments.Valid {
		d.Comments = &comments.String
	}
	return d, nil
}

// AllRacks returns every rack in display order
func (s *Store) AllRacks(ctx context.Context) ([]models.Rack, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, display_order, height FROM rack ORDER BY display_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query racks: %w", err)
	}
	defer rows.Close()

	racks := []models.Rack{}
	for rows.Next() {
		var r models.Rack
		if err := rows.Scan(&r.Name, &r.Order, &r.Height); err != nil {
			return nil, fmt.Errorf("failed to scan rack: %w", err)
		}
		racks = append(racks, r)
	}
	return racks, rows.Err()
}

// Rack returns the named rack, or models.ErrUnknownRack
func (s *Store) Rack(ctx context.Context, name string) (models.Rack, error) {
	return getRack(ctx, s.db, name)
}

func getRack(ctx context.Context, q queryer, name string) (models.Rack, error) {
	var r models.Rack
	err := q.QueryRowContext(ctx, `
		SELECT name, display_order, height FROM rack WHERE name = $1
	`, name).Scan(&r.Name, &r.Order, &r.Height)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Rack{}, fmt.Errorf("%w: %q", models.ErrUnknownRack, name)
	}
	if err != nil {
		return models.Rack{}, fmt.Errorf("failed to query rack: %w", err)
	}
	return r, nil
}

// AllDevices returns every device, ordered by rack and first slot
func (s *Store) AllDevices(ctx context.Context) ([]models.Device, error) {
	return s.queryDevices(ctx, `SELECT`+deviceColumns+` FROM device ORDER BY rack, rack_first_slot`)
}

// DevicesInRack returns the devices mounted in one rack, lowest slot first
func (s *Store) DevicesInRack(ctx context.Context, rack string) ([]models.Device, error) {
	return s.queryDevices(ctx, `SELECT`+deviceColumns+` FROM device WHERE rack = $1 ORDER BY rack_first_slot`, rack)
}

func (s *Store) queryDevices(ctx context.Context, query string, args ...any) ([]models.Device, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// Device returns one device by id, or models.ErrUnknownDevice
func (s *Store) Device(ctx context.Context, id string) (models.Device, error) {
	d, err := scanDevice(s.db.QueryRowContext(ctx, `SELECT`+deviceColumns+` FROM device WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Device{}, fmt.Errorf("%w: %q", models.ErrUnknownDevice, id)
	}
	if err != nil {
		return models.Device{}, fmt.Errorf("failed to query device: %w", err)
	}
	return d, nil
}

// AddDevice inserts d. The rack lookup, range check, and insert commit
// together; nothing is written if any of them fails.
func (s *Store) AddDevice(ctx context.Context, d *models.Device) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkPlacement(ctx, tx, d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO device (id, name, rack, rack_first_slot, rack_last_slot, owner, contact,
				service_level, model, ip, comments, last_updated_by, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, d.ID, d.Name, d.Rack, d.FirstSlot, d.LastSlot, d.Owner, d.Contact,
			d.ServiceLevel, d.Model, d.IP, d.Comments, d.LastUpdatedBy, d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert device: %w", err)
		}
		return nil
	})
}

// UpdateDevice overwrites the stored record with d's fields.
func (s *Store) UpdateDevice(ctx context.Context, d *models.Device) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkPlacement(ctx, tx, d); err != nil {
			return err
		}
		d.UpdatedAt = time.Now().UTC()
		res, err := tx.ExecContext(ctx, `
			UPDATE device SET
				name = $1, rack = $2, rack_first_slot = $3, rack_last_slot = $4,
				owner = $5, contact = $6, service_level = $7, model = $8,
				ip = $9, comments = $10, last_updated_by = $11, updated_at = $12
			WHERE id = $13
		`, d.Name, d.Rack, d.FirstSlot, d.LastSlot, d.Owner, d.Contact, d.ServiceLevel,
			d.Model, d.IP, d.Comments, d.LastUpdatedBy, d.UpdatedAt, d.ID)
		if err != nil {
			return fmt.Errorf("failed to update device: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update device: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %q", models.ErrUnknownDevice, d.ID)
		}
		return nil
	})
}

func checkPlacement(ctx context.Context, tx *sql.Tx, d *models.Device) error {
	rack, err := getRack(ctx, tx, d.Rack)
	if err != nil {
		return err
	}
	if !models.ValidRange(d.FirstSlot, d.LastSlot, rack.Height) {
		return fmt.Errorf("slots %d-%d in rack %q (height %d): %w",
			d.FirstSlot, d.LastSlot, rack.Name, rack.Height, models.ErrSlotRange)
	}
	return nil
}

// SyncRacks creates or updates the given racks. Racks not listed are left alone.
// A rack may not shrink below a device mounted in it; nothing is synced if one would.
func (s *Store) SyncRacks(ctx context.Context, racks []models.Rack) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, r := range racks {
			var highest sql.NullInt64
			err := tx.QueryRowContext(ctx, `
				SELECT MAX(rack_last_slot) FROM device WHERE rack = $1
			`, r.Name).Scan(&highest)
			if err != nil {
				return fmt.Errorf("failed to check rack %q: %w", r.Name, err)
			}
			if highest.Valid && int(highest.Int64) > r.Height {
				return fmt.Errorf("rack %q height %d is below a device at slot %d: %w",
					r.Name, r.Height, highest.Int64, models.ErrSlotRange)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO rack (name, display_order, height)
				VALUES ($1, $2, $3)
				ON CONFLICT (name) DO UPDATE SET
					display_order = EXCLUDED.display_order,
					height = EXCLUDED.height
			`, r.Name, r.Order, r.Height)
			if err != nil {
				return fmt.Errorf("failed to sync rack %q: %w", r.Name, err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
