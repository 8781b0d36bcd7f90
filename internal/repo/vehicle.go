package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"triplogs/internal/domain"
)

// VehicleRepo defines the persistence operations for Vehicles.
type VehicleRepo interface {
	// Create inserts a new vehicle and returns the persisted record.
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)

	// GetByID retrieves a vehicle by ID.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Vehicle, error)

	// List returns all vehicles in creation order (oldest first).
	List(ctx context.Context) ([]domain.Vehicle, error)

	// Update overwrites all mutable fields of an existing vehicle.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)

	// UpdateOdometer sets just the stored odometer reading of a vehicle.
	// Returns domain.ErrNotFound if no vehicle with that ID exists.
	UpdateOdometer(ctx context.Context, id string, odometer int64) error

	// Delete removes a vehicle by ID. It does NOT touch the vehicle's trips;
	// the cascade is the service layer's documented responsibility.
	Delete(ctx context.Context, id string) error

	// ReplaceAll removes every vehicle and inserts the given ones,
	// preserving their IDs. Used by restore; run it inside a transaction.
	ReplaceAll(ctx context.Context, vehicles []domain.Vehicle) error
}

type sqliteVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &sqliteVehicleRepo{db: db}
}

const vehicleColumns = `id, year, make, model, license_plate, odometer, created_at, updated_at`

func (r *sqliteVehicleRepo) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	vehicle.CreatedAt = now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	if err := r.insert(ctx, vehicle); err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Create: %w", err)
	}
	return vehicle, nil
}

func (r *sqliteVehicleRepo) insert(ctx context.Context, v domain.Vehicle) error {
	const q = `INSERT INTO vehicles (` + vehicleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		v.ID,
		nullInt(v.Year),
		v.Make,
		v.Model,
		v.LicensePlate,
		nullInt64(v.Odometer),
		encodeTime(v.CreatedAt),
		encodeTime(v.UpdatedAt),
	)
	return err
}

func (r *sqliteVehicleRepo) GetByID(ctx context.Context, id string) (domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ?`

	v, err := scanVehicle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.GetByID: %w", err)
	}
	return v, nil
}

func (r *sqliteVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}
	return vehicles, nil
}

func (r *sqliteVehicleRepo) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	const q = `
		UPDATE vehicles
		SET year = ?, make = ?, model = ?, license_plate = ?, odometer = ?, updated_at = ?
		WHERE id = ?`

	vehicle.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, q,
		nullInt(vehicle.Year),
		vehicle.Make,
		vehicle.Model,
		vehicle.LicensePlate,
		nullInt64(vehicle.Odometer),
		encodeTime(vehicle.UpdatedAt),
		vehicle.ID,
	)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Vehicle{}, fmt.Errorf("repo.VehicleRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, vehicle.ID)
}

func (r *sqliteVehicleRepo) UpdateOdometer(ctx context.Context, id string, odometer int64) error {
	const q = `UPDATE vehicles SET odometer = ?, updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, odometer, encodeTime(now()), id)
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.UpdateOdometer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("repo.VehicleRepo.UpdateOdometer: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqliteVehicleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("repo.VehicleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqliteVehicleRepo) ReplaceAll(ctx context.Context, vehicles []domain.Vehicle) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vehicles`); err != nil {
		return fmt.Errorf("repo.VehicleRepo.ReplaceAll: clear: %w", err)
	}
	ts := now()
	for _, v := range vehicles {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if v.CreatedAt.IsZero() {
			v.CreatedAt = ts
		}
		v.UpdatedAt = ts
		if err := r.insert(ctx, v); err != nil {
			return fmt.Errorf("repo.VehicleRepo.ReplaceAll: insert %s: %w", v.ID, err)
		}
	}
	return nil
}

func scanVehicle(s scanner) (domain.Vehicle, error) {
	var (
		v                domain.Vehicle
		year             sql.NullInt64
		odometer         sql.NullInt64
		created, updated string
	)

	err := s.Scan(&v.ID, &year, &v.Make, &v.Model, &v.LicensePlate, &odometer, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vehicle{}, domain.ErrNotFound
		}
		return domain.Vehicle{}, err
	}

	if v.CreatedAt, err = decodeTime(created); err != nil {
		return domain.Vehicle{}, err
	}
	if v.UpdatedAt, err = decodeTime(updated); err != nil {
		return domain.Vehicle{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	if odometer.Valid {
		v.Odometer = &odometer.Int64
	}
	return v, nil
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
