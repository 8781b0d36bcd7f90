package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"triplogs/internal/domain"
)

// OdometerRepo defines the persistence operations for OdometerReadings.
type OdometerRepo interface {
	// Create inserts a new reading and returns the persisted record.
	Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error)

	// List returns all readings ordered by date descending, newest-created
	// first within a date.
	List(ctx context.Context) ([]domain.OdometerReading, error)

	// Delete removes a reading by ID. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByVehicle removes every reading for the given vehicle and
	// returns how many were removed.
	DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error)

	// ReplaceAll removes every reading and inserts the given ones,
	// preserving their IDs. Used by restore; run it inside a transaction.
	ReplaceAll(ctx context.Context, readings []domain.OdometerReading) error
}

type sqliteOdometerRepo struct {
	db db
}

// NewOdometerRepo constructs an OdometerRepo backed by the provided connection.
func NewOdometerRepo(db db) OdometerRepo {
	return &sqliteOdometerRepo{db: db}
}

const odometerColumns = `id, vehicle_id, date, odometer, created_at`

func (r *sqliteOdometerRepo) Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error) {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	reading.CreatedAt = now()

	if err := r.insert(ctx, reading); err != nil {
		return domain.OdometerReading{}, fmt.Errorf("repo.OdometerRepo.Create: %w", err)
	}
	return reading, nil
}

func (r *sqliteOdometerRepo) insert(ctx context.Context, reading domain.OdometerReading) error {
	const q = `INSERT INTO odometer_readings (` + odometerColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		reading.ID,
		reading.VehicleID,
		encodeDate(reading.Date),
		reading.Odometer,
		encodeTime(reading.CreatedAt),
	)
	return err
}

func (r *sqliteOdometerRepo) List(ctx context.Context) ([]domain.OdometerReading, error) {
	const q = `SELECT ` + odometerColumns + ` FROM odometer_readings
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.OdometerRepo.List: %w", err)
	}
	defer rows.Close()

	var readings []domain.OdometerReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.OdometerRepo.List: scan: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OdometerRepo.List: rows: %w", err)
	}
	return readings, nil
}

func (r *sqliteOdometerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM odometer_readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.OdometerRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("repo.OdometerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqliteOdometerRepo) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM odometer_readings WHERE vehicle_id = ?`, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("repo.OdometerRepo.DeleteByVehicle: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *sqliteOdometerRepo) ReplaceAll(ctx context.Context, readings []domain.OdometerReading) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM odometer_readings`); err != nil {
		return fmt.Errorf("repo.OdometerRepo.ReplaceAll: clear: %w", err)
	}
	ts := now()
	for _, reading := range readings {
		if reading.ID == "" {
			reading.ID = uuid.NewString()
		}
		if reading.CreatedAt.IsZero() {
			reading.CreatedAt = ts
		}
		if err := r.insert(ctx, reading); err != nil {
			return fmt.Errorf("repo.OdometerRepo.ReplaceAll: insert %s: %w", reading.ID, err)
		}
	}
	return nil
}

func scanReading(s scanner) (domain.OdometerReading, error) {
	var (
		reading       domain.OdometerReading
		date, created string
	)

	err := s.Scan(&reading.ID, &reading.VehicleID, &date, &reading.Odometer, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OdometerReading{}, domain.ErrNotFound
		}
		return domain.OdometerReading{}, err
	}

	if reading.Date, err = decodeDate(date); err != nil {
		return domain.OdometerReading{}, err
	}
	if reading.CreatedAt, err = decodeTime(created); err != nil {
		return domain.OdometerReading{}, err
	}
	return reading, nil
}
