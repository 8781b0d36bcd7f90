package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"triplogs/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete SQLite
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record. An empty
	// ID is filled with a fresh UUID; CreatedAt/UpdatedAt are always set here.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by ID.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns all trips ordered by date descending, newest-created
	// first within a date.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListByYear returns the trips of one calendar year, same order as List.
	ListByYear(ctx context.Context, year int) ([]domain.Trip, error)

	// Update overwrites all mutable fields of an existing trip (full-record
	// replace) and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByVehicle removes every trip attributed to the given vehicle and
	// returns how many were removed. Deleting zero trips is not an error.
	DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error)

	// ReplaceAll removes every trip and inserts the given ones, preserving
	// their IDs. Used by restore; run it inside a transaction.
	ReplaceAll(ctx context.Context, trips []domain.Trip) error
}

type sqliteTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided connection.
// In production pass the *sql.DB; pass a *sql.Tx for transactional work.
func NewTripRepo(db db) TripRepo {
	return &sqliteTripRepo{db: db}
}

const tripColumns = `id, date, start_time, end_time, miles, gross_cents,
	gasoline_cents, tolls_cents, food_cents, vehicle_id,
	odometer_start, odometer_end, created_at, updated_at`

func (r *sqliteTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	trip.CreatedAt = now()
	trip.UpdatedAt = trip.CreatedAt

	if err := r.insert(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip, nil
}

func (r *sqliteTripRepo) insert(ctx context.Context, trip domain.Trip) error {
	const q = `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		trip.ID,
		encodeDate(trip.Date),
		trip.StartTime,
		trip.EndTime,
		trip.Miles,
		trip.GrossCents,
		trip.Expenses.GasolineCents,
		trip.Expenses.TollsCents,
		trip.Expenses.FoodCents,
		nullString(trip.VehicleID),
		nullInt64(trip.OdometerStart),
		nullInt64(trip.OdometerEnd),
		encodeTime(trip.CreatedAt),
		encodeTime(trip.UpdatedAt),
	)
	return err
}

func (r *sqliteTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	trip, err := scanTrip(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *sqliteTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY date DESC, created_at DESC`
	return r.queryTrips(ctx, "List", q)
}

func (r *sqliteTripRepo) ListByYear(ctx context.Context, year int) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips
		WHERE date BETWEEN ? AND ?
		ORDER BY date DESC, created_at DESC`
	return r.queryTrips(ctx, "ListByYear", q,
		fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year))
}

func (r *sqliteTripRepo) queryTrips(ctx context.Context, op, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}
	return trips, nil
}

func (r *sqliteTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET date = ?, start_time = ?, end_time = ?, miles = ?, gross_cents = ?,
		    gasoline_cents = ?, tolls_cents = ?, food_cents = ?, vehicle_id = ?,
		    odometer_start = ?, odometer_end = ?, updated_at = ?
		WHERE id = ?`

	trip.UpdatedAt = now()
	res, err := r.db.ExecContext(ctx, q,
		encodeDate(trip.Date),
		trip.StartTime,
		trip.EndTime,
		trip.Miles,
		trip.GrossCents,
		trip.Expenses.GasolineCents,
		trip.Expenses.TollsCents,
		trip.Expenses.FoodCents,
		nullString(trip.VehicleID),
		nullInt64(trip.OdometerStart),
		nullInt64(trip.OdometerEnd),
		encodeTime(trip.UpdatedAt),
		trip.ID,
	)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, trip.ID)
}

func (r *sqliteTripRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *sqliteTripRepo) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE vehicle_id = ?`, vehicleID)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.DeleteByVehicle: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *sqliteTripRepo) ReplaceAll(ctx context.Context, trips []domain.Trip) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trips`); err != nil {
		return fmt.Errorf("repo.TripRepo.ReplaceAll: clear: %w", err)
	}
	ts := now()
	for _, trip := range trips {
		if trip.ID == "" {
			trip.ID = uuid.NewString()
		}
		if trip.CreatedAt.IsZero() {
			trip.CreatedAt = ts
		}
		trip.UpdatedAt = ts
		if err := r.insert(ctx, trip); err != nil {
			return fmt.Errorf("repo.TripRepo.ReplaceAll: insert %s: %w", trip.ID, err)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing scanTrip to
// be reused for both QueryRowContext and QueryContext calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip, handling the
// nullable vehicle and odometer columns and the TEXT date encodings.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                      domain.Trip
		date, created, updated string
		vehicleID              sql.NullString
		odoStart, odoEnd       sql.NullInt64
	)

	err := s.Scan(
		&t.ID, &date, &t.StartTime, &t.EndTime, &t.Miles, &t.GrossCents,
		&t.Expenses.GasolineCents, &t.Expenses.TollsCents, &t.Expenses.FoodCents,
		&vehicleID, &odoStart, &odoEnd, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if t.Date, err = decodeDate(date); err != nil {
		return domain.Trip{}, err
	}
	if t.CreatedAt, err = decodeTime(created); err != nil {
		return domain.Trip{}, err
	}
	if t.UpdatedAt, err = decodeTime(updated); err != nil {
		return domain.Trip{}, err
	}
	if vehicleID.Valid {
		t.VehicleID = &vehicleID.String
	}
	if odoStart.Valid {
		t.OdometerStart = &odoStart.Int64
	}
	if odoEnd.Valid {
		t.OdometerEnd = &odoEnd.Int64
	}
	return t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}
