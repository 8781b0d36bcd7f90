// Package service contains the business logic for the Trip Logs API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"math"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
	"triplogs/internal/stats"
)

// TripService implements business logic for Trip operations.
// It holds both trip and vehicle repos because creating a trip can read and
// write the attributed vehicle's odometer, plus the store for running that
// pair of writes in one transaction.
type TripService struct {
	trips    repo.TripRepo
	vehicles repo.VehicleRepo
	store    Atomic
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, vehicles repo.VehicleRepo, store Atomic) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, store: store}
}

// Create validates and persists a new trip.
//
// When the trip is attributed to a vehicle and carries no odometer values of
// its own, they are derived: odometerStart comes from the vehicle's trip
// history (or its stored odometer), and odometerEnd = odometerStart +
// round(miles) when miles is positive. A derived odometerEnd is pushed back
// onto the vehicle's stored odometer so the next trip continues from it.
// User-supplied odometer values always win and are left untouched.
//
// The vehicle-attributed path runs in one transaction so a failed insert
// never leaves the vehicle's odometer advanced without a matching trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	if trip.VehicleID == nil {
		result, err := s.trips.Create(ctx, trip)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		return result, nil
	}

	var result domain.Trip
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		vehicle, err := r.Vehicles.GetByID(ctx, *trip.VehicleID)
		if err != nil {
			return err
		}

		if trip.OdometerStart == nil {
			history, err := r.Trips.List(ctx)
			if err != nil {
				return err
			}
			trip.OdometerStart = stats.NextOdometerStart(vehicle, history)

			if trip.OdometerStart != nil && trip.OdometerEnd == nil && trip.Miles > 0 {
				end := *trip.OdometerStart + int64(math.Round(trip.Miles))
				trip.OdometerEnd = &end
				if err := r.Vehicles.UpdateOdometer(ctx, vehicle.ID, end); err != nil {
					return err
				}
			}
		}

		result, err = r.Trips.Create(ctx, trip)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, newest first. Always returns a non-nil slice so
// callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// ListByYear returns the trips of one calendar year, newest first.
func (s *TripService) ListByYear(ctx context.Context, year int) ([]domain.Trip, error) {
	trips, err := s.trips.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByYear: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// Years returns the distinct calendar years with recorded trips, newest first.
func (s *TripService) Years(ctx context.Context) ([]int, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Years: %w", err)
	}
	years := stats.Years(trips)
	if years == nil {
		years = []int{}
	}
	return years, nil
}

// NextOdometer returns the odometer value a new trip for the vehicle would
// start from, or nil when neither the vehicle nor its trip history knows
// one.
func (s *TripService) NextOdometer(ctx context.Context, vehicleID string) (*int64, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.NextOdometer: %w", err)
	}
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.NextOdometer: %w", err)
	}
	return stats.NextOdometerStart(vehicle, trips), nil
}

// Update validates and persists a full-record replace of an existing trip.
// No odometer derivation happens on update: the record is stored exactly as
// submitted.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if trip.VehicleID != nil {
		if _, err := s.vehicles.GetByID(ctx, *trip.VehicleID); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
func validateTrip(trip domain.Trip) error {
	if trip.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !validClock(trip.StartTime) {
		return fmt.Errorf("%w: start_time must be HH:MM", domain.ErrValidation)
	}
	if !validClock(trip.EndTime) {
		return fmt.Errorf("%w: end_time must be HH:MM", domain.ErrValidation)
	}
	if trip.Miles < 0 || math.IsNaN(trip.Miles) || math.IsInf(trip.Miles, 0) {
		return fmt.Errorf("%w: miles must be a non-negative number", domain.ErrValidation)
	}
	if trip.GrossCents < 0 {
		return fmt.Errorf("%w: gross earnings must not be negative", domain.ErrValidation)
	}
	if trip.Expenses.GasolineCents < 0 || trip.Expenses.TollsCents < 0 || trip.Expenses.FoodCents < 0 {
		return fmt.Errorf("%w: expenses must not be negative", domain.ErrValidation)
	}
	if trip.OdometerStart != nil && trip.OdometerEnd != nil && *trip.OdometerEnd < *trip.OdometerStart {
		return fmt.Errorf("%w: odometer_end must not be before odometer_start", domain.ErrValidation)
	}
	return nil
}

func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return h < 24 && m < 60
}
