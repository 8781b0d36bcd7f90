package service

import (
	"context"
	"fmt"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

// OdometerService implements business logic for standalone odometer
// readings. A reading also updates its vehicle's stored odometer so the
// next auto-filled trip picks up from it.
type OdometerService struct {
	readings repo.OdometerRepo
	vehicles repo.VehicleRepo
}

// NewOdometerService constructs an OdometerService.
func NewOdometerService(readings repo.OdometerRepo, vehicles repo.VehicleRepo) *OdometerService {
	return &OdometerService{readings: readings, vehicles: vehicles}
}

// Create validates and persists a new odometer reading, then pushes the
// value onto the vehicle's stored odometer.
func (s *OdometerService) Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error) {
	if reading.VehicleID == "" {
		return domain.OdometerReading{}, fmt.Errorf("%w: vehicle_id is required", domain.ErrValidation)
	}
	if reading.Date.IsZero() {
		return domain.OdometerReading{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if reading.Odometer < 0 {
		return domain.OdometerReading{}, fmt.Errorf("%w: odometer must not be negative", domain.ErrValidation)
	}
	if _, err := s.vehicles.GetByID(ctx, reading.VehicleID); err != nil {
		return domain.OdometerReading{}, fmt.Errorf("service.OdometerService.Create: %w", err)
	}
	result, err := s.readings.Create(ctx, reading)
	if err != nil {
		return domain.OdometerReading{}, fmt.Errorf("service.OdometerService.Create: %w", err)
	}
	if err := s.vehicles.UpdateOdometer(ctx, reading.VehicleID, reading.Odometer); err != nil {
		return domain.OdometerReading{}, fmt.Errorf("service.OdometerService.Create: %w", err)
	}
	return result, nil
}

// List returns all odometer readings, newest first. Always returns a
// non-nil slice.
func (s *OdometerService) List(ctx context.Context) ([]domain.OdometerReading, error) {
	readings, err := s.readings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.OdometerService.List: %w", err)
	}
	if readings == nil {
		readings = []domain.OdometerReading{}
	}
	return readings, nil
}

// Delete removes an odometer reading by ID.
func (s *OdometerService) Delete(ctx context.Context, id string) error {
	if err := s.readings.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.OdometerService.Delete: %w", err)
	}
	return nil
}
