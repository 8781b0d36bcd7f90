package service

import (
	"context"
	"fmt"
	"strings"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

// Atomic runs fn inside a single transaction, giving it a repo bundle bound
// to that transaction. *repo.Store satisfies it.
type Atomic interface {
	Atomic(ctx context.Context, fn func(repo.Repos) error) error
}

// VehicleService implements business logic for Vehicle operations.
type VehicleService struct {
	vehicles repo.VehicleRepo
	store    Atomic
}

// NewVehicleService constructs a VehicleService. The store is used only for
// the delete cascade.
func NewVehicleService(vehicles repo.VehicleRepo, store Atomic) *VehicleService {
	return &VehicleService{vehicles: vehicles, store: store}
}

// Create validates and persists a new vehicle.
func (s *VehicleService) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Create(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id string) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all vehicles in creation order. Always returns a non-nil
// slice.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.List: %w", err)
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, nil
}

// Update validates and persists a full-record replace of an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Update(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle along with every trip and odometer reading that
// references it. The cascade runs in a single transaction so a failure
// leaves the vehicle and its records intact.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		if _, err := r.Vehicles.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := r.Trips.DeleteByVehicle(ctx, id); err != nil {
			return err
		}
		if _, err := r.Odometer.DeleteByVehicle(ctx, id); err != nil {
			return err
		}
		return r.Vehicles.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

func validateVehicle(vehicle domain.Vehicle) error {
	if strings.TrimSpace(vehicle.Make) == "" && strings.TrimSpace(vehicle.Model) == "" {
		return fmt.Errorf("%w: a vehicle needs at least a make or a model", domain.ErrValidation)
	}
	if vehicle.Year != nil && (*vehicle.Year < 1900 || *vehicle.Year > 2200) {
		return fmt.Errorf("%w: year is out of range", domain.ErrValidation)
	}
	if vehicle.Odometer != nil && *vehicle.Odometer < 0 {
		return fmt.Errorf("%w: odometer must not be negative", domain.ErrValidation)
	}
	return nil
}
