package service

import (
	"context"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

// Function-field test doubles for the repo interfaces. Tests set only the
// fields they expect to be called; an unexpected call panics on the nil
// field and fails loudly.

type mockTripRepo struct {
	CreateFn          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFn         func(ctx context.Context, id string) (domain.Trip, error)
	ListFn            func(ctx context.Context) ([]domain.Trip, error)
	ListByYearFn      func(ctx context.Context, year int) ([]domain.Trip, error)
	UpdateFn          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	DeleteFn          func(ctx context.Context, id string) error
	DeleteByVehicleFn func(ctx context.Context, vehicleID string) (int64, error)
	ReplaceAllFn      func(ctx context.Context, trips []domain.Trip) error
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateFn(ctx, trip)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.ListFn(ctx)
}

func (m *mockTripRepo) ListByYear(ctx context.Context, year int) ([]domain.Trip, error) {
	return m.ListByYearFn(ctx, year)
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateFn(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockTripRepo) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	return m.DeleteByVehicleFn(ctx, vehicleID)
}

func (m *mockTripRepo) ReplaceAll(ctx context.Context, trips []domain.Trip) error {
	return m.ReplaceAllFn(ctx, trips)
}

type mockVehicleRepo struct {
	CreateFn         func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByIDFn        func(ctx context.Context, id string) (domain.Vehicle, error)
	ListFn           func(ctx context.Context) ([]domain.Vehicle, error)
	UpdateFn         func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	UpdateOdometerFn func(ctx context.Context, id string, odometer int64) error
	DeleteFn         func(ctx context.Context, id string) error
	ReplaceAllFn     func(ctx context.Context, vehicles []domain.Vehicle) error
}

var _ repo.VehicleRepo = (*mockVehicleRepo)(nil)

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.CreateFn(ctx, vehicle)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, id string) (domain.Vehicle, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.ListFn(ctx)
}

func (m *mockVehicleRepo) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.UpdateFn(ctx, vehicle)
}

func (m *mockVehicleRepo) UpdateOdometer(ctx context.Context, id string, odometer int64) error {
	return m.UpdateOdometerFn(ctx, id, odometer)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockVehicleRepo) ReplaceAll(ctx context.Context, vehicles []domain.Vehicle) error {
	return m.ReplaceAllFn(ctx, vehicles)
}

type mockOdometerRepo struct {
	CreateFn          func(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error)
	ListFn            func(ctx context.Context) ([]domain.OdometerReading, error)
	DeleteFn          func(ctx context.Context, id string) error
	DeleteByVehicleFn func(ctx context.Context, vehicleID string) (int64, error)
	ReplaceAllFn      func(ctx context.Context, readings []domain.OdometerReading) error
}

var _ repo.OdometerRepo = (*mockOdometerRepo)(nil)

func (m *mockOdometerRepo) Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error) {
	return m.CreateFn(ctx, reading)
}

func (m *mockOdometerRepo) List(ctx context.Context) ([]domain.OdometerReading, error) {
	return m.ListFn(ctx)
}

func (m *mockOdometerRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockOdometerRepo) DeleteByVehicle(ctx context.Context, vehicleID string) (int64, error) {
	return m.DeleteByVehicleFn(ctx, vehicleID)
}

func (m *mockOdometerRepo) ReplaceAll(ctx context.Context, readings []domain.OdometerReading) error {
	return m.ReplaceAllFn(ctx, readings)
}

type mockSettingsRepo struct {
	GetFn func(ctx context.Context) (domain.Settings, error)
	PutFn func(ctx context.Context, s domain.Settings) error
}

var _ repo.SettingsRepo = (*mockSettingsRepo)(nil)

func (m *mockSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	return m.GetFn(ctx)
}

func (m *mockSettingsRepo) Put(ctx context.Context, s domain.Settings) error {
	return m.PutFn(ctx, s)
}

type mockUserInfoRepo struct {
	GetFn func(ctx context.Context) (domain.UserInfo, error)
	PutFn func(ctx context.Context, info domain.UserInfo) error
}

var _ repo.UserInfoRepo = (*mockUserInfoRepo)(nil)

func (m *mockUserInfoRepo) Get(ctx context.Context) (domain.UserInfo, error) {
	return m.GetFn(ctx)
}

func (m *mockUserInfoRepo) Put(ctx context.Context, info domain.UserInfo) error {
	return m.PutFn(ctx, info)
}

// mockStore satisfies Atomic by running fn directly over the given repo
// bundle, with no real transaction underneath.
type mockStore struct {
	repos repo.Repos
}

var _ Atomic = (*mockStore)(nil)

func (m *mockStore) Atomic(ctx context.Context, fn func(repo.Repos) error) error {
	return fn(m.repos)
}
