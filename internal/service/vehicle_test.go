package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

func TestVehicleCreate_Validation(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepo{}, &mockStore{})

	_, err := svc.Create(context.Background(), domain.Vehicle{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	badYear := 1200
	_, err = svc.Create(context.Background(), domain.Vehicle{Make: "Honda", Year: &badYear})
	assert.ErrorIs(t, err, domain.ErrValidation)

	negOdo := int64(-1)
	_, err = svc.Create(context.Background(), domain.Vehicle{Make: "Honda", Odometer: &negOdo})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVehicleCreate(t *testing.T) {
	vehicles := &mockVehicleRepo{
		CreateFn: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			v.ID = "v1"
			return v, nil
		},
	}
	svc := NewVehicleService(vehicles, &mockStore{})

	created, err := svc.Create(context.Background(), domain.Vehicle{Make: "Honda", Model: "Civic"})
	require.NoError(t, err)
	assert.Equal(t, "v1", created.ID)
}

func TestVehicleDelete_Cascades(t *testing.T) {
	var deletedTrips, deletedReadings, deletedVehicle string
	repos := repo.Repos{
		Vehicles: &mockVehicleRepo{
			GetByIDFn: func(_ context.Context, id string) (domain.Vehicle, error) {
				return domain.Vehicle{ID: id}, nil
			},
			DeleteFn: func(_ context.Context, id string) error {
				deletedVehicle = id
				return nil
			},
		},
		Trips: &mockTripRepo{
			DeleteByVehicleFn: func(_ context.Context, vehicleID string) (int64, error) {
				deletedTrips = vehicleID
				return 3, nil
			},
		},
		Odometer: &mockOdometerRepo{
			DeleteByVehicleFn: func(_ context.Context, vehicleID string) (int64, error) {
				deletedReadings = vehicleID
				return 2, nil
			},
		},
	}
	svc := NewVehicleService(repos.Vehicles, &mockStore{repos: repos})

	err := svc.Delete(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", deletedTrips)
	assert.Equal(t, "v1", deletedReadings)
	assert.Equal(t, "v1", deletedVehicle)
}

func TestVehicleDelete_NotFoundStopsCascade(t *testing.T) {
	repos := repo.Repos{
		Vehicles: &mockVehicleRepo{
			GetByIDFn: func(_ context.Context, _ string) (domain.Vehicle, error) {
				return domain.Vehicle{}, domain.ErrNotFound
			},
		},
		// Trips and Odometer left nil: any cascade call would panic.
	}
	svc := NewVehicleService(repos.Vehicles, &mockStore{repos: repos})

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleList_NeverNil(t *testing.T) {
	vehicles := &mockVehicleRepo{
		ListFn: func(_ context.Context) ([]domain.Vehicle, error) { return nil, nil },
	}
	svc := NewVehicleService(vehicles, &mockStore{})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
