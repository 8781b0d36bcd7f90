package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplogs/internal/domain"
)

func TestCreateVehicle(t *testing.T) {
	vehicles := &mockVehicleServicer{
		CreateFn: func(_ context.Context, v domain.Vehicle) (domain.Vehicle, error) {
			v.ID = "v1"
			return v, nil
		},
	}
	body := map[string]any{"year": 2020, "make": "Honda", "model": "Civic"}
	rec := doRequest(t, http.MethodPost, "/vehicles", body, withVehicles(vehicles))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got VehicleResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "v1", got.ID)
	assert.Equal(t, "2020 Honda Civic", got.Name)
}

func TestCreateVehicle_ValidationError(t *testing.T) {
	vehicles := &mockVehicleServicer{
		CreateFn: func(_ context.Context, _ domain.Vehicle) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrValidation
		},
	}
	rec := doRequest(t, http.MethodPost, "/vehicles", map[string]any{}, withVehicles(vehicles))
	requireErrorCode(t, rec, http.StatusUnprocessableEntity, "validation_error")
}

func TestGetVehicle_NotFound(t *testing.T) {
	vehicles := &mockVehicleServicer{
		GetByIDFn: func(_ context.Context, _ string) (domain.Vehicle, error) {
			return domain.Vehicle{}, domain.ErrNotFound
		},
	}
	rec := doRequest(t, http.MethodGet, "/vehicles/nope", nil, withVehicles(vehicles))
	requireErrorCode(t, rec, http.StatusNotFound, "not_found")
}

func TestListVehicles(t *testing.T) {
	vehicles := &mockVehicleServicer{
		ListFn: func(_ context.Context) ([]domain.Vehicle, error) {
			return []domain.Vehicle{{ID: "v1", Make: "Honda", Model: "Civic"}}, nil
		},
	}
	rec := doRequest(t, http.MethodGet, "/vehicles", nil, withVehicles(vehicles))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []VehicleResponse
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Honda Civic", got[0].Name)
}

func TestDeleteVehicle(t *testing.T) {
	vehicles := &mockVehicleServicer{
		DeleteFn: func(_ context.Context, id string) error {
			require.Equal(t, "v1", id)
			return nil
		},
	}
	rec := doRequest(t, http.MethodDelete, "/vehicles/v1", nil, withVehicles(vehicles))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNextOdometer(t *testing.T) {
	next := int64(50121)
	trips := &mockTripServicer{
		NextOdometerFn: func(_ context.Context, vehicleID string) (*int64, error) {
			require.Equal(t, "v1", vehicleID)
			return &next, nil
		},
	}
	rec := doRequest(t, http.MethodGet, "/vehicles/v1/next-odometer", nil, withTrips(trips))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nextOdometer": 50121}`, rec.Body.String())
}

func TestNextOdometer_Unknown(t *testing.T) {
	trips := &mockTripServicer{
		NextOdometerFn: func(_ context.Context, _ string) (*int64, error) { return nil, nil },
	}
	rec := doRequest(t, http.MethodGet, "/vehicles/v1/next-odometer", nil, withTrips(trips))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"nextOdometer": null}`, rec.Body.String())
}
