package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplogs/internal/domain"
)

func TestCreateOdometerReading(t *testing.T) {
	odometer := &mockOdometerServicer{
		CreateFn: func(_ context.Context, reading domain.OdometerReading) (domain.OdometerReading, error) {
			require.Equal(t, "v1", reading.VehicleID)
			require.Equal(t, int64(52300), reading.Odometer)
			reading.ID = "r1"
			return reading, nil
		},
	}
	body := map[string]any{"vehicleId": "v1", "date": "2024-06-01", "odometer": 52300}
	rec := doRequest(t, http.MethodPost, "/odometer-readings", body, withOdometer(odometer))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got OdometerReadingResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "r1", got.ID)
}

func TestCreateOdometerReading_UnknownVehicle(t *testing.T) {
	odometer := &mockOdometerServicer{
		CreateFn: func(_ context.Context, _ domain.OdometerReading) (domain.OdometerReading, error) {
			return domain.OdometerReading{}, domain.ErrNotFound
		},
	}
	body := map[string]any{"vehicleId": "missing", "date": "2024-06-01", "odometer": 100}
	rec := doRequest(t, http.MethodPost, "/odometer-readings", body, withOdometer(odometer))
	requireErrorCode(t, rec, http.StatusNotFound, "not_found")
}

func TestListOdometerReadings(t *testing.T) {
	odometer := &mockOdometerServicer{
		ListFn: func(_ context.Context) ([]domain.OdometerReading, error) {
			return []domain.OdometerReading{{
				ID:        "r1",
				VehicleID: "v1",
				Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				Odometer:  52300,
			}}, nil
		},
	}
	rec := doRequest(t, http.MethodGet, "/odometer-readings", nil, withOdometer(odometer))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []OdometerReadingResponse
	decodeBody(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, int64(52300), got[0].Odometer)
	assert.Contains(t, rec.Body.String(), `"date":"2024-06-01"`)
}

func TestDeleteOdometerReading(t *testing.T) {
	odometer := &mockOdometerServicer{
		DeleteFn: func(_ context.Context, id string) error {
			require.Equal(t, "r1", id)
			return nil
		},
	}
	rec := doRequest(t, http.MethodDelete, "/odometer-readings/r1", nil, withOdometer(odometer))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
