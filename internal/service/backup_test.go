package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triplogs/internal/backup"
	"triplogs/internal/domain"
	"triplogs/internal/repo"
)

func backupFixtureRepos(trips []domain.Trip, vehicles []domain.Vehicle, readings []domain.OdometerReading) repo.Repos {
	return repo.Repos{
		Trips: &mockTripRepo{
			ListFn: func(_ context.Context) ([]domain.Trip, error) { return trips, nil },
		},
		Vehicles: &mockVehicleRepo{
			ListFn: func(_ context.Context) ([]domain.Vehicle, error) { return vehicles, nil },
		},
		Odometer: &mockOdometerRepo{
			ListFn: func(_ context.Context) ([]domain.OdometerReading, error) { return readings, nil },
		},
		Settings: &mockSettingsRepo{
			GetFn: func(_ context.Context) (domain.Settings, error) { return domain.DefaultSettings(), nil },
		},
		UserInfo: &mockUserInfoRepo{
			GetFn: func(_ context.Context) (domain.UserInfo, error) {
				return domain.UserInfo{Name: "Pat Driver"}, nil
			},
		},
	}
}

func TestBackupExport(t *testing.T) {
	trips := []domain.Trip{{
		ID:         "t1",
		Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "17:00",
		Miles:      42,
		GrossCents: 10000,
	}}
	repos := backupFixtureRepos(trips, nil, nil)

	svc := NewBackupService(repos, &mockStore{})
	svc.now = fixedClock(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))

	payload, filename, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "trip-logs-backup-2024-06-15.json", filename)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &doc))
	for _, key := range []string{"version", "userInfo", "vehicles", "settings", "trips", "odometerReadings"} {
		assert.Contains(t, doc, key)
	}
}

func TestBackupImport_RoundTrip(t *testing.T) {
	info := domain.UserInfo{Name: "Pat Driver"}
	vehicles := []domain.Vehicle{{ID: "v1", Make: "Honda", Model: "Civic"}}
	trips := []domain.Trip{{
		ID:        "t1",
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "17:00",
	}}
	doc := backup.New(info, vehicles, domain.DefaultSettings(), trips, nil)
	payload, err := doc.Marshal()
	require.NoError(t, err)

	var gotTrips []domain.Trip
	var gotVehicles []domain.Vehicle
	var gotInfo domain.UserInfo
	repos := repo.Repos{
		Trips: &mockTripRepo{
			ReplaceAllFn: func(_ context.Context, in []domain.Trip) error {
				gotTrips = in
				return nil
			},
		},
		Vehicles: &mockVehicleRepo{
			ReplaceAllFn: func(_ context.Context, in []domain.Vehicle) error {
				gotVehicles = in
				return nil
			},
		},
		Odometer: &mockOdometerRepo{
			ReplaceAllFn: func(_ context.Context, _ []domain.OdometerReading) error { return nil },
		},
		Settings: &mockSettingsRepo{
			PutFn: func(_ context.Context, _ domain.Settings) error { return nil },
		},
		UserInfo: &mockUserInfoRepo{
			PutFn: func(_ context.Context, in domain.UserInfo) error {
				gotInfo = in
				return nil
			},
		},
	}
	svc := NewBackupService(repo.Repos{}, &mockStore{repos: repos})

	require.NoError(t, svc.Import(context.Background(), payload))
	require.Len(t, gotTrips, 1)
	assert.Equal(t, "t1", gotTrips[0].ID)
	require.Len(t, gotVehicles, 1)
	assert.Equal(t, "v1", gotVehicles[0].ID)
	assert.Equal(t, "Pat Driver", gotInfo.Name)
}

func TestBackupImport_RejectsMalformedPayload(t *testing.T) {
	svc := NewBackupService(repo.Repos{}, &mockStore{})

	err := svc.Import(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, domain.ErrMalformedPayload)
}

func TestBackupImport_RejectsMissingCollections(t *testing.T) {
	svc := NewBackupService(repo.Repos{}, &mockStore{})

	err := svc.Import(context.Background(), []byte(`{"version":1,"trips":[]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidBackupFormat)
}
