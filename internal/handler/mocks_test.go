package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"triplogs/internal/domain"
	"triplogs/internal/stats"
)

// Function-field test doubles for the servicer interfaces. Tests set only
// the fields they expect to be called.

type mockTripServicer struct {
	CreateFn       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFn      func(ctx context.Context, id string) (domain.Trip, error)
	ListFn         func(ctx context.Context) ([]domain.Trip, error)
	ListByYearFn   func(ctx context.Context, year int) ([]domain.Trip, error)
	YearsFn        func(ctx context.Context) ([]int, error)
	NextOdometerFn func(ctx context.Context, vehicleID string) (*int64, error)
	UpdateFn       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	DeleteFn       func(ctx context.Context, id string) error
}

var _ TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateFn(ctx, trip)
}

func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.ListFn(ctx)
}

func (m *mockTripServicer) ListByYear(ctx context.Context, year int) ([]domain.Trip, error) {
	return m.ListByYearFn(ctx, year)
}

func (m *mockTripServicer) Years(ctx context.Context) ([]int, error) {
	return m.YearsFn(ctx)
}

func (m *mockTripServicer) NextOdometer(ctx context.Context, vehicleID string) (*int64, error) {
	return m.NextOdometerFn(ctx, vehicleID)
}

func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateFn(ctx, trip)
}

func (m *mockTripServicer) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockVehicleServicer struct {
	CreateFn  func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByIDFn func(ctx context.Context, id string) (domain.Vehicle, error)
	ListFn    func(ctx context.Context) ([]domain.Vehicle, error)
	UpdateFn  func(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	DeleteFn  func(ctx context.Context, id string) error
}

var _ VehicleServicer = (*mockVehicleServicer)(nil)

func (m *mockVehicleServicer) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.CreateFn(ctx, vehicle)
}

func (m *mockVehicleServicer) GetByID(ctx context.Context, id string) (domain.Vehicle, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockVehicleServicer) List(ctx context.Context) ([]domain.Vehicle, error) {
	return m.ListFn(ctx)
}

func (m *mockVehicleServicer) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	return m.UpdateFn(ctx, vehicle)
}

func (m *mockVehicleServicer) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockOdometerServicer struct {
	CreateFn func(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error)
	ListFn   func(ctx context.Context) ([]domain.OdometerReading, error)
	DeleteFn func(ctx context.Context, id string) error
}

var _ OdometerServicer = (*mockOdometerServicer)(nil)

func (m *mockOdometerServicer) Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error) {
	return m.CreateFn(ctx, reading)
}

func (m *mockOdometerServicer) List(ctx context.Context) ([]domain.OdometerReading, error) {
	return m.ListFn(ctx)
}

func (m *mockOdometerServicer) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type mockSettingsServicer struct {
	GetSettingsFn func(ctx context.Context) (domain.Settings, error)
	PutSettingsFn func(ctx context.Context, settings domain.Settings) (domain.Settings, error)
	GetUserInfoFn func(ctx context.Context) (domain.UserInfo, error)
	PutUserInfoFn func(ctx context.Context, info domain.UserInfo) (domain.UserInfo, error)
}

var _ SettingsServicer = (*mockSettingsServicer)(nil)

func (m *mockSettingsServicer) GetSettings(ctx context.Context) (domain.Settings, error) {
	return m.GetSettingsFn(ctx)
}

func (m *mockSettingsServicer) PutSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	return m.PutSettingsFn(ctx, settings)
}

func (m *mockSettingsServicer) GetUserInfo(ctx context.Context) (domain.UserInfo, error) {
	return m.GetUserInfoFn(ctx)
}

func (m *mockSettingsServicer) PutUserInfo(ctx context.Context, info domain.UserInfo) (domain.UserInfo, error) {
	return m.PutUserInfoFn(ctx, info)
}

type mockStatsServicer struct {
	SummaryFn        func(ctx context.Context, window stats.Window) (stats.WindowSummary, error)
	TimelineFn       func(ctx context.Context, year int) ([]stats.TimelineItem, error)
	YearlyOverviewFn func(ctx context.Context, year int) (stats.YearOverview, error)
}

var _ StatsServicer = (*mockStatsServicer)(nil)

func (m *mockStatsServicer) Summary(ctx context.Context, window stats.Window) (stats.WindowSummary, error) {
	return m.SummaryFn(ctx, window)
}

func (m *mockStatsServicer) Timeline(ctx context.Context, year int) ([]stats.TimelineItem, error) {
	return m.TimelineFn(ctx, year)
}

func (m *mockStatsServicer) YearlyOverview(ctx context.Context, year int) (stats.YearOverview, error) {
	return m.YearlyOverviewFn(ctx, year)
}

type mockBackupServicer struct {
	ExportFn func(ctx context.Context) ([]byte, string, error)
	ImportFn func(ctx context.Context, payload []byte) error
}

var _ BackupServicer = (*mockBackupServicer)(nil)

func (m *mockBackupServicer) Export(ctx context.Context) ([]byte, string, error) {
	return m.ExportFn(ctx)
}

func (m *mockBackupServicer) Import(ctx context.Context, payload []byte) error {
	return m.ImportFn(ctx, payload)
}

type mockReportServicer struct {
	YearlyFn func(ctx context.Context, year int) ([]byte, string, error)
}

var _ ReportServicer = (*mockReportServicer)(nil)

func (m *mockReportServicer) Yearly(ctx context.Context, year int) ([]byte, string, error) {
	return m.YearlyFn(ctx, year)
}

// serverOpt customizes a test Server; the default has every dependency nil
// so an unexpected call fails loudly.
type serverOpt func(*Server)

func withTrips(m TripServicer) serverOpt       { return func(s *Server) { s.trips = m } }
func withVehicles(m VehicleServicer) serverOpt { return func(s *Server) { s.vehicles = m } }
func withOdometer(m OdometerServicer) serverOpt {
	return func(s *Server) { s.odometer = m }
}
func withSettings(m SettingsServicer) serverOpt {
	return func(s *Server) { s.settings = m }
}
func withStats(m StatsServicer) serverOpt   { return func(s *Server) { s.stats = m } }
func withBackup(m BackupServicer) serverOpt { return func(s *Server) { s.backup = m } }
func withReports(m ReportServicer) serverOpt {
	return func(s *Server) { s.reports = m }
}

// doRequest runs one request through a fully routed test server and returns
// the recorded response.
func doRequest(t *testing.T, method, target string, body any, opts ...serverOpt) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	srv := &Server{}
	for _, opt := range opts {
		opt(srv)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	var body ErrorResponse
	decodeBody(t, rec, &body)
	require.Equal(t, code, body.Error.Code)
}
