// Package handler implements the HTTP handlers for the Trip Logs API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (trip.go, vehicle.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"triplogs/internal/domain"
	"triplogs/internal/stats"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	ListByYear(ctx context.Context, year int) ([]domain.Trip, error)
	Years(ctx context.Context) ([]int, error)
	NextOdometer(ctx context.Context, vehicleID string) (*int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// VehicleServicer defines the business operations the vehicle handlers
// depend on.
type VehicleServicer interface {
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id string) (domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

// OdometerServicer defines the business operations the odometer reading
// handlers depend on.
type OdometerServicer interface {
	Create(ctx context.Context, reading domain.OdometerReading) (domain.OdometerReading, error)
	List(ctx context.Context) ([]domain.OdometerReading, error)
	Delete(ctx context.Context, id string) error
}

// SettingsServicer defines the business operations the settings and user
// info handlers depend on.
type SettingsServicer interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	PutSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error)
	GetUserInfo(ctx context.Context) (domain.UserInfo, error)
	PutUserInfo(ctx context.Context, info domain.UserInfo) (domain.UserInfo, error)
}

// StatsServicer defines the summary and timeline operations.
type StatsServicer interface {
	Summary(ctx context.Context, window stats.Window) (stats.WindowSummary, error)
	Timeline(ctx context.Context, year int) ([]stats.TimelineItem, error)
	YearlyOverview(ctx context.Context, year int) (stats.YearOverview, error)
}

// BackupServicer defines the export and restore operations.
type BackupServicer interface {
	Export(ctx context.Context) ([]byte, string, error)
	Import(ctx context.Context, payload []byte) error
}

// ReportServicer builds the yearly XLSX report.
type ReportServicer interface {
	Yearly(ctx context.Context, year int) ([]byte, string, error)
}

// Server holds every handler's dependencies. Methods live in
// domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	vehicles VehicleServicer
	odometer OdometerServicer
	settings SettingsServicer
	stats    StatsServicer
	backup   BackupServicer
	reports  ReportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	vehicles VehicleServicer,
	odometer OdometerServicer,
	settings SettingsServicer,
	statsSvc StatsServicer,
	backup BackupServicer,
	reports ReportServicer,
) *Server {
	return &Server{
		trips:    trips,
		vehicles: vehicles,
		odometer: odometer,
		settings: settings,
		stats:    statsSvc,
		backup:   backup,
		reports:  reports,
	}
}

// Routes mounts every endpoint on a fresh chi router. Middleware is the
// caller's concern; main.go wraps the returned router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/years", s.TripYears)
		r.Get("/{id}", s.GetTrip)
		r.Put("/{id}", s.UpdateTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Post("/", s.CreateVehicle)
		r.Get("/{id}", s.GetVehicle)
		r.Put("/{id}", s.UpdateVehicle)
		r.Delete("/{id}", s.DeleteVehicle)
		r.Get("/{id}/next-odometer", s.NextOdometer)
	})

	r.Route("/odometer-readings", func(r chi.Router) {
		r.Get("/", s.ListOdometerReadings)
		r.Post("/", s.CreateOdometerReading)
		r.Delete("/{id}", s.DeleteOdometerReading)
	})

	r.Get("/settings", s.GetSettings)
	r.Put("/settings", s.PutSettings)
	r.Get("/user-info", s.GetUserInfo)
	r.Put("/user-info", s.PutUserInfo)

	r.Get("/summary", s.GetSummary)
	r.Get("/timeline", s.GetTimeline)
	r.Get("/years/{year}/summary", s.GetYearOverview)

	r.Get("/backup", s.ExportBackup)
	r.Post("/restore", s.RestoreBackup)
	r.Get("/reports/{year}", s.YearlyReport)

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
