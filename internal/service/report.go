package service

import (
	"context"
	"fmt"

	"triplogs/internal/repo"
	"triplogs/internal/report"
)

// ReportService assembles one calendar year's data and renders it as an
// XLSX workbook.
type ReportService struct {
	store repo.Repos
}

// NewReportService constructs a ReportService over the plain repo bundle.
func NewReportService(store repo.Repos) *ReportService {
	return &ReportService{store: store}
}

// Yearly builds the report workbook for a year and returns its bytes along
// with a download filename.
func (s *ReportService) Yearly(ctx context.Context, year int) ([]byte, string, error) {
	trips, err := s.store.Trips.ListByYear(ctx, year)
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}
	readings, err := s.store.Odometer.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}
	vehicles, err := s.store.Vehicles.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}
	settings, err := s.store.Settings.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}
	info, err := s.store.UserInfo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}

	payload, err := report.Build(report.Input{
		Year:     year,
		UserInfo: info,
		Settings: settings,
		Trips:    trips,
		Readings: readings,
		Vehicles: vehicles,
	})
	if err != nil {
		return nil, "", fmt.Errorf("service.ReportService.Yearly: %w", err)
	}
	return payload, report.Filename(year), nil
}
