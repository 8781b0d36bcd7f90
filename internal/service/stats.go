package service

import (
	"context"
	"fmt"
	"time"

	"triplogs/internal/domain"
	"triplogs/internal/repo"
	"triplogs/internal/stats"
)

// StatsService computes summaries and timelines over the recorded trips.
// The clock is injected so window boundaries are testable.
type StatsService struct {
	trips    repo.TripRepo
	readings repo.OdometerRepo
	settings repo.SettingsRepo
	now      func() time.Time
}

// NewStatsService constructs a StatsService using the wall clock.
func NewStatsService(trips repo.TripRepo, readings repo.OdometerRepo, settings repo.SettingsRepo) *StatsService {
	return &StatsService{trips: trips, readings: readings, settings: settings, now: time.Now}
}

// Summary computes the aggregate figures for a rolling window ending now.
func (s *StatsService) Summary(ctx context.Context, window stats.Window) (stats.WindowSummary, error) {
	if !window.Valid() {
		return stats.WindowSummary{}, fmt.Errorf("%w: unknown summary window %q", domain.ErrValidation, window)
	}
	trips, err := s.trips.List(ctx)
	if err != nil {
		return stats.WindowSummary{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return stats.WindowSummary{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}
	return stats.WindowedSummary(trips, window, s.now(), settings.DeductionRateCents), nil
}

// Timeline interleaves one year's trips and odometer readings, newest
// first.
func (s *StatsService) Timeline(ctx context.Context, year int) ([]stats.TimelineItem, error) {
	trips, err := s.trips.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.Timeline: %w", err)
	}
	readings, err := s.readings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.Timeline: %w", err)
	}
	items := stats.BuildTimeline(trips, readings, year)
	if items == nil {
		items = []stats.TimelineItem{}
	}
	return items, nil
}

// YearlyOverview computes the aggregate figures for one calendar year along
// with the per-trip metric breakdown.
func (s *StatsService) YearlyOverview(ctx context.Context, year int) (stats.YearOverview, error) {
	trips, err := s.trips.ListByYear(ctx, year)
	if err != nil {
		return stats.YearOverview{}, fmt.Errorf("service.StatsService.YearlyOverview: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return stats.YearOverview{}, fmt.Errorf("service.StatsService.YearlyOverview: %w", err)
	}
	return stats.OverviewForYear(trips, settings.DeductionRateCents), nil
}
