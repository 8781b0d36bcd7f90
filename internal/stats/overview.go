package stats

import "triplogs/internal/domain"

// TripWithMetrics pairs a trip with its derived display figures.
type TripWithMetrics struct {
	Trip    domain.Trip
	Metrics TripMetrics
}

// YearOverview is the aggregate view of one calendar year plus the per-trip
// breakdown shown on the yearly screen.
type YearOverview struct {
	Summary
	DeductionCents int64
	Trips          []TripWithMetrics
}

// OverviewForYear folds one year's trips into a YearOverview. The caller is
// expected to have filtered trips to a single calendar year; Trips preserves
// input order.
func OverviewForYear(trips []domain.Trip, deductionRateCents int64) YearOverview {
	ov := YearOverview{
		Summary: Summarize(trips),
		Trips:   make([]TripWithMetrics, 0, len(trips)),
	}
	for _, t := range trips {
		ov.Trips = append(ov.Trips, TripWithMetrics{
			Trip:    t,
			Metrics: PerTripMetrics(t, deductionRateCents),
		})
	}
	ov.DeductionCents = DeductionCents(ov.TotalDistance, deductionRateCents)
	return ov
}
