// Package stats is the aggregation engine: pure functions that derive
// summaries, per-trip metrics, and timelines from already-loaded collections.
// Nothing in this package mutates its inputs or touches storage, so every
// function is safe to call repeatedly in any order.
package stats

import (
	"math"
	"time"

	"triplogs/internal/domain"
)

// Summary is the aggregate view over a set of trips. All currency values are
// exact integer cents; NetCents is always GrossCents minus ExpensesCents.
type Summary struct {
	TripCount     int
	TotalDistance float64
	GrossCents    int64
	ExpensesCents int64
	NetCents      int64
}

// Summarize folds a set of trips into a Summary.
// An empty (or nil) input yields the zero Summary.
func Summarize(trips []domain.Trip) Summary {
	var s Summary
	s.TripCount = len(trips)
	for _, t := range trips {
		s.TotalDistance += t.Miles
		s.GrossCents += t.GrossCents
		s.ExpensesCents += t.Expenses.TotalCents()
	}
	s.NetCents = s.GrossCents - s.ExpensesCents
	return s
}

// TripMetrics holds the derived per-trip figures shown on trip cards and
// report rows.
type TripMetrics struct {
	DurationMinutes int
	HourlyRateCents int64
	ExpensesCents   int64
	DeductionCents  int64
	NetCents        int64
}

// PerTripMetrics derives the display metrics for a single trip.
// deductionRateCents is the tax deduction rate in cents per distance unit.
// A zero-duration trip yields an hourly rate of 0, never a division error.
func PerTripMetrics(t domain.Trip, deductionRateCents int64) TripMetrics {
	m := TripMetrics{
		DurationMinutes: DurationMinutes(t.StartTime, t.EndTime),
		ExpensesCents:   t.Expenses.TotalCents(),
		DeductionCents:  DeductionCents(t.Miles, deductionRateCents),
	}
	m.NetCents = t.GrossCents - m.ExpensesCents
	if m.DurationMinutes > 0 {
		m.HourlyRateCents = int64(math.Round(float64(t.GrossCents) * 60 / float64(m.DurationMinutes)))
	}
	return m
}

// DurationMinutes returns the elapsed wall-clock minutes between two "HH:MM"
// times. An end time earlier than the start time means the session crossed
// midnight, so 24h is added. Empty or malformed times yield 0; well-formed
// input is the service layer's responsibility.
func DurationMinutes(startTime, endTime string) int {
	start, okStart := parseClock(startTime)
	end, okEnd := parseClock(endTime)
	if !okStart || !okEnd {
		return 0
	}
	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}
	return minutes
}

// DeductionCents returns the tax deduction for a distance at the given rate,
// rounded to the nearest cent.
func DeductionCents(distance float64, rateCents int64) int64 {
	return int64(math.Round(distance * float64(rateCents)))
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// Window selects the reference period for a windowed summary.
type Window string

const (
	WindowLast7Days   Window = "7d"
	WindowLast30Days  Window = "30d"
	WindowCurrentYear Window = "year"
)

// Valid reports whether w is a supported window.
func (w Window) Valid() bool {
	switch w {
	case WindowLast7Days, WindowLast30Days, WindowCurrentYear:
		return true
	}
	return false
}

// WindowSummary extends Summary with the time-derived figures of the
// summary screen.
type WindowSummary struct {
	Summary
	DrivingMinutes     int
	AvgHourlyRateCents int64
	// ExpenseRatio is ExpensesCents / GrossCents, or 0 when there are no
	// earnings. It is the only non-exact figure in a summary.
	ExpenseRatio   float64
	DeductionCents int64
}

// FilterWindow returns the trips whose date falls inside the window relative
// to now. Day windows use an inclusive lower bound of now − N days (calendar
// days, so a trip dated exactly N days ago is included); WindowCurrentYear
// matches the calendar year of now.
func FilterWindow(trips []domain.Trip, w Window, now time.Time) []domain.Trip {
	var keep func(domain.Trip) bool
	switch w {
	case WindowLast7Days, WindowLast30Days:
		days := 7
		if w == WindowLast30Days {
			days = 30
		}
		lower := midnight(now).AddDate(0, 0, -days)
		keep = func(t domain.Trip) bool { return !t.Date.Before(lower) }
	default: // WindowCurrentYear
		year := now.Year()
		keep = func(t domain.Trip) bool { return t.Date.Year() == year }
	}

	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// WindowedSummary filters trips by window and aggregates them.
// Divisions are guarded: no trips, no driving time, or no earnings produce
// zeroes, never NaN or Inf.
func WindowedSummary(trips []domain.Trip, w Window, now time.Time, deductionRateCents int64) WindowSummary {
	filtered := FilterWindow(trips, w, now)

	ws := WindowSummary{Summary: Summarize(filtered)}
	for _, t := range filtered {
		ws.DrivingMinutes += DurationMinutes(t.StartTime, t.EndTime)
	}
	if ws.DrivingMinutes > 0 {
		ws.AvgHourlyRateCents = int64(math.Round(float64(ws.GrossCents) * 60 / float64(ws.DrivingMinutes)))
	}
	if ws.GrossCents > 0 {
		ws.ExpenseRatio = float64(ws.ExpensesCents) / float64(ws.GrossCents)
	}
	ws.DeductionCents = DeductionCents(ws.TotalDistance, deductionRateCents)
	return ws
}

// midnight truncates t to the start of its calendar day in UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
