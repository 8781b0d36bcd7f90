// Package domain contains the core data types for the Trip Logs application.
// This package has zero knowledge of HTTP or SQL and is imported by every
// other internal package (repo, stats, service, handler).
package domain

import "time"

// Expenses holds the per-trip expense breakdown. All amounts are integer
// cents so that sums over any number of trips stay exact.
type Expenses struct {
	GasolineCents int64
	TollsCents    int64
	FoodCents     int64
}

// TotalCents returns the sum of all expense categories.
func (e Expenses) TotalCents() int64 {
	return e.GasolineCents + e.TollsCents + e.FoodCents
}

// Trip represents one recorded driving session.
// Date carries the calendar date only (midnight UTC); StartTime and EndTime
// are local wall-clock times in "HH:MM" form. An EndTime earlier than
// StartTime means the session crossed midnight.
//
// OdometerStart and OdometerEnd are the optional provenance of Miles: both
// nil when the trip was logged without odometer values.
type Trip struct {
	ID            string
	Date          time.Time
	StartTime     string
	EndTime       string
	Miles         float64
	GrossCents    int64
	Expenses      Expenses
	VehicleID     *string // nil when the trip is not attributed to a vehicle
	OdometerStart *int64
	OdometerEnd   *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Year returns the calendar year component of the trip date.
func (t Trip) Year() int {
	return t.Date.Year()
}
