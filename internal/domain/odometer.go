package domain

import "time"

// OdometerReading is a standalone manual mileage check-in for a vehicle,
// recorded independently of any trip. Readings seed the odometer start value
// for the vehicle's next trip and appear interleaved with trips in the
// timeline view.
type OdometerReading struct {
	ID        string
	VehicleID string
	Date      time.Time
	Odometer  int64
	CreatedAt time.Time
}
