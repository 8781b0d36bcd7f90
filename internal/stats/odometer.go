package stats

import "triplogs/internal/domain"

// NextOdometerStart returns the odometer value a new trip for this vehicle
// should start from: the odometer end of the vehicle's most recent trip that
// recorded one, falling back to the vehicle's stored odometer, or nil when
// neither is available.
//
// "Most recent" is by trip date descending; on equal dates the earlier item
// in trips wins, which matches the newest-first order repositories return.
func NextOdometerStart(vehicle domain.Vehicle, trips []domain.Trip) *int64 {
	var best *domain.Trip
	for i := range trips {
		t := &trips[i]
		if t.VehicleID == nil || *t.VehicleID != vehicle.ID || t.OdometerEnd == nil {
			continue
		}
		if best == nil || t.Date.After(best.Date) {
			best = t
		}
	}
	if best != nil {
		v := *best.OdometerEnd
		return &v
	}
	if vehicle.Odometer != nil {
		v := *vehicle.Odometer
		return &v
	}
	return nil
}
