package domain

// DistanceUnit names the unit trips are measured in.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "miles"
	UnitKilometers DistanceUnit = "kilometers"
)

// Valid reports whether u is one of the supported units.
func (u DistanceUnit) Valid() bool {
	return u == UnitMiles || u == UnitKilometers
}

// Settings is the application settings singleton. It always exists: reads
// return DefaultSettings until the user changes something.
//
// DeductionRateCents is the tax deduction rate in cents per distance unit
// (67 = $0.67 per mile, the IRS standard mileage rate).
type Settings struct {
	Unit               DistanceUnit
	Currency           string
	DeductionRateCents int64
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		Unit:               UnitMiles,
		Currency:           "USD",
		DeductionRateCents: 67,
	}
}

// UserInfo holds the free-text identity block printed on report headers.
// All fields may be empty.
type UserInfo struct {
	Name      string
	Address   string
	CityState string
	Country   string
	ZipCode   string
}
