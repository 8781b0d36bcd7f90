// Package backup implements the backup document codec: one JSON file
// holding all five collections, written by export and read back by restore.
// The codec only encodes, decodes, and validates shape — applying a document
// to storage is the service layer's job.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"triplogs/internal/domain"
)

// Version is the current backup schema version. Documents written today
// carry it; documents without one (exports from older app builds) are
// treated as version 1.
const Version = 1

// Document is the on-disk backup format. Field names are part of the
// format and must stay stable so backups remain portable across versions.
type Document struct {
	Version          int               `json:"version"`
	UserInfo         UserInfo          `json:"userInfo"`
	Vehicles         []Vehicle         `json:"vehicles"`
	Settings         Settings          `json:"settings"`
	Trips            []Trip            `json:"trips"`
	OdometerReadings []OdometerReading `json:"odometerReadings"`
}

// Trip is the wire form of domain.Trip.
type Trip struct {
	ID            string             `json:"id"`
	Date          openapi_types.Date `json:"date"`
	StartTime     string             `json:"startTime"`
	EndTime       string             `json:"endTime"`
	Miles         float64            `json:"miles"`
	GrossCents    int64              `json:"grossEarningsCents"`
	Expenses      Expenses           `json:"expenses"`
	VehicleID     *string            `json:"vehicleId"`
	OdometerStart *int64             `json:"odometerStart,omitempty"`
	OdometerEnd   *int64             `json:"odometerEnd,omitempty"`
}

// Expenses is the wire form of domain.Expenses.
type Expenses struct {
	GasolineCents int64 `json:"gasolineCents"`
	TollsCents    int64 `json:"tollsCents"`
	FoodCents     int64 `json:"foodCents"`
}

// Vehicle is the wire form of domain.Vehicle.
type Vehicle struct {
	ID           string `json:"id"`
	Year         *int   `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Odometer     *int64 `json:"odometer"`
}

// OdometerReading is the wire form of domain.OdometerReading.
type OdometerReading struct {
	ID        string             `json:"id"`
	VehicleID string             `json:"vehicleId"`
	Date      openapi_types.Date `json:"date"`
	Odometer  int64              `json:"odometer"`
}

// Settings is the wire form of domain.Settings.
type Settings struct {
	Unit               string `json:"unit"`
	Currency           string `json:"currency"`
	DeductionRateCents int64  `json:"deductionRateCents"`
}

// UserInfo is the wire form of domain.UserInfo.
type UserInfo struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	CityState string `json:"cityState"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
}

// Filename returns the deterministic backup filename for the given day,
// e.g. "trip-logs-backup-2024-06-01.json".
func Filename(now time.Time) string {
	return "trip-logs-backup-" + now.Format("2006-01-02") + ".json"
}

// New assembles a Document from the current domain collections.
func New(info domain.UserInfo, vehicles []domain.Vehicle, settings domain.Settings,
	trips []domain.Trip, readings []domain.OdometerReading) Document {

	doc := Document{
		Version:          Version,
		UserInfo:         UserInfo(info),
		Vehicles:         make([]Vehicle, 0, len(vehicles)),
		Settings:         settingsToWire(settings),
		Trips:            make([]Trip, 0, len(trips)),
		OdometerReadings: make([]OdometerReading, 0, len(readings)),
	}
	for _, v := range vehicles {
		doc.Vehicles = append(doc.Vehicles, vehicleToWire(v))
	}
	for _, t := range trips {
		doc.Trips = append(doc.Trips, tripToWire(t))
	}
	for _, r := range readings {
		doc.OdometerReadings = append(doc.OdometerReadings, readingToWire(r))
	}
	return doc
}

// Marshal encodes the document as indented JSON, ready to write to a file.
func (d Document) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backup.Document.Marshal: %w", err)
	}
	return b, nil
}

// rawDocument mirrors Document with pointer fields so Decode can tell a
// missing collection apart from an empty one.
type rawDocument struct {
	Version          *int               `json:"version"`
	UserInfo         *UserInfo          `json:"userInfo"`
	Vehicles         *[]Vehicle         `json:"vehicles"`
	Settings         *Settings          `json:"settings"`
	Trips            *[]Trip            `json:"trips"`
	OdometerReadings *[]OdometerReading `json:"odometerReadings"`
}

// Decode parses and validates a backup payload.
// Unparsable JSON yields domain.ErrMalformedPayload; a parseable document
// missing any of the five collections (or carrying an unknown version)
// yields domain.ErrInvalidBackupFormat.
func Decode(payload []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	for _, f := range []struct {
		name    string
		present bool
	}{
		{"userInfo", raw.UserInfo != nil},
		{"vehicles", raw.Vehicles != nil},
		{"settings", raw.Settings != nil},
		{"trips", raw.Trips != nil},
		{"odometerReadings", raw.OdometerReadings != nil},
	} {
		if !f.present {
			return Document{}, fmt.Errorf("%w: missing field %q", domain.ErrInvalidBackupFormat, f.name)
		}
	}

	doc := Document{
		Version:          1,
		UserInfo:         *raw.UserInfo,
		Vehicles:         *raw.Vehicles,
		Settings:         *raw.Settings,
		Trips:            *raw.Trips,
		OdometerReadings: *raw.OdometerReadings,
	}
	if raw.Version != nil {
		doc.Version = *raw.Version
	}
	if doc.Version < 1 || doc.Version > Version {
		return Document{}, fmt.Errorf("%w: unsupported version %d", domain.ErrInvalidBackupFormat, doc.Version)
	}
	return doc, nil
}

// Collections converts the document back to domain values.
func (d Document) Collections() (domain.UserInfo, []domain.Vehicle, domain.Settings, []domain.Trip, []domain.OdometerReading) {
	vehicles := make([]domain.Vehicle, 0, len(d.Vehicles))
	for _, v := range d.Vehicles {
		vehicles = append(vehicles, vehicleFromWire(v))
	}
	trips := make([]domain.Trip, 0, len(d.Trips))
	for _, t := range d.Trips {
		trips = append(trips, tripFromWire(t))
	}
	readings := make([]domain.OdometerReading, 0, len(d.OdometerReadings))
	for _, r := range d.OdometerReadings {
		readings = append(readings, readingFromWire(r))
	}
	return domain.UserInfo(d.UserInfo), vehicles, settingsFromWire(d.Settings), trips, readings
}

// --- wire mapping -----------------------------------------------------------

func tripToWire(t domain.Trip) Trip {
	return Trip{
		ID:            t.ID,
		Date:          openapi_types.Date{Time: t.Date},
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		Miles:         t.Miles,
		GrossCents:    t.GrossCents,
		Expenses:      Expenses(t.Expenses),
		VehicleID:     t.VehicleID,
		OdometerStart: t.OdometerStart,
		OdometerEnd:   t.OdometerEnd,
	}
}

func tripFromWire(t Trip) domain.Trip {
	return domain.Trip{
		ID:            t.ID,
		Date:          t.Date.Time,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		Miles:         t.Miles,
		GrossCents:    t.GrossCents,
		Expenses:      domain.Expenses(t.Expenses),
		VehicleID:     t.VehicleID,
		OdometerStart: t.OdometerStart,
		OdometerEnd:   t.OdometerEnd,
	}
}

func vehicleToWire(v domain.Vehicle) Vehicle {
	return Vehicle{
		ID:           v.ID,
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Odometer:     v.Odometer,
	}
}

func vehicleFromWire(v Vehicle) domain.Vehicle {
	return domain.Vehicle{
		ID:           v.ID,
		Year:         v.Year,
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Odometer:     v.Odometer,
	}
}

func readingToWire(r domain.OdometerReading) OdometerReading {
	return OdometerReading{
		ID:        r.ID,
		VehicleID: r.VehicleID,
		Date:      openapi_types.Date{Time: r.Date},
		Odometer:  r.Odometer,
	}
}

func readingFromWire(r OdometerReading) domain.OdometerReading {
	return domain.OdometerReading{
		ID:        r.ID,
		VehicleID: r.VehicleID,
		Date:      r.Date.Time,
		Odometer:  r.Odometer,
	}
}

func settingsToWire(s domain.Settings) Settings {
	return Settings{
		Unit:               string(s.Unit),
		Currency:           s.Currency,
		DeductionRateCents: s.DeductionRateCents,
	}
}

func settingsFromWire(s Settings) domain.Settings {
	return domain.Settings{
		Unit:               domain.DistanceUnit(s.Unit),
		Currency:           s.Currency,
		DeductionRateCents: s.DeductionRateCents,
	}
}
