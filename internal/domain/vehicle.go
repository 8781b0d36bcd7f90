package domain

import (
	"fmt"
	"strings"
	"time"
)

// Vehicle is a car profile trips can be attributed to.
// Odometer is the last known reading for the vehicle; it is updated whenever
// a trip with odometer values is recorded, and nil until the user supplies one.
type Vehicle struct {
	ID           string
	Year         *int
	Make         string
	Model        string
	LicensePlate string
	Odometer     *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the "<year> <make> <model>" label used in reports,
// omitting parts that are not set.
func (v Vehicle) DisplayName() string {
	parts := make([]string, 0, 3)
	if v.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " ")
}
