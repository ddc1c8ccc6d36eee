// Package chart assembles raw bodygraphs from birth information. It owns the
// only component with external I/O dependencies (geocoding, timezone lookup,
// ephemeris) and is the natural seam for mocking in tests.
package chart

import (
	"fmt"
	"time"

	apperrors "bodygraph-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// Location is a resolved birth place: label, coordinates and IANA timezone.
// Immutable once resolved.
type Location struct {
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// BirthInfo is the immutable user input a chart derives from: calendar date,
// naive wall-clock time, and a city/country pair for geocoding. Everything
// downstream (location, Julian Days, activations) is a pure derivation.
type BirthInfo struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	LocalTime time.Time `json:"localtime"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
}

// NewBirthInfo validates and constructs a BirthInfo. The declared date must
// match the date embedded in the local-time value; a disagreement is caller
// error and fails with DateMismatch before any computation proceeds.
func NewBirthInfo(date string, localTime time.Time, city, country string) (BirthInfo, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return BirthInfo{}, apperrors.NewValidation(fmt.Sprintf("date must be in YYYY-MM-DD format: %q", date))
	}
	if lt := localTime.Format(dateLayout); lt != date {
		return BirthInfo{}, apperrors.NewDateMismatch(fmt.Sprintf("date (%s) must match localtime date (%s)", date, lt))
	}
	return BirthInfo{Date: date, LocalTime: localTime, City: city, Country: country}, nil
}

// Place is the full place string used for geocoding, e.g. "Albuquerque, USA".
func (b BirthInfo) Place() string {
	return fmt.Sprintf("%s, %s", b.City, b.Country)
}
