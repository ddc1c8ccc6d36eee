package astro

import (
	"math"
	"time"

	apperrors "bodygraph-backend/pkg/errors"
)

// LocalToUTC attaches the named IANA timezone to a naive local civil time
// and converts it to UTC. The local time's own location is ignored: its
// calendar fields are reinterpreted in the named zone. Fails with an
// InvalidTimezone error when the name is not a recognized IANA identifier.
func LocalToUTC(local time.Time, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidTimezone(tzName, err)
	}

	return time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		loc,
	).UTC(), nil
}

// ToJulianDayUT converts a naive local civil time plus an IANA timezone name
// into a Julian Day in Universal Time, via the proleptic Gregorian Julian
// Day formula.
func ToJulianDayUT(local time.Time, tzName string) (float64, error) {
	utc, err := LocalToUTC(local, tzName)
	if err != nil {
		return 0, err
	}
	return JulianDayFromUTC(utc), nil
}

// JulianDayFromUTC converts a UTC instant to a Julian Day (UT), continuous
// across midnight and month/year boundaries.
func JulianDayFromUTC(utc time.Time) float64 {
	hours := float64(utc.Hour()) +
		float64(utc.Minute())/60.0 +
		float64(utc.Second())/3600.0 +
		float64(utc.Nanosecond())/3.6e12

	return julianDayNumber(utc.Year(), int(utc.Month()), utc.Day()) + hours/24.0
}

// julianDayNumber returns the Julian Day at 0h UT for a proleptic Gregorian
// calendar date.
func julianDayNumber(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5
}
