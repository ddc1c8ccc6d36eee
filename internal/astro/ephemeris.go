package astro

import (
	"context"
)

// EphemerisProvider supplies tropical ecliptic longitudes and angular speeds
// for directly queryable bodies at a Julian Day in Universal Time.
//
// Longitude convention: tropical ecliptic, 0° = vernal equinox, values in
// [0, 360). Speed is in degrees per day and may be negative (retrograde).
//
// Implementations may be local or remote; errors are propagated to callers
// untranslated, since a silently wrong planetary position is worse than a
// visible failure.
type EphemerisProvider interface {
	LongitudeAndSpeed(ctx context.Context, jdUT float64, body QueryableBody) (lonDeg, speedDegPerDay float64, err error)
}

// meanSolarSpeed is the Sun's mean daily motion in degrees per day. The
// design-time solver falls back to it when the provider reports zero speed.
const meanSolarSpeed = 0.9856
