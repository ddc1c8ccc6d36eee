package ephemeris

import (
	"context"
	"math"

	"bodygraph-backend/internal/astro"
)

// j2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000 = 2451545.0

// meanElement holds a body's approximate mean ecliptic longitude at J2000 and
// its mean daily motion. The values come from standard mean orbital elements;
// they are accurate to a degree or so over decades, which is enough for a
// deterministic offline mode and for exercising the pipeline end to end.
type meanElement struct {
	lonAtEpoch float64 // degrees
	dailyRate  float64 // degrees per day
}

var meanElements = map[astro.Body]meanElement{
	astro.Sun:     {280.460, 0.98564736},
	astro.Moon:    {218.316, 13.17639648},
	astro.Mercury: {252.251, 4.09233445},
	astro.Venus:   {181.980, 1.60213034},
	astro.Mars:    {355.433, 0.52402068},
	astro.Jupiter: {34.351, 0.08308529},
	astro.Saturn:  {50.077, 0.03344414},
	astro.Uranus:  {314.055, 0.01172834},
	astro.Neptune: {304.349, 0.00598103},
	astro.Pluto:   {238.958, 0.00397557},
	// The true node regresses through the zodiac with an 18.6-year period.
	astro.NorthNode: {125.045, -0.05295377},
}

// MeanProvider is a local, dependency-free EphemerisProvider driven by mean
// orbital motion. Positions are approximate but fully deterministic, which
// makes it suitable for offline CLI runs and for tests of everything
// downstream of the provider.
type MeanProvider struct{}

// NewMeanProvider returns the mean-motion provider.
func NewMeanProvider() *MeanProvider { return &MeanProvider{} }

// LongitudeAndSpeed implements astro.EphemerisProvider using linear mean
// motion from the J2000 epoch. It never fails.
func (*MeanProvider) LongitudeAndSpeed(_ context.Context, jdUT float64, body astro.QueryableBody) (float64, float64, error) {
	el := meanElements[body.Body()]
	lon := math.Mod(el.lonAtEpoch+el.dailyRate*(jdUT-j2000), 360)
	if lon < 0 {
		lon += 360
	}
	return lon, el.dailyRate, nil
}
