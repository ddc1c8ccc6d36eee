package astro

import (
	"context"
)

const (
	// designArcDeg is how far back along the ecliptic, in solar degrees, the
	// design moment sits before birth.
	designArcDeg = 88.0

	// solverTolerance is the convergence threshold in degrees.
	solverTolerance = 1e-6

	// solverMaxIterations caps the Newton iteration. The Sun moves at close
	// to 1°/day year-round, so realistic inputs converge in under 5 steps;
	// the cap is defensive.
	solverMaxIterations = 20
)

// DesignSolution reports the solved design-time Julian Day along with the
// solver's convergence diagnostics.
type DesignSolution struct {
	JD         float64
	Iterations int
	FinalError float64 // signed degrees, lon - target
	Converged  bool
}

// SolveDesignJD finds the Julian Day at which the Sun's ecliptic longitude
// equals (birthSunLon - 88°) mod 360, using Newton iteration with the Sun's
// instantaneous angular speed as the derivative estimate.
//
// On hitting the iteration cap the best estimate is still returned, with
// Converged false, so the caller decides whether to warn or fail; provider
// errors abort immediately.
func SolveDesignJD(ctx context.Context, provider EphemerisProvider, birthJD, birthSunLon float64) (DesignSolution, error) {
	target := normalize360(birthSunLon - designArcDeg)
	sun := Sun.MustQueryable()

	// The Sun's mean speed is ~1°/day, so 88 days back lands close enough
	// for Newton iteration to take over.
	jd := birthJD - designArcDeg

	sol := DesignSolution{JD: jd}
	for i := 0; i < solverMaxIterations; i++ {
		lon, speed, err := provider.LongitudeAndSpeed(ctx, jd, sun)
		if err != nil {
			return DesignSolution{}, err
		}

		errDeg := signedAngleDiff(lon, target)
		sol.Iterations = i + 1
		sol.FinalError = errDeg

		if errDeg < solverTolerance && errDeg > -solverTolerance {
			sol.JD = jd
			sol.Converged = true
			return sol, nil
		}

		if speed == 0 {
			speed = meanSolarSpeed
		}
		jd -= errDeg / speed
		sol.JD = jd
	}

	return sol, nil
}

// signedAngleDiff returns the smallest signed difference a - b in degrees,
// wrapped into [-180, 180). A naive subtraction would produce spurious
// errors near the 0°/360° discontinuity.
func signedAngleDiff(a, b float64) float64 {
	return normalize360(a-b+180.0) - 180.0
}
