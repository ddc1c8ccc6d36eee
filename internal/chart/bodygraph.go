package chart

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/internal/observability"
)

// Geocoder resolves a human-readable place string to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (lat, lon float64, err error)
}

// TimezoneResolver maps coordinates to an IANA timezone name.
type TimezoneResolver interface {
	TimezoneForCoordinates(ctx context.Context, lat, lon float64) (string, error)
}

// Overrides lets callers skip geocoding and/or timezone lookup by supplying
// coordinates or an IANA timezone name directly.
type Overrides struct {
	Latitude  *float64
	Longitude *float64
	Timezone  string
}

// RawBodyGraph is the complete derived chart: the echoed input, the resolved
// location, both Julian Days, and the two thirteen-entry activation lists.
// Recomputing from the same BirthInfo is idempotent to within the solver's
// tolerance.
type RawBodyGraph struct {
	BirthInfo   BirthInfo
	Location    Location
	UTC         string // ISO-8601 birth instant in UTC
	BirthJD     float64
	DesignJD    float64
	Personality []astro.Activation // conscious, at birth
	Design      []astro.Activation // unconscious, 88 solar degrees earlier
}

// Service orchestrates the full pipeline: BirthInfo -> Location -> birth JD
// -> design JD -> two activation sets.
type Service struct {
	geocoder  Geocoder
	timezones TimezoneResolver
	ephemeris astro.EphemerisProvider
	builder   *astro.ActivationBuilder
	logger    *zap.Logger
	metrics   *observability.Collector
	tracer    trace.Tracer
}

// NewService wires the chart service from its collaborators. metrics may be
// nil in tests.
func NewService(
	geocoder Geocoder,
	timezones TimezoneResolver,
	ephemeris astro.EphemerisProvider,
	wheel *astro.Wheel,
	logger *zap.Logger,
	metrics *observability.Collector,
) *Service {
	return &Service{
		geocoder:  geocoder,
		timezones: timezones,
		ephemeris: ephemeris,
		builder:   astro.NewActivationBuilder(ephemeris, wheel),
		logger:    logger,
		metrics:   metrics,
		tracer:    otel.Tracer("bodygraph-backend/chart"),
	}
}

// BuildBodygraph computes the full raw bodygraph for a birth input.
func (s *Service) BuildBodygraph(ctx context.Context, info BirthInfo, ov Overrides) (*RawBodyGraph, error) {
	ctx, span := s.tracer.Start(ctx, "chart.BuildBodygraph",
		trace.WithAttributes(attribute.String("chart.place", info.Place())))
	defer span.End()

	loc, err := s.resolveLocation(ctx, info, ov)
	if err != nil {
		return nil, err
	}

	utc, err := astro.LocalToUTC(info.LocalTime, loc.Timezone)
	if err != nil {
		return nil, err
	}
	birthJD := astro.JulianDayFromUTC(utc)

	sunLon, _, err := s.ephemeris.LongitudeAndSpeed(ctx, birthJD, astro.Sun.MustQueryable())
	if err != nil {
		return nil, err
	}

	sol, err := astro.SolveDesignJD(ctx, s.ephemeris, birthJD, sunLon)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SolverIterations.Observe(float64(sol.Iterations))
	}
	if !sol.Converged {
		// Best estimate is still usable; the Sun's near-constant speed makes
		// this effectively unreachable, so it is worth a loud warning.
		s.logger.Warn("design-time solver hit iteration cap without converging",
			zap.Float64("birth_jd", birthJD),
			zap.Float64("design_jd", sol.JD),
			zap.Float64("final_error_deg", sol.FinalError),
			zap.Int("iterations", sol.Iterations),
		)
		if s.metrics != nil {
			s.metrics.SolverNonConverged.Inc()
		}
	}

	personality, err := s.builder.Build(ctx, birthJD)
	if err != nil {
		return nil, err
	}
	design, err := s.builder.Build(ctx, sol.JD)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ChartsComputed.Inc()
	}
	s.logger.Info("bodygraph computed",
		zap.String("place", loc.Place),
		zap.String("timezone", loc.Timezone),
		zap.Float64("birth_jd", birthJD),
		zap.Float64("design_jd", sol.JD),
		zap.Int("solver_iterations", sol.Iterations),
	)

	return &RawBodyGraph{
		BirthInfo:   info,
		Location:    loc,
		UTC:         utc.Format("2006-01-02T15:04:05Z07:00"),
		BirthJD:     birthJD,
		DesignJD:    sol.JD,
		Personality: personality,
		Design:      design,
	}, nil
}

// resolveLocation produces the Location for a birth input, honoring any
// overrides before falling back to the external collaborators.
func (s *Service) resolveLocation(ctx context.Context, info BirthInfo, ov Overrides) (Location, error) {
	ctx, span := s.tracer.Start(ctx, "chart.resolveLocation")
	defer span.End()

	loc := Location{Place: info.Place()}

	if ov.Latitude != nil && ov.Longitude != nil {
		loc.Latitude = *ov.Latitude
		loc.Longitude = *ov.Longitude
	} else {
		lat, lon, err := s.geocoder.Geocode(ctx, loc.Place)
		if err != nil {
			return Location{}, err
		}
		loc.Latitude = lat
		loc.Longitude = lon
	}

	if ov.Timezone != "" {
		loc.Timezone = ov.Timezone
	} else {
		tz, err := s.timezones.TimezoneForCoordinates(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			return Location{}, err
		}
		loc.Timezone = tz
	}

	return loc, nil
}
