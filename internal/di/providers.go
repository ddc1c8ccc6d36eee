package di

import (
	"net/http"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/internal/chart"
	"bodygraph-backend/internal/config"
	"bodygraph-backend/internal/ephemeris"
	"bodygraph-backend/internal/geo"
	"bodygraph-backend/internal/handlers"
	"bodygraph-backend/internal/observability"
	"bodygraph-backend/internal/router"
)

// ProviderSet is the complete application provider graph.
var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideMetrics,
	ProvideWheel,
	ProvideGeocodeCache,
	ProvideGeocoder,
	ProvideTimezoneResolver,
	ProvideEphemeris,
	ProvideChartService,
	ProvideChartHandler,
	ProvideGatesHandler,
	ProvideRouter,
	NewContainer,
	wire.Bind(new(handlers.ChartService), new(*chart.Service)),
)

// ProvideConfig loads the layered configuration.
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the zap logger per environment and configured level.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	if cfg.Logging.Format == "console" {
		zapCfg.Encoding = "console"
	}

	return zapCfg.Build()
}

// ProvideMetrics builds the Prometheus collector.
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(cfg.Metrics.Namespace)
}

// ProvideWheel builds and validates the gate partition table once.
func ProvideWheel() (*astro.Wheel, error) {
	return astro.NewWheel()
}

// ProvideGeocodeCache opens the on-disk geocode cache.
func ProvideGeocodeCache(cfg *config.Config) *geo.DiskCache {
	return geo.NewDiskCache(cfg.Geocoder.CachePath)
}

// ProvideGeocoder builds the geocoding client.
func ProvideGeocoder(cfg *config.Config, cache *geo.DiskCache, logger *zap.Logger, metrics *observability.Collector) chart.Geocoder {
	return geo.NewGeocoder(cfg.Geocoder.BaseURL, cache, logger, metrics)
}

// ProvideTimezoneResolver builds the coordinates-to-timezone client.
func ProvideTimezoneResolver(cfg *config.Config, logger *zap.Logger) chart.TimezoneResolver {
	return geo.NewTimezoneClient(cfg.Timezone.BaseURL, logger)
}

// ProvideEphemeris selects the configured planetary position provider.
func ProvideEphemeris(cfg *config.Config, logger *zap.Logger, metrics *observability.Collector) astro.EphemerisProvider {
	if cfg.Ephemeris.Provider == "http" {
		return ephemeris.NewClient(cfg.Ephemeris.BaseURL, logger, metrics)
	}
	return ephemeris.NewMeanProvider()
}

// ProvideChartService builds the chart orchestration service.
func ProvideChartService(
	geocoder chart.Geocoder,
	timezones chart.TimezoneResolver,
	provider astro.EphemerisProvider,
	wheel *astro.Wheel,
	logger *zap.Logger,
	metrics *observability.Collector,
) *chart.Service {
	return chart.NewService(geocoder, timezones, provider, wheel, logger, metrics)
}

// ProvideChartHandler builds the chart HTTP handler.
func ProvideChartHandler(service handlers.ChartService, logger *zap.Logger) *handlers.ChartHandler {
	return handlers.NewChartHandler(service, logger)
}

// ProvideGatesHandler builds the gates HTTP handler.
func ProvideGatesHandler(wheel *astro.Wheel) *handlers.GatesHandler {
	return handlers.NewGatesHandler(wheel)
}

// ProvideRouter assembles the HTTP router.
func ProvideRouter(
	cfg *config.Config,
	charts *handlers.ChartHandler,
	gates *handlers.GatesHandler,
	logger *zap.Logger,
	metrics *observability.Collector,
) http.Handler {
	return router.NewRouter(cfg, charts, gates, logger, metrics).Setup()
}
