// Package router assembles the chi HTTP router for the bodygraph API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"bodygraph-backend/internal/config"
	"bodygraph-backend/internal/handlers"
	"bodygraph-backend/internal/middleware"
	"bodygraph-backend/internal/observability"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Router creates and configures the HTTP router.
type Router struct {
	cfg     *config.Config
	charts  *handlers.ChartHandler
	gates   *handlers.GatesHandler
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewRouter creates a router instance.
func NewRouter(
	cfg *config.Config,
	charts *handlers.ChartHandler,
	gates *handlers.GatesHandler,
	logger *zap.Logger,
	metrics *observability.Collector,
) *Router {
	return &Router{
		cfg:     cfg,
		charts:  charts,
		gates:   gates,
		logger:  logger,
		metrics: metrics,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(rt.logger))
	router.Use(middleware.Logging(rt.logger))
	if rt.cfg.Metrics.Enabled {
		router.Use(middleware.Metrics(rt.metrics))
	}
	router.Use(middleware.Timeout(60*time.Second, rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORS.AllowedOrigins,
		AllowedMethods: rt.cfg.CORS.AllowedMethods,
		AllowedHeaders: rt.cfg.CORS.AllowedHeaders,
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         rt.cfg.CORS.MaxAge,
	}))

	healthHandler := handlers.NewHealthHandler(Version)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)

	if rt.cfg.Metrics.Enabled {
		router.Method(http.MethodGet, rt.cfg.Metrics.Path, rt.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/charts", rt.charts.CreateChart)

		r.Route("/gates", func(r chi.Router) {
			r.Get("/", rt.gates.ListGates)
			r.Get("/{number}", rt.gates.GetGate)
		})
	})

	return router
}
