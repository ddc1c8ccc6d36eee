// Package di wires the application together. The provider functions live in
// providers.go; wire_gen.go holds the Wire-generated initializer.
package di

import (
	"net/http"

	"go.uber.org/zap"

	"bodygraph-backend/internal/config"
	"bodygraph-backend/internal/observability"
)

// Container holds the fully wired application.
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Collector
	Router  http.Handler
}

// NewContainer assembles the container from its wired parts.
func NewContainer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Collector,
	router http.Handler,
) *Container {
	return &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Router:  router,
	}
}

// Shutdown flushes buffered state. Safe to call once at process exit.
func (c *Container) Shutdown() {
	// Sync can fail on stderr sinks; there is nothing useful to do about it.
	_ = c.Logger.Sync()
}
