// Package handlers implements the HTTP handlers for the bodygraph API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"bodygraph-backend/internal/chart"
	"bodygraph-backend/pkg/api"
	apperrors "bodygraph-backend/pkg/errors"
)

// ChartService is the part of the chart service the handler needs.
type ChartService interface {
	BuildBodygraph(ctx context.Context, info chart.BirthInfo, ov chart.Overrides) (*chart.RawBodyGraph, error)
}

// ChartHandler handles chart computation requests.
type ChartHandler struct {
	service  ChartService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewChartHandler creates a chart handler.
func NewChartHandler(service ChartService, logger *zap.Logger) *ChartHandler {
	return &ChartHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateChart handles POST /api/v1/charts.
func (h *ChartHandler) CreateChart(w http.ResponseWriter, r *http.Request) {
	var req api.ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	localTime, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.Time)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid date/time: "+err.Error())
		return
	}

	info, err := chart.NewBirthInfo(req.Date, localTime, req.City, req.Country)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	graph, err := h.service.BuildBodygraph(r.Context(), info, chart.Overrides{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
	})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.NewChartResponse(graph))
}

// respondAppError maps application error types to HTTP status codes.
func (h *ChartHandler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsInvalidTimezone(err):
		api.Error(w, http.StatusBadRequest, err.Error())
	case apperrors.IsGeocoding(err):
		api.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("chart computation failed", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
