package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/pkg/api"
)

// GatesHandler serves the static gate partition table.
type GatesHandler struct {
	wheel *astro.Wheel
}

// NewGatesHandler creates a gates handler over a validated wheel.
func NewGatesHandler(wheel *astro.Wheel) *GatesHandler {
	return &GatesHandler{wheel: wheel}
}

// ListGates handles GET /api/v1/gates.
func (h *GatesHandler) ListGates(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, api.NewGatesResponse(h.wheel.Gates()))
}

// GetGate handles GET /api/v1/gates/{number}.
func (h *GatesHandler) GetGate(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "gate number must be an integer")
		return
	}

	def, ok := h.wheel.Gate(number)
	if !ok {
		api.Error(w, http.StatusNotFound, "no such gate")
		return
	}

	resp := api.NewGatesResponse([]astro.GateDefinition{def})
	api.Success(w, http.StatusOK, resp.Gates[0])
}
