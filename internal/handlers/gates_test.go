package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/pkg/api"
)

func newGatesRouter(t *testing.T) http.Handler {
	t.Helper()
	handler := NewGatesHandler(astro.MustNewWheel())

	r := chi.NewRouter()
	r.Get("/gates", handler.ListGates)
	r.Get("/gates/{number}", handler.GetGate)
	return r
}

func TestListGates(t *testing.T) {
	router := newGatesRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.GatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Gates, 64)

	// Sorted by gate number; each entry carries its arc and pairing.
	assert.Equal(t, 1, resp.Gates[0].Gate)
	assert.Equal(t, 64, resp.Gates[63].Gate)
	assert.Equal(t, []int{8}, resp.Gates[0].Complements)
}

func TestGetGate(t *testing.T) {
	router := newGatesRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/gates/25", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var gate api.GateInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gate))
	assert.Equal(t, 25, gate.Gate)
	assert.InDelta(t, 358.25, gate.StartDeg, 1e-9)
	assert.InDelta(t, 3.875, gate.EndDeg, 1e-9)
}

func TestGetGateNotFound(t *testing.T) {
	router := newGatesRouter(t)

	for _, path := range []string{"/gates/0", "/gates/65", "/gates/abc"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Contains(t, []int{http.StatusNotFound, http.StatusBadRequest}, rec.Code, path)
	}
}
