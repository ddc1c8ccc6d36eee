package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "bodygraph-backend/pkg/errors"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) (*Geocoder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache := NewDiskCache(filepath.Join(t.TempDir(), "cache.json"))
	return NewGeocoder(server.URL, cache, zap.NewNop(), nil), server
}

func TestGeocode(t *testing.T) {
	var requests int
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "json", r.URL.Query().Get("f"))
		assert.Equal(t, "Albuquerque, USA", r.URL.Query().Get("singleLine"))
		assert.Equal(t, "1", r.URL.Query().Get("maxLocations"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"location":{"x":-106.6504,"y":35.0844}}]}`))
	})

	lat, lon, err := g.Geocode(context.Background(), "Albuquerque, USA")
	require.NoError(t, err)
	assert.InDelta(t, 35.0844, lat, 1e-9)
	assert.InDelta(t, -106.6504, lon, 1e-9)

	// Second lookup is served from the cache.
	lat, lon, err = g.Geocode(context.Background(), "Albuquerque, USA")
	require.NoError(t, err)
	assert.InDelta(t, 35.0844, lat, 1e-9)
	assert.InDelta(t, -106.6504, lon, 1e-9)
	assert.Equal(t, 1, requests)
}

func TestGeocodeNoCandidates(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, _, err := g.Geocode(context.Background(), "Nowhere, XX")
	require.Error(t, err)
	assert.True(t, apperrors.IsGeocoding(err))
}

func TestGeocodeServerError(t *testing.T) {
	g, _ := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := g.Geocode(context.Background(), "London, UK")
	require.Error(t, err)
	assert.True(t, apperrors.IsGeocoding(err))
}
