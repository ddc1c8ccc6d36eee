package ephemeris

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bodygraph-backend/internal/astro"
)

func TestClientLongitudeAndSpeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2451545", r.URL.Query().Get("jd"))
		assert.Equal(t, "Sun", r.URL.Query().Get("body"))
		w.Write([]byte(`{"longitude":280.46,"speed":1.019}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop(), nil)
	lon, speed, err := client.LongitudeAndSpeed(context.Background(), 2451545.0, astro.Sun.MustQueryable())
	require.NoError(t, err)
	assert.InDelta(t, 280.46, lon, 1e-9)
	assert.InDelta(t, 1.019, speed, 1e-9)
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, zap.NewNop(), nil)
	_, _, err := client.LongitudeAndSpeed(context.Background(), 2451545.0, astro.Moon.MustQueryable())
	assert.Error(t, err)
}

func TestMeanProvider(t *testing.T) {
	provider := NewMeanProvider()

	// At the J2000 epoch every body sits at its epoch longitude.
	lon, speed, err := provider.LongitudeAndSpeed(context.Background(), 2451545.0, astro.Sun.MustQueryable())
	require.NoError(t, err)
	assert.InDelta(t, 280.460, lon, 1e-9)
	assert.InDelta(t, 0.98564736, speed, 1e-9)

	// One mean solar year later the Sun is back within a fraction of a degree.
	lon, _, err = provider.LongitudeAndSpeed(context.Background(), 2451545.0+365.2422, astro.Sun.MustQueryable())
	require.NoError(t, err)
	assert.InDelta(t, 280.460, lon, 0.05)

	// The node regresses: its longitude decreases over time.
	before, _, err := provider.LongitudeAndSpeed(context.Background(), 2451545.0, astro.NorthNode.MustQueryable())
	require.NoError(t, err)
	after, _, err := provider.LongitudeAndSpeed(context.Background(), 2451545.0+10, astro.NorthNode.MustQueryable())
	require.NoError(t, err)
	assert.Less(t, after, before)
}
