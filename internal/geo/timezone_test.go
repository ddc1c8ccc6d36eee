package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "bodygraph-backend/pkg/errors"
)

func newTestTimezoneClient(t *testing.T, handler http.HandlerFunc) *TimezoneClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewTimezoneClient(server.URL, zap.NewNop())
}

func TestTimezoneForCoordinates(t *testing.T) {
	client := newTestTimezoneClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "35.084400", r.URL.Query().Get("lat"))
		assert.Equal(t, "-106.650400", r.URL.Query().Get("lon"))
		w.Write([]byte(`{"timezone":"America/Denver"}`))
	})

	name, err := client.TimezoneForCoordinates(context.Background(), 35.0844, -106.6504)
	require.NoError(t, err)
	assert.Equal(t, "America/Denver", name)
}

func TestTimezoneForCoordinatesUnknownName(t *testing.T) {
	client := newTestTimezoneClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timezone":"Not/AZone"}`))
	})

	_, err := client.TimezoneForCoordinates(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTimezone(err))
}

func TestTimezoneForCoordinatesEmptyResponse(t *testing.T) {
	client := newTestTimezoneClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.TimezoneForCoordinates(context.Background(), 0, 0)
	assert.Error(t, err)
}
