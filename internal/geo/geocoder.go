// Package geo implements the external location collaborators: a geocoding
// client with an on-disk JSON cache, and a coordinate-to-timezone resolver.
// Both are thin bindings over remote services, guarded by circuit breakers.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"bodygraph-backend/internal/observability"
	apperrors "bodygraph-backend/pkg/errors"
)

// DefaultGeocodeURL is the ArcGIS world geocoding endpoint; it is free and
// requires no API key.
const DefaultGeocodeURL = "https://geocode.arcgis.com/arcgis/rest/services/World/GeocodeServer/findAddressCandidates"

// Geocoder resolves place strings to coordinates via an ArcGIS-style HTTP
// service, consulting the disk cache first.
type Geocoder struct {
	baseURL string
	client  *http.Client
	cache   *DiskCache
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewGeocoder creates a geocoder against baseURL (DefaultGeocodeURL if
// empty), caching results in cache. metrics may be nil.
func NewGeocoder(baseURL string, cache *DiskCache, logger *zap.Logger, metrics *observability.Collector) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &Geocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		cache:   cache,
		breaker: newBreaker("geocoder", logger),
		logger:  logger,
		metrics: metrics,
	}
}

// arcgisResponse is the subset of the findAddressCandidates payload we read.
type arcgisResponse struct {
	Candidates []struct {
		Location struct {
			X float64 `json:"x"` // longitude
			Y float64 `json:"y"` // latitude
		} `json:"location"`
	} `json:"candidates"`
}

// Geocode resolves a place string to (lat, lon). Results are cached on disk
// keyed by the exact place string; only cache misses reach the remote
// service. Fails with a GeocodingFailure error when the place cannot be
// resolved.
func (g *Geocoder) Geocode(ctx context.Context, place string) (float64, float64, error) {
	if lat, lon, ok := g.cache.Get(place); ok {
		if g.metrics != nil {
			g.metrics.GeocodeCacheHits.Inc()
		}
		return lat, lon, nil
	}
	if g.metrics != nil {
		g.metrics.GeocodeCacheMisses.Inc()
	}

	result, err := g.breaker.Execute(func() (any, error) {
		return g.fetch(ctx, place)
	})
	if err != nil {
		return 0, 0, apperrors.NewGeocoding(place, err)
	}

	loc := result.([2]float64)
	if err := g.cache.Put(place, loc[0], loc[1]); err != nil {
		// Cache persistence is best-effort; the lookup itself succeeded.
		g.logger.Warn("failed to persist geocode cache", zap.Error(err))
	}
	return loc[0], loc[1], nil
}

func (g *Geocoder) fetch(ctx context.Context, place string) ([2]float64, error) {
	q := url.Values{}
	q.Set("f", "json")
	q.Set("singleLine", place)
	q.Set("maxLocations", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return [2]float64{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return [2]float64{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return [2]float64{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var payload arcgisResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return [2]float64{}, err
	}
	if len(payload.Candidates) == 0 {
		return [2]float64{}, fmt.Errorf("no candidates returned")
	}

	loc := payload.Candidates[0].Location
	return [2]float64{loc.Y, loc.X}, nil
}

// newBreaker builds the circuit breaker shared by the geo clients.
func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
