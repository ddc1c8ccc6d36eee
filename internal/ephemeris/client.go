// Package ephemeris provides EphemerisProvider implementations: an HTTP
// client for a remote ephemeris service, and a deterministic mean-motion
// provider used by the CLI fallback and tests.
package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/internal/observability"
	apperrors "bodygraph-backend/pkg/errors"
)

// Client queries a remote ephemeris HTTP service for planetary longitudes.
//
// The service contract is GET {base}?jd=<float>&body=<name> returning
// {"longitude": <deg>, "speed": <deg/day>}.
type Client struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Collector
}

// NewClient creates an ephemeris client against baseURL. metrics may be nil.
func NewClient(baseURL string, logger *zap.Logger, metrics *observability.Collector) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		breaker: newBreaker(logger),
		metrics: metrics,
	}
}

type positionResponse struct {
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
}

// LongitudeAndSpeed implements astro.EphemerisProvider.
func (c *Client) LongitudeAndSpeed(ctx context.Context, jdUT float64, body astro.QueryableBody) (float64, float64, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetch(ctx, jdUT, body)
	})

	if c.metrics != nil {
		c.metrics.EphemerisDuration.Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.EphemerisCalls.WithLabelValues(body.String(), status).Inc()
	}
	if err != nil {
		return 0, 0, apperrors.NewEphemeris(
			fmt.Sprintf("position query failed for %s at jd %.6f", body, jdUT), err)
	}

	pos := result.(positionResponse)
	return pos.Longitude, pos.Speed, nil
}

func (c *Client) fetch(ctx context.Context, jdUT float64, body astro.QueryableBody) (positionResponse, error) {
	q := url.Values{}
	q.Set("jd", strconv.FormatFloat(jdUT, 'f', -1, 64))
	q.Set("body", body.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return positionResponse{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return positionResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return positionResponse{}, fmt.Errorf("ephemeris service returned status %d", resp.StatusCode)
	}

	var pos positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return positionResponse{}, err
	}
	return pos, nil
}

func newBreaker(logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ephemeris",
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
