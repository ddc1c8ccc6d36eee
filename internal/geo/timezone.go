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

	apperrors "bodygraph-backend/pkg/errors"
)

// TimezoneClient resolves coordinates to an IANA timezone name via a remote
// lookup service.
type TimezoneClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewTimezoneClient creates a resolver against the given base URL.
func NewTimezoneClient(baseURL string, logger *zap.Logger) *TimezoneClient {
	return &TimezoneClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		breaker: newBreaker("timezone", logger),
	}
}

// TimezoneForCoordinates returns the IANA timezone name covering (lat, lon).
// The returned name is checked against the local tzdata before being trusted.
func (t *TimezoneClient) TimezoneForCoordinates(ctx context.Context, lat, lon float64) (string, error) {
	result, err := t.breaker.Execute(func() (any, error) {
		return t.fetch(ctx, lat, lon)
	})
	if err != nil {
		return "", apperrors.NewInternal("timezone lookup failed", err)
	}

	name := result.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return "", apperrors.NewInvalidTimezone(name, err)
	}
	return name, nil
}

func (t *TimezoneClient) fetch(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.6f", lat))
	q.Set("lon", fmt.Sprintf("%.6f", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timezone service returned status %d", resp.StatusCode)
	}

	var payload struct {
		Timezone string `json:"timezone"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Timezone == "" {
		return "", fmt.Errorf("timezone service returned empty name")
	}
	return payload.Timezone, nil
}
