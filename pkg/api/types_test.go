package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/internal/chart"
)

func TestNewChartResponse(t *testing.T) {
	local := time.Date(1990, 5, 14, 8, 30, 0, 0, time.UTC)
	info, err := chart.NewBirthInfo("1990-05-14", local, "Albuquerque", "USA")
	require.NoError(t, err)

	graph := &chart.RawBodyGraph{
		BirthInfo: info,
		Location: chart.Location{
			Place: "Albuquerque, USA", Latitude: 35.0844, Longitude: -106.6504,
			Timezone: "America/Denver",
		},
		UTC:      "1990-05-14T14:30:00Z",
		BirthJD:  2448025.5,
		DesignJD: 2447936.1234567,
		Personality: []astro.Activation{
			{Body: astro.Sun, Longitude: 53.123456789, Gate: 2, Line: 4},
		},
		Design: []astro.Activation{
			{Body: astro.Sun, Longitude: 325.5, Gate: 43, Line: 1},
		},
	}

	resp := NewChartResponse(graph)

	assert.Equal(t, "1990-05-14", resp.Input.Date)
	assert.Equal(t, "08:30", resp.Input.TimeLocal)
	assert.Equal(t, "Albuquerque, USA", resp.Input.Place)
	assert.Equal(t, 2448025.5, resp.Input.JulianDayUT)
	assert.Equal(t, 2447936.1234567, resp.DesignTime.JulianDayUT)

	require.Len(t, resp.Personality, 1)
	p := resp.Personality[0]
	assert.Equal(t, "Sun", p.Planet)
	// Longitudes are rounded to six decimals on the wire.
	assert.Equal(t, 53.123457, p.LongitudeDeg)
	assert.Equal(t, "2.4", p.GateLine)
}

func TestNewGatesResponse(t *testing.T) {
	wheel := astro.MustNewWheel()
	resp := NewGatesResponse(wheel.Gates())

	require.Len(t, resp.Gates, 64)
	for _, g := range resp.Gates {
		assert.NotEmpty(t, g.Center, "gate %d", g.Gate)
		assert.NotEmpty(t, g.Complements, "gate %d", g.Gate)
	}
}
