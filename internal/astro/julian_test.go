package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bodygraph-backend/pkg/errors"
)

func TestJulianDayFromUTC(t *testing.T) {
	tests := []struct {
		name string
		utc  time.Time
		want float64
	}{
		{
			"J2000 epoch",
			time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			2451545.0,
		},
		{
			"J2000 epoch midnight",
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			2451544.5,
		},
		{
			"mid 1987",
			time.Date(1987, 6, 19, 12, 0, 0, 0, time.UTC),
			2446966.0,
		},
		{
			"leap day",
			time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC),
			2460369.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, JulianDayFromUTC(tt.utc), 1e-9)
		})
	}
}

func TestJulianDayContinuity(t *testing.T) {
	// Crossing midnight, month and year boundaries must advance the Julian
	// Day smoothly, never jump.
	cur := time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC)
	prev := JulianDayFromUTC(cur)
	for i := 0; i < 48; i++ {
		cur = cur.Add(30 * time.Minute)
		jd := JulianDayFromUTC(cur)
		assert.InDelta(t, 30.0/(60*24), jd-prev, 1e-9)
		prev = jd
	}
}

func TestLocalToUTC(t *testing.T) {
	local := time.Date(1990, 5, 14, 8, 30, 0, 0, time.UTC)

	utc, err := LocalToUTC(local, "America/Denver")
	require.NoError(t, err)
	// May is daylight saving time in Denver: UTC-6.
	assert.Equal(t, time.Date(1990, 5, 14, 14, 30, 0, 0, time.UTC), utc)

	utc, err = LocalToUTC(local, "UTC")
	require.NoError(t, err)
	assert.Equal(t, local, utc)
}

func TestLocalToUTCInvalidTimezone(t *testing.T) {
	_, err := LocalToUTC(time.Now(), "Not/AZone")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTimezone(err))
}

func TestToJulianDayUT(t *testing.T) {
	local := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	jd, err := ToJulianDayUT(local, "UTC")
	require.NoError(t, err)
	assert.InDelta(t, 2451545.0, jd, 1e-9)

	_, err = ToJulianDayUT(local, "bogus")
	assert.Error(t, err)
}
