package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWheel(t *testing.T) {
	wheel, err := NewWheel()
	require.NoError(t, err)

	assert.Len(t, wheel.Gates(), 64)
	// 64 gates, one of which wraps the 0° Aries point into two arcs.
	assert.Len(t, wheel.Arcs(), 65)
}

func TestWheelCompleteness(t *testing.T) {
	wheel := MustNewWheel()

	// Every longitude must resolve to exactly one gate and a line in [1, 6].
	for lon := 0.0; lon < 360.0; lon += 0.01 {
		gate, line, err := wheel.Resolve(lon)
		require.NoError(t, err, "longitude %f", lon)
		assert.GreaterOrEqual(t, gate, 1)
		assert.LessOrEqual(t, gate, 64)
		assert.GreaterOrEqual(t, line, 1)
		assert.LessOrEqual(t, line, 6)
	}
}

func TestWheelBoundaries(t *testing.T) {
	wheel := MustNewWheel()

	tests := []struct {
		name     string
		lon      float64
		wantGate int
		wantLine int
	}{
		{"zero aries inside wrapped gate", 0.0, 25, 2},
		{"wrap tail start", 358.25, 25, 1},
		{"just before wrap tail", 358.2499, 36, 6},
		{"boundary belongs to following gate", 3.875, 17, 1},
		{"just before boundary", 3.8749, 25, 6},
		{"full circle wraps to zero", 360.0, 25, 2},
		{"negative longitude normalizes", -1.75, 25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, line, err := wheel.Resolve(tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGate, gate)
			assert.Equal(t, tt.wantLine, line)
		})
	}
}

func TestWheelLinesAreMonotonic(t *testing.T) {
	wheel := MustNewWheel()

	// Sweeping through a non-wrapping gate, the line number never decreases.
	def, ok := wheel.Gate(17)
	require.True(t, ok)

	prev := 0
	for lon := def.StartDeg; lon < def.EndDeg; lon += 0.001 {
		gate, line, err := wheel.Resolve(lon)
		require.NoError(t, err)
		require.Equal(t, 17, gate)
		require.GreaterOrEqual(t, line, prev)
		prev = line
	}
	assert.Equal(t, 6, prev)
}

func TestWheelWrappedGateLineSpan(t *testing.T) {
	wheel := MustNewWheel()

	// Gate 25 spans 358.25° to 3.875°; line subdivision runs over the
	// combined 5.625°, so each line covers 0.9375°.
	tests := []struct {
		lon      float64
		wantLine int
	}{
		{358.25, 1},
		{359.1875, 2},
		{0.125, 3},
		{1.0, 3},
		{3.0, 6},
		{3.874, 6},
	}

	for _, tt := range tests {
		gate, line, err := wheel.Resolve(tt.lon)
		require.NoError(t, err)
		require.Equal(t, 25, gate, "longitude %f", tt.lon)
		assert.Equal(t, tt.wantLine, line, "longitude %f", tt.lon)
	}
}

func TestGateMetadata(t *testing.T) {
	wheel := MustNewWheel()

	def, ok := wheel.Gate(10)
	require.True(t, ok)
	assert.Equal(t, CenterIdentity, def.Center)
	assert.Equal(t, []int{20, 34, 57}, def.Complements)

	_, ok = wheel.Gate(65)
	assert.False(t, ok)
}

func TestZodiacCoordinateDecimalDegrees(t *testing.T) {
	assert.InDelta(t, 0.0, ZodiacCoordinate{Aries, 0, 0, 0}.DecimalDegrees(), 1e-12)
	assert.InDelta(t, 358.25, ZodiacCoordinate{Pisces, 28, 15, 0}.DecimalDegrees(), 1e-12)
	assert.InDelta(t, 3.875, ZodiacCoordinate{Aries, 3, 52, 30}.DecimalDegrees(), 1e-12)
}
