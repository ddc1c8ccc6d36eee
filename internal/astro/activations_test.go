package astro

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSky returns a fixed longitude per body, ignoring time.
type fixedSky struct {
	longitudes map[Body]float64
}

func (p *fixedSky) LongitudeAndSpeed(_ context.Context, _ float64, body QueryableBody) (float64, float64, error) {
	return p.longitudes[body.Body()], 1.0, nil
}

func TestActivationBuilderCanonicalOrder(t *testing.T) {
	sky := &fixedSky{longitudes: map[Body]float64{
		Sun: 45.0, Moon: 120.0, NorthNode: 200.0,
		Mercury: 50.0, Venus: 80.0, Mars: 150.0, Jupiter: 210.0,
		Saturn: 270.0, Uranus: 300.0, Neptune: 330.0, Pluto: 10.0,
	}}
	builder := NewActivationBuilder(sky, MustNewWheel())

	activations, err := builder.Build(context.Background(), 2451545.0)
	require.NoError(t, err)
	require.Len(t, activations, 13)

	want := []Body{
		Sun, Earth, Moon, NorthNode, SouthNode,
		Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
	}
	for i, body := range want {
		assert.Equal(t, body, activations[i].Body, "position %d", i)
	}
}

func TestActivationBuilderDerivedBodies(t *testing.T) {
	sky := &fixedSky{longitudes: map[Body]float64{
		Sun: 10.0, Moon: 0, NorthNode: 350.0,
		Mercury: 0, Venus: 0, Mars: 0, Jupiter: 0,
		Saturn: 0, Uranus: 0, Neptune: 0, Pluto: 0,
	}}
	builder := NewActivationBuilder(sky, MustNewWheel())

	activations, err := builder.Build(context.Background(), 2451545.0)
	require.NoError(t, err)

	byBody := make(map[Body]Activation, len(activations))
	for _, a := range activations {
		byBody[a.Body] = a
	}

	// Earth is the Sun's antipode, the South Node the North Node's; both
	// wrap back into [0, 360).
	assert.InDelta(t, 190.0, byBody[Earth].Longitude, 1e-9)
	assert.InDelta(t, 170.0, byBody[SouthNode].Longitude, 1e-9)
}

func TestActivationGateLine(t *testing.T) {
	a := Activation{Body: Sun, Gate: 4, Line: 3}
	assert.Equal(t, "4.3", a.GateLine())
}

func TestBodyQueryable(t *testing.T) {
	_, ok := Earth.Queryable()
	assert.False(t, ok)
	_, ok = SouthNode.Queryable()
	assert.False(t, ok)

	q, ok := Sun.Queryable()
	require.True(t, ok)
	assert.Equal(t, Sun, q.Body())

	assert.Panics(t, func() { Earth.MustQueryable() })
}
