package astro

import (
	"context"
	"fmt"
)

// Activation is one (body, gate, line) triple plus the longitude it was
// resolved from. Activations are derived values, computed fresh on every
// request and never mutated.
type Activation struct {
	Body      Body
	Longitude float64
	Gate      int
	Line      int
}

// GateLine renders the conventional "gate.line" notation, e.g. "4.3".
func (a Activation) GateLine() string {
	return fmt.Sprintf("%d.%d", a.Gate, a.Line)
}

// ActivationBuilder computes the thirteen-body activation set for a Julian
// Day against a validated wheel.
type ActivationBuilder struct {
	provider EphemerisProvider
	wheel    *Wheel
}

// NewActivationBuilder returns a builder reading longitudes from provider
// and resolving them through wheel.
func NewActivationBuilder(provider EphemerisProvider, wheel *Wheel) *ActivationBuilder {
	return &ActivationBuilder{provider: provider, wheel: wheel}
}

// Build returns exactly 13 activations in canonical order: Sun, Earth, Moon,
// North Node, South Node, Mercury, Venus, Mars, Jupiter, Saturn, Uranus,
// Neptune, Pluto.
//
// Earth and the South Node are derived, not queried: Earth is the Sun's
// longitude + 180°, the South Node the North Node's + 180°. Provider errors
// propagate untranslated.
func (b *ActivationBuilder) Build(ctx context.Context, jdUT float64) ([]Activation, error) {
	longitudes := make(map[Body]float64, len(CanonicalBodies))

	for _, body := range CanonicalBodies {
		q, ok := body.Queryable()
		if !ok {
			continue // derived below
		}
		lon, _, err := b.provider.LongitudeAndSpeed(ctx, jdUT, q)
		if err != nil {
			return nil, err
		}
		longitudes[body] = normalize360(lon)
	}

	longitudes[Earth] = normalize360(longitudes[Sun] + 180.0)
	longitudes[SouthNode] = normalize360(longitudes[NorthNode] + 180.0)

	// Emit in canonical order regardless of how the longitudes were
	// gathered, so consumers can rely on positional identity.
	out := make([]Activation, 0, len(CanonicalBodies))
	for _, body := range CanonicalBodies {
		lon := longitudes[body]
		gate, line, err := b.wheel.Resolve(lon)
		if err != nil {
			return nil, err
		}
		out = append(out, Activation{Body: body, Longitude: lon, Gate: gate, Line: line})
	}
	return out, nil
}
