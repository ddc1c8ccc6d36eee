// Package astro implements the astronomical-to-symbolic coordinate mapping
// engine: Julian Day conversion, the 64-gate partition of the ecliptic,
// longitude resolution to (gate, line), the design-time solver, and the
// activation set builder.
package astro

// Body identifies a celestial body used in bodygraph calculations.
//
// The declaration order is the canonical activation order: Sun, Earth, Moon,
// North Node, South Node, then Mercury through Pluto. Activation lists are
// always emitted in this order so consumers can rely on positional identity.
type Body int

const (
	Sun Body = iota
	Earth
	Moon
	NorthNode
	SouthNode
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// CanonicalBodies lists all thirteen bodies in canonical activation order.
var CanonicalBodies = [13]Body{
	Sun, Earth, Moon, NorthNode, SouthNode,
	Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
}

var bodyNames = map[Body]string{
	Sun:       "Sun",
	Earth:     "Earth",
	Moon:      "Moon",
	NorthNode: "NorthNode",
	SouthNode: "SouthNode",
	Mercury:   "Mercury",
	Venus:     "Venus",
	Mars:      "Mars",
	Jupiter:   "Jupiter",
	Saturn:    "Saturn",
	Uranus:    "Uranus",
	Neptune:   "Neptune",
	Pluto:     "Pluto",
}

func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return "Unknown"
}

// Derived reports whether this body's longitude is derived from another body
// instead of queried from the ephemeris provider. Earth is the Sun's
// antipode; the South Node is the North (true) Node's antipode.
func (b Body) Derived() bool {
	return b == Earth || b == SouthNode
}

// QueryableBody wraps a Body that may be passed to the ephemeris provider.
// It can only be obtained through Body.Queryable, which refuses the derived
// bodies, so a provider call for Earth or the South Node cannot be
// constructed.
type QueryableBody struct {
	body Body
}

// Queryable returns the provider-safe form of b, or false when b is derived.
func (b Body) Queryable() (QueryableBody, bool) {
	if b.Derived() {
		return QueryableBody{}, false
	}
	return QueryableBody{body: b}, true
}

// MustQueryable is Queryable for bodies known at compile time to be direct.
// It panics on derived bodies.
func (b Body) MustQueryable() QueryableBody {
	q, ok := b.Queryable()
	if !ok {
		panic("astro: " + b.String() + " is derived and cannot be queried")
	}
	return q
}

// Body returns the wrapped body identifier.
func (q QueryableBody) Body() Body { return q.body }

func (q QueryableBody) String() string { return q.body.String() }
