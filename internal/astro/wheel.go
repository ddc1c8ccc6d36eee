package astro

import (
	"fmt"
	"math"
	"sort"

	apperrors "bodygraph-backend/pkg/errors"
)

// ZodiacSign is one of the twelve 30° segments of the tropical zodiac.
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s ZodiacSign) String() string { return signNames[s] }

// StartDeg returns the absolute degree at which the sign begins (Aries 0°,
// Taurus 30°, ... Pisces 330°).
func (s ZodiacSign) StartDeg() float64 { return float64(s) * 30.0 }

// ZodiacCoordinate is a position on the ecliptic expressed as a zodiac sign
// plus degrees, minutes and seconds within that sign.
type ZodiacCoordinate struct {
	Sign ZodiacSign
	Deg  int
	Min  int
	Sec  int
}

// DecimalDegrees converts the coordinate to absolute decimal degrees [0, 360).
func (z ZodiacCoordinate) DecimalDegrees() float64 {
	return z.Sign.StartDeg() + float64(z.Deg) + float64(z.Min)/60.0 + float64(z.Sec)/3600.0
}

func (z ZodiacCoordinate) String() string {
	return fmt.Sprintf("%d°%d'%d\" %s", z.Deg, z.Min, z.Sec, z.Sign)
}

// Center names the nine bodygraph energy centers. The grouping is
// organizational metadata only; it plays no part in longitude resolution.
type Center string

const (
	CenterInspiration Center = "INSPIRATION"
	CenterMind        Center = "MIND"
	CenterExpression  Center = "EXPRESSION"
	CenterIdentity    Center = "IDENTITY"
	CenterWillpower   Center = "WILLPOWER"
	CenterEmotion     Center = "EMOTION"
	CenterDrive       Center = "DRIVE"
	CenterLifeForce   Center = "LIFEFORCE"
	CenterIntuition   Center = "INTUITION"
)

// GateDefinition describes one of the 64 gates: its number, the gate(s) it
// pairs with across a channel (some gates pair with more than one), the
// center it belongs to, and its zodiacal span.
type GateDefinition struct {
	Number      int              `json:"number"`
	Complements []int            `json:"complements"`
	Center      Center           `json:"center"`
	Start       ZodiacCoordinate `json:"-"`
	End         ZodiacCoordinate `json:"-"`
	StartDeg    float64          `json:"start_deg"`
	EndDeg      float64          `json:"end_deg"`
}

// Arc is one contiguous degree range belonging to a gate. A gate whose span
// crosses the 0°/360° boundary is stored as two arcs sharing the gate number;
// lineOffset carries the degrees of the gate that precede the arc so line
// subdivision still runs over the gate's combined span.
type Arc struct {
	Gate       int
	Start      float64 // inclusive
	End        float64 // exclusive
	gateSpan   float64
	lineOffset float64
}

// Wheel is the validated, immutable 64-gate partition of the ecliptic
// circle. Build it once with NewWheel and share it freely; it is never
// mutated after construction and is safe for concurrent use.
type Wheel struct {
	arcs  []Arc
	gates map[int]GateDefinition
}

// gateRow is one entry of the published arc-boundary table, in forward wheel
// order starting from the gate that wraps the 0° Aries point. Boundaries are
// carried verbatim in degrees-minutes-seconds; adjacent rows share boundary
// literals, which is what makes the completeness validation exact.
type gateRow struct {
	gate       int
	start, end ZodiacCoordinate
}

var wheelRows = []gateRow{
	{25, ZodiacCoordinate{Pisces, 28, 15, 0}, ZodiacCoordinate{Aries, 3, 52, 30}}, // wraps 360°->0°
	{17, ZodiacCoordinate{Aries, 3, 52, 30}, ZodiacCoordinate{Aries, 9, 30, 0}},
	{21, ZodiacCoordinate{Aries, 9, 30, 0}, ZodiacCoordinate{Aries, 15, 7, 30}},
	{51, ZodiacCoordinate{Aries, 15, 7, 30}, ZodiacCoordinate{Aries, 20, 45, 0}},
	{42, ZodiacCoordinate{Aries, 20, 45, 0}, ZodiacCoordinate{Aries, 26, 22, 30}},
	{3, ZodiacCoordinate{Aries, 26, 22, 30}, ZodiacCoordinate{Taurus, 2, 0, 0}},
	{27, ZodiacCoordinate{Taurus, 2, 0, 0}, ZodiacCoordinate{Taurus, 7, 37, 30}},
	{24, ZodiacCoordinate{Taurus, 7, 37, 30}, ZodiacCoordinate{Taurus, 13, 15, 0}},
	{2, ZodiacCoordinate{Taurus, 13, 15, 0}, ZodiacCoordinate{Taurus, 18, 52, 30}},
	{23, ZodiacCoordinate{Taurus, 18, 52, 30}, ZodiacCoordinate{Taurus, 24, 30, 0}},
	{8, ZodiacCoordinate{Taurus, 24, 30, 0}, ZodiacCoordinate{Gemini, 0, 7, 30}},
	{20, ZodiacCoordinate{Gemini, 0, 7, 30}, ZodiacCoordinate{Gemini, 5, 45, 0}},
	{16, ZodiacCoordinate{Gemini, 5, 45, 0}, ZodiacCoordinate{Gemini, 11, 22, 30}},
	{35, ZodiacCoordinate{Gemini, 11, 22, 30}, ZodiacCoordinate{Gemini, 17, 0, 0}},
	{45, ZodiacCoordinate{Gemini, 17, 0, 0}, ZodiacCoordinate{Gemini, 22, 27, 30}},
	{12, ZodiacCoordinate{Gemini, 22, 27, 30}, ZodiacCoordinate{Gemini, 28, 15, 0}},
	{15, ZodiacCoordinate{Gemini, 28, 15, 0}, ZodiacCoordinate{Cancer, 3, 52, 30}},
	{52, ZodiacCoordinate{Cancer, 3, 52, 30}, ZodiacCoordinate{Cancer, 9, 30, 0}},
	{39, ZodiacCoordinate{Cancer, 9, 30, 0}, ZodiacCoordinate{Cancer, 15, 7, 30}},
	{53, ZodiacCoordinate{Cancer, 15, 7, 30}, ZodiacCoordinate{Cancer, 20, 45, 0}},
	{62, ZodiacCoordinate{Cancer, 20, 45, 0}, ZodiacCoordinate{Cancer, 26, 22, 30}},
	{56, ZodiacCoordinate{Cancer, 26, 22, 30}, ZodiacCoordinate{Leo, 2, 0, 0}},
	{31, ZodiacCoordinate{Leo, 2, 0, 0}, ZodiacCoordinate{Leo, 7, 37, 30}},
	{33, ZodiacCoordinate{Leo, 7, 37, 30}, ZodiacCoordinate{Leo, 13, 15, 0}},
	{7, ZodiacCoordinate{Leo, 13, 15, 0}, ZodiacCoordinate{Leo, 18, 52, 30}},
	{4, ZodiacCoordinate{Leo, 18, 52, 30}, ZodiacCoordinate{Leo, 24, 30, 0}},
	{29, ZodiacCoordinate{Leo, 24, 30, 0}, ZodiacCoordinate{Virgo, 0, 7, 30}},
	{59, ZodiacCoordinate{Virgo, 0, 7, 30}, ZodiacCoordinate{Virgo, 5, 45, 0}},
	{40, ZodiacCoordinate{Virgo, 5, 45, 0}, ZodiacCoordinate{Virgo, 11, 22, 30}},
	{64, ZodiacCoordinate{Virgo, 11, 22, 30}, ZodiacCoordinate{Virgo, 17, 0, 0}},
	{47, ZodiacCoordinate{Virgo, 17, 0, 0}, ZodiacCoordinate{Virgo, 22, 27, 30}},
	{6, ZodiacCoordinate{Virgo, 22, 27, 30}, ZodiacCoordinate{Virgo, 28, 15, 0}},
	{46, ZodiacCoordinate{Virgo, 28, 15, 0}, ZodiacCoordinate{Libra, 3, 52, 30}},
	{18, ZodiacCoordinate{Libra, 3, 52, 30}, ZodiacCoordinate{Libra, 9, 30, 0}},
	{48, ZodiacCoordinate{Libra, 9, 30, 0}, ZodiacCoordinate{Libra, 15, 7, 30}},
	{57, ZodiacCoordinate{Libra, 15, 7, 30}, ZodiacCoordinate{Libra, 20, 45, 0}},
	{32, ZodiacCoordinate{Libra, 20, 45, 0}, ZodiacCoordinate{Libra, 26, 22, 30}},
	{50, ZodiacCoordinate{Libra, 26, 22, 30}, ZodiacCoordinate{Scorpio, 2, 0, 0}},
	{28, ZodiacCoordinate{Scorpio, 2, 0, 0}, ZodiacCoordinate{Scorpio, 7, 37, 30}},
	{44, ZodiacCoordinate{Scorpio, 7, 37, 30}, ZodiacCoordinate{Scorpio, 13, 15, 0}},
	{1, ZodiacCoordinate{Scorpio, 13, 15, 0}, ZodiacCoordinate{Scorpio, 18, 52, 30}},
	{43, ZodiacCoordinate{Scorpio, 18, 52, 30}, ZodiacCoordinate{Scorpio, 24, 30, 0}},
	{14, ZodiacCoordinate{Scorpio, 24, 30, 0}, ZodiacCoordinate{Sagittarius, 0, 7, 30}},
	{34, ZodiacCoordinate{Sagittarius, 0, 7, 30}, ZodiacCoordinate{Sagittarius, 5, 45, 0}},
	{9, ZodiacCoordinate{Sagittarius, 5, 45, 0}, ZodiacCoordinate{Sagittarius, 11, 22, 30}},
	{5, ZodiacCoordinate{Sagittarius, 11, 22, 30}, ZodiacCoordinate{Sagittarius, 17, 0, 0}},
	{26, ZodiacCoordinate{Sagittarius, 17, 0, 0}, ZodiacCoordinate{Sagittarius, 22, 27, 30}},
	{11, ZodiacCoordinate{Sagittarius, 22, 27, 30}, ZodiacCoordinate{Sagittarius, 28, 15, 0}},
	{10, ZodiacCoordinate{Sagittarius, 28, 15, 0}, ZodiacCoordinate{Capricorn, 3, 52, 30}},
	{58, ZodiacCoordinate{Capricorn, 3, 52, 30}, ZodiacCoordinate{Capricorn, 9, 30, 0}},
	{38, ZodiacCoordinate{Capricorn, 9, 30, 0}, ZodiacCoordinate{Capricorn, 15, 7, 30}},
	{54, ZodiacCoordinate{Capricorn, 15, 7, 30}, ZodiacCoordinate{Capricorn, 20, 45, 0}},
	{61, ZodiacCoordinate{Capricorn, 20, 45, 0}, ZodiacCoordinate{Capricorn, 26, 22, 30}},
	{60, ZodiacCoordinate{Capricorn, 26, 22, 30}, ZodiacCoordinate{Aquarius, 2, 0, 0}},
	{41, ZodiacCoordinate{Aquarius, 2, 0, 0}, ZodiacCoordinate{Aquarius, 7, 37, 30}},
	{19, ZodiacCoordinate{Aquarius, 7, 37, 30}, ZodiacCoordinate{Aquarius, 13, 15, 0}},
	{13, ZodiacCoordinate{Aquarius, 13, 15, 0}, ZodiacCoordinate{Aquarius, 18, 52, 30}},
	{49, ZodiacCoordinate{Aquarius, 18, 52, 30}, ZodiacCoordinate{Aquarius, 24, 30, 0}},
	{30, ZodiacCoordinate{Aquarius, 24, 30, 0}, ZodiacCoordinate{Pisces, 0, 7, 30}},
	{55, ZodiacCoordinate{Pisces, 0, 7, 30}, ZodiacCoordinate{Pisces, 5, 45, 0}},
	{37, ZodiacCoordinate{Pisces, 5, 45, 0}, ZodiacCoordinate{Pisces, 11, 22, 30}},
	{63, ZodiacCoordinate{Pisces, 11, 22, 30}, ZodiacCoordinate{Pisces, 17, 0, 0}},
	{22, ZodiacCoordinate{Pisces, 17, 0, 0}, ZodiacCoordinate{Pisces, 22, 27, 30}},
	{36, ZodiacCoordinate{Pisces, 22, 27, 30}, ZodiacCoordinate{Pisces, 28, 15, 0}},
}

// gateMeta holds the channel pairing and center grouping for each gate.
var gateMeta = map[int]struct {
	center      Center
	complements []int
}{
	1:  {CenterIdentity, []int{8}},
	2:  {CenterIdentity, []int{14}},
	3:  {CenterLifeForce, []int{60}},
	4:  {CenterMind, []int{63}},
	5:  {CenterLifeForce, []int{15}},
	6:  {CenterEmotion, []int{59}},
	7:  {CenterIdentity, []int{31}},
	8:  {CenterExpression, []int{1}},
	9:  {CenterLifeForce, []int{52}},
	10: {CenterIdentity, []int{20, 34, 57}},
	11: {CenterMind, []int{56}},
	12: {CenterExpression, []int{22}},
	13: {CenterIdentity, []int{33}},
	14: {CenterLifeForce, []int{2}},
	15: {CenterIdentity, []int{5}},
	16: {CenterExpression, []int{48}},
	17: {CenterMind, []int{62}},
	18: {CenterIntuition, []int{58}},
	19: {CenterDrive, []int{49}},
	20: {CenterExpression, []int{10, 34, 57}},
	21: {CenterWillpower, []int{45}},
	22: {CenterEmotion, []int{12}},
	23: {CenterExpression, []int{43}},
	24: {CenterMind, []int{61}},
	25: {CenterIdentity, []int{51}},
	26: {CenterWillpower, []int{44}},
	27: {CenterLifeForce, []int{50}},
	28: {CenterIntuition, []int{38}},
	29: {CenterLifeForce, []int{46}},
	30: {CenterEmotion, []int{41}},
	31: {CenterExpression, []int{7}},
	32: {CenterIntuition, []int{54}},
	33: {CenterExpression, []int{13}},
	34: {CenterLifeForce, []int{10, 20, 57}},
	35: {CenterExpression, []int{36}},
	36: {CenterEmotion, []int{35}},
	37: {CenterEmotion, []int{40}},
	38: {CenterDrive, []int{28}},
	39: {CenterDrive, []int{55}},
	40: {CenterWillpower, []int{37}},
	41: {CenterDrive, []int{30}},
	42: {CenterLifeForce, []int{53}},
	43: {CenterMind, []int{23}},
	44: {CenterIntuition, []int{26}},
	45: {CenterExpression, []int{21}},
	46: {CenterIdentity, []int{29}},
	47: {CenterMind, []int{64}},
	48: {CenterIntuition, []int{16}},
	49: {CenterEmotion, []int{19}},
	50: {CenterIntuition, []int{27}},
	51: {CenterWillpower, []int{25}},
	52: {CenterDrive, []int{9}},
	53: {CenterDrive, []int{42}},
	54: {CenterDrive, []int{32}},
	55: {CenterEmotion, []int{39}},
	56: {CenterExpression, []int{11}},
	57: {CenterIntuition, []int{10, 20, 34}},
	58: {CenterDrive, []int{18}},
	59: {CenterLifeForce, []int{6}},
	60: {CenterDrive, []int{3}},
	61: {CenterInspiration, []int{24}},
	62: {CenterExpression, []int{17}},
	63: {CenterInspiration, []int{4}},
	64: {CenterInspiration, []int{47}},
}

// NewWheel builds and validates the gate partition table. The returned Wheel
// is immutable; construct it once at startup and inject it wherever
// longitudes need resolving.
func NewWheel() (*Wheel, error) {
	w := &Wheel{
		arcs:  make([]Arc, 0, len(wheelRows)+1),
		gates: make(map[int]GateDefinition, len(wheelRows)),
	}

	for _, row := range wheelRows {
		meta, ok := gateMeta[row.gate]
		if !ok {
			return nil, apperrors.NewInternal(fmt.Sprintf("gate %d has no metadata", row.gate), nil)
		}

		start := row.start.DecimalDegrees()
		end := row.end.DecimalDegrees()

		if _, dup := w.gates[row.gate]; dup {
			return nil, apperrors.NewInternal(fmt.Sprintf("gate %d defined twice", row.gate), nil)
		}
		w.gates[row.gate] = GateDefinition{
			Number:      row.gate,
			Complements: meta.complements,
			Center:      meta.center,
			Start:       row.start,
			End:         row.end,
			StartDeg:    start,
			EndDeg:      end,
		}

		if start < end {
			w.arcs = append(w.arcs, Arc{
				Gate:     row.gate,
				Start:    start,
				End:      end,
				gateSpan: end - start,
			})
			continue
		}

		// The span crosses 0° Aries: store a tail arc ending at 360 and a
		// head arc beginning at 0, both resolving to the same gate. Line
		// subdivision still runs over the combined span.
		span := (360.0 - start) + end
		w.arcs = append(w.arcs,
			Arc{Gate: row.gate, Start: start, End: 360.0, gateSpan: span},
			Arc{Gate: row.gate, Start: 0.0, End: end, gateSpan: span, lineOffset: 360.0 - start},
		)
	}

	sort.Slice(w.arcs, func(i, j int) bool { return w.arcs[i].Start < w.arcs[j].Start })

	if err := w.validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// MustNewWheel is NewWheel for callers that treat a bad partition table as a
// programming error (CLI startup, tests).
func MustNewWheel() *Wheel {
	w, err := NewWheel()
	if err != nil {
		panic(err)
	}
	return w
}

// validate asserts the single most important correctness property of the
// whole system: the sorted arcs cover [0, 360) exactly, with no gap and no
// overlap. Boundaries come from shared DMS literals, so adjacent arcs must
// match to the last bit.
func (w *Wheel) validate() error {
	if len(w.gates) != 64 {
		return apperrors.NewInternal(fmt.Sprintf("expected 64 gates, have %d", len(w.gates)), nil)
	}
	if len(w.arcs) == 0 {
		return apperrors.NewInternal("partition table is empty", nil)
	}
	if first := w.arcs[0]; first.Start != 0.0 {
		return apperrors.NewInternal(fmt.Sprintf("first arc starts at %.9f, want 0", first.Start), nil)
	}
	if last := w.arcs[len(w.arcs)-1]; last.End != 360.0 {
		return apperrors.NewInternal(fmt.Sprintf("last arc ends at %.9f, want 360", last.End), nil)
	}
	for i := 0; i < len(w.arcs)-1; i++ {
		cur, next := w.arcs[i], w.arcs[i+1]
		if cur.End != next.Start {
			return apperrors.NewInternal(fmt.Sprintf(
				"gap or overlap between gate %d (ends %.9f) and gate %d (starts %.9f)",
				cur.Gate, cur.End, next.Gate, next.Start), nil)
		}
	}
	return nil
}

// Resolve maps an ecliptic longitude to its (gate, line) pair. Longitude is
// normalized into [0, 360); membership uses the half-open convention
// start <= lon < end, so a longitude exactly on a boundary belongs to the
// following gate, line 1.
//
// A NoGateFound error is unreachable against a validated wheel; returning it
// signals partition-table corruption, not bad input.
func (w *Wheel) Resolve(lon float64) (gate, line int, err error) {
	lon = normalize360(lon)

	i := sort.Search(len(w.arcs), func(i int) bool { return w.arcs[i].Start > lon }) - 1
	if i < 0 || lon >= w.arcs[i].End {
		return 0, 0, apperrors.NewNoGateFound(lon)
	}

	arc := w.arcs[i]
	offset := (lon - arc.Start) + arc.lineOffset
	line = int(math.Floor(offset/(arc.gateSpan/6.0))) + 1

	// Clamp guards against floating-point edge effects exactly at a boundary.
	if line < 1 {
		line = 1
	} else if line > 6 {
		line = 6
	}
	return arc.Gate, line, nil
}

// Gate returns the definition for a gate number, or false if out of range.
func (w *Wheel) Gate(number int) (GateDefinition, bool) {
	def, ok := w.gates[number]
	return def, ok
}

// Gates returns all 64 gate definitions ordered by gate number.
func (w *Wheel) Gates() []GateDefinition {
	out := make([]GateDefinition, 0, len(w.gates))
	for _, def := range w.gates {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Arcs returns a copy of the sorted partition arcs.
func (w *Wheel) Arcs() []Arc {
	out := make([]Arc, len(w.arcs))
	copy(out, w.arcs)
	return out
}

// normalize360 wraps a longitude into [0, 360).
func normalize360(x float64) float64 {
	x = math.Mod(x, 360.0)
	if x < 0 {
		x += 360.0
	}
	return x
}
