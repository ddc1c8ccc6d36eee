package api

import (
	"math"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/internal/chart"
)

// ChartRequest is the body of POST /api/v1/charts. Latitude, longitude and
// timezone are optional overrides that skip the geocoding and timezone
// lookups.
type ChartRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`

	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Timezone  string   `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// ChartInput echoes the resolved input back to the caller.
type ChartInput struct {
	Date        string  `json:"date"`
	TimeLocal   string  `json:"time_local"`
	Place       string  `json:"place"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	DatetimeUTC string  `json:"datetime_utc"`
	JulianDayUT float64 `json:"julian_day_ut"`
}

// DesignTime carries the solved design moment.
type DesignTime struct {
	JulianDayUT float64 `json:"julian_day_ut"`
}

// ActivationDTO is one planetary activation in a chart response.
type ActivationDTO struct {
	Planet       string  `json:"planet"`
	LongitudeDeg float64 `json:"longitude_deg"`
	Gate         int     `json:"gate"`
	Line         int     `json:"line"`
	GateLine     string  `json:"gate_line"`
}

// ChartResponse is the body of a successful chart computation.
type ChartResponse struct {
	Input       ChartInput      `json:"input"`
	DesignTime  DesignTime      `json:"design_time"`
	Personality []ActivationDTO `json:"personality"`
	Design      []ActivationDTO `json:"design"`
}

// GateInfo describes one gate of the wheel for GET /api/v1/gates.
type GateInfo struct {
	Gate        int     `json:"gate"`
	Center      string  `json:"center"`
	Complements []int   `json:"complements"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	StartDeg    float64 `json:"start_deg"`
	EndDeg      float64 `json:"end_deg"`
}

// GatesResponse is the body of GET /api/v1/gates.
type GatesResponse struct {
	Gates []GateInfo `json:"gates"`
}

// NewGatesResponse converts the wheel's gate definitions into the wire shape.
func NewGatesResponse(gates []astro.GateDefinition) GatesResponse {
	out := GatesResponse{Gates: make([]GateInfo, 0, len(gates))}
	for _, g := range gates {
		out.Gates = append(out.Gates, GateInfo{
			Gate:        g.Number,
			Center:      string(g.Center),
			Complements: g.Complements,
			Start:       g.Start.String(),
			End:         g.End.String(),
			StartDeg:    round6(g.StartDeg),
			EndDeg:      round6(g.EndDeg),
		})
	}
	return out
}

// NewChartResponse converts a raw bodygraph into the wire shape. Longitudes
// are rounded to six decimal places.
func NewChartResponse(graph *chart.RawBodyGraph) ChartResponse {
	return ChartResponse{
		Input: ChartInput{
			Date:        graph.BirthInfo.Date,
			TimeLocal:   graph.BirthInfo.LocalTime.Format("15:04"),
			Place:       graph.Location.Place,
			Latitude:    graph.Location.Latitude,
			Longitude:   graph.Location.Longitude,
			Timezone:    graph.Location.Timezone,
			DatetimeUTC: graph.UTC,
			JulianDayUT: graph.BirthJD,
		},
		DesignTime:  DesignTime{JulianDayUT: graph.DesignJD},
		Personality: newActivations(graph.Personality),
		Design:      newActivations(graph.Design),
	}
}

func newActivations(activations []astro.Activation) []ActivationDTO {
	out := make([]ActivationDTO, 0, len(activations))
	for _, a := range activations {
		out = append(out, ActivationDTO{
			Planet:       a.Body.String(),
			LongitudeDeg: round6(a.Longitude),
			Gate:         a.Gate,
			Line:         a.Line,
			GateLine:     a.GateLine(),
		})
	}
	return out
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
