package scoring

import (
	"math"

	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/model"
)

// Adjustment is added to the raw A, B and C scores when a rule fires.
type Adjustment struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// HeuristicConstants are the hand-tuned weights of the closed-form scorer.
// They are configuration and are applied verbatim.
type HeuristicConstants struct {
	Base       Adjustment `json:"base"`
	Roundabout Adjustment `json:"roundabout"`
	Crossroad  Adjustment `json:"crossroad"`

	HighSpeed          Adjustment `json:"high_speed"`
	HighSpeedThreshold float64    `json:"high_speed_threshold"` // mean km/h

	SpeedGap          Adjustment `json:"speed_gap"`
	SpeedGapThreshold float64    `json:"speed_gap_threshold"` // km/h

	Night      Adjustment `json:"night"`
	NightStart int        `json:"night_start"` // hour >= NightStart is night
	NightEnd   int        `json:"night_end"`   // hour <= NightEnd is night
}

// DefaultHeuristicConstants returns the documented constants.
func DefaultHeuristicConstants() HeuristicConstants {
	return HeuristicConstants{
		Base:               Adjustment{A: 0.33, B: 0.33, C: 0.34},
		Roundabout:         Adjustment{A: -0.03, B: -0.07, C: 0.10},
		Crossroad:          Adjustment{A: 0.08, B: 0.02, C: -0.10},
		HighSpeed:          Adjustment{A: -0.03, B: 0.08, C: -0.05},
		HighSpeedThreshold: 90,
		SpeedGap:           Adjustment{A: 0.06, B: -0.02, C: -0.04},
		SpeedGapThreshold:  40,
		Night:              Adjustment{A: -0.02, B: 0.04, C: -0.02},
		NightStart:         22,
		NightEnd:           5,
	}
}

// Heuristic is the closed-form scorer. It is always available and is the
// fallback for every other backend.
type Heuristic struct {
	consts HeuristicConstants
	table  features.IntersectionTable
}

// NewHeuristic returns a heuristic that classifies intersection codes with
// table.
func NewHeuristic(c HeuristicConstants, table features.IntersectionTable) *Heuristic {
	return &Heuristic{consts: c, table: table}
}

// DefaultHeuristic uses the documented constants and the extended table.
func DefaultHeuristic() *Heuristic {
	return NewHeuristic(DefaultHeuristicConstants(), features.ExtendedIntersections)
}

// Name implements Named.
func (h *Heuristic) Name() string { return "heuristic" }

// Constants returns the constants in use.
func (h *Heuristic) Constants() HeuristicConstants { return h.consts }

// Raw returns the adjusted scores before normalization.
func (h *Heuristic) Raw(fv model.FeatureVector) [3]float64 {
	c := h.consts
	s1, s2 := fv.Speeds()
	s1, s2 = math.Max(s1, 0), math.Max(s2, 0)
	gap := math.Abs(s1 - s2)
	mean := (s1 + s2) / 2

	p := [3]float64{c.Base.A, c.Base.B, c.Base.C}
	add := func(adj Adjustment) {
		p[0] += adj.A
		p[1] += adj.B
		p[2] += adj.C
	}

	switch h.table.KindOfCode(fv.IntersectionCode()) {
	case features.KindRoundabout:
		add(c.Roundabout)
	case features.KindCrossroad:
		add(c.Crossroad)
	}
	if mean >= c.HighSpeedThreshold {
		add(c.HighSpeed)
	}
	if gap >= c.SpeedGapThreshold {
		add(c.SpeedGap)
	}
	if hour := fv.Hour(); hour <= c.NightEnd || hour >= c.NightStart {
		add(c.Night)
	}
	return p
}

// Score implements Scorer. Raw scores pushed below zero by tuned constants
// are clamped so the result stays a distribution.
func (h *Heuristic) Score(fv model.FeatureVector) model.Distribution {
	p := h.Raw(fv)
	for i := range p {
		p[i] = math.Max(p[i], 0)
	}
	return model.DistributionOf(Normalize(p))
}

// Predict implements Predictor so the heuristic can be registered as a
// backend.
func (h *Heuristic) Predict(fv model.FeatureVector) ([]float64, error) {
	d := h.Score(fv).Array()
	return d[:], nil
}
