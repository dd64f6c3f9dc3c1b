package model

import (
	"fmt"
	"math"
)

// Scenario is a fault attribution outcome.
type Scenario string

const (
	ScenarioA Scenario = "A" // fault mostly on party 1
	ScenarioB Scenario = "B" // fault mostly on party 2
	ScenarioC Scenario = "C" // shared fault
)

// Scenarios returns the labels in enumeration order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioA, ScenarioB, ScenarioC}
}

// Description returns a human readable explanation of the label.
func (s Scenario) Description() string {
	switch s {
	case ScenarioA:
		return "fault mostly on party 1"
	case ScenarioB:
		return "fault mostly on party 2"
	case ScenarioC:
		return "shared fault"
	default:
		return "unknown"
	}
}

// Distribution is a probability over the three scenarios.
type Distribution struct {
	A float64 `json:"A"`
	B float64 `json:"B"`
	C float64 `json:"C"`
}

// DistributionOf builds a Distribution from values ordered A, B, C.
func DistributionOf(p [3]float64) Distribution {
	return Distribution{A: p[0], B: p[1], C: p[2]}
}

// Array returns the probabilities ordered A, B, C.
func (d Distribution) Array() [3]float64 { return [3]float64{d.A, d.B, d.C} }

// Sum returns A+B+C.
func (d Distribution) Sum() float64 { return d.A + d.B + d.C }

// Get returns the probability of the given label.
func (d Distribution) Get(s Scenario) float64 {
	switch s {
	case ScenarioA:
		return d.A
	case ScenarioB:
		return d.B
	case ScenarioC:
		return d.C
	default:
		return 0
	}
}

// Best returns the most likely scenario. Exact ties resolve to the label that
// comes first in enumeration order.
func (d Distribution) Best() Scenario {
	best := ScenarioA
	for _, s := range Scenarios()[1:] {
		if d.Get(s) > d.Get(best) {
			best = s
		}
	}
	return best
}

// Valid reports whether every value is finite and non-negative and the sum is
// 1 within tol.
func (d Distribution) Valid(tol float64) bool {
	for _, v := range d.Array() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return math.Abs(d.Sum()-1) <= tol
}

// Result is the record handed to renderers.
type Result struct {
	Distribution
	Best Scenario `json:"best"`
}

// NewResult derives the best label from d.
func NewResult(d Distribution) Result {
	return Result{Distribution: d, Best: d.Best()}
}

// Label formats the best scenario with its probability, e.g. "A (0.41)".
func (r Result) Label() string {
	return fmt.Sprintf("%s (%.2f)", r.Best, r.Get(r.Best))
}
