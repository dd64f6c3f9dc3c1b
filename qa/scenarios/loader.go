package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/core/model"
)

// InputDef is one score_scenario request as entered in the form.
type InputDef struct {
	Speed1       any    `yaml:"speed1"`
	Speed2       any    `yaml:"speed2"`
	Dir1         string `yaml:"dir1"`
	Dir2         string `yaml:"dir2"`
	Hour         any    `yaml:"hour"`
	Intersection string `yaml:"intersection"`
}

func (in InputDef) ToRequest() analysis.Request {
	return analysis.Request{
		Speed1:       in.Speed1,
		Speed2:       in.Speed2,
		Dir1:         in.Dir1,
		Dir2:         in.Dir2,
		Hour:         in.Hour,
		Intersection: in.Intersection,
	}
}

// ProbsDef is an expected distribution.
type ProbsDef struct {
	A float64 `yaml:"A"`
	B float64 `yaml:"B"`
	C float64 `yaml:"C"`
}

func (p ProbsDef) ToModel() model.Distribution {
	return model.Distribution{A: p.A, B: p.B, C: p.C}
}

// CaseExpected lists what a case must produce. Empty fields are not checked.
type CaseExpected struct {
	Best   string    `yaml:"best,omitempty"`
	BestIn []string  `yaml:"best_in,omitempty"`
	Probs  *ProbsDef `yaml:"probs,omitempty"`
	// Error is "unknown_category" when the input must be refused.
	Error string `yaml:"error,omitempty"`
}

type CaseDef struct {
	Name     string       `yaml:"name"`
	Input    InputDef     `yaml:"input"`
	Expected CaseExpected `yaml:"expected"`
}

// ScoringDef selects the tables and backend. Backend "broken" is a
// predictor that always fails, to exercise the heuristic fallback.
type ScoringDef struct {
	Directions    int    `yaml:"directions"`
	Intersections string `yaml:"intersections"`
	Backend       string `yaml:"backend"`
	Seed          uint64 `yaml:"seed,omitempty"`
}

type Expected struct {
	Scores    int `yaml:"scores"`
	Rejects   int `yaml:"rejects"`
	Fallbacks int `yaml:"fallbacks"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Scoring     ScoringDef `yaml:"scoring"`
	Cases       []CaseDef  `yaml:"cases"`
	Expected    Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Scoring.Directions == 0 {
		sc.Scoring.Directions = 8
	}
	if sc.Scoring.Intersections == "" {
		sc.Scoring.Intersections = "extended"
	}
	if sc.Scoring.Backend == "" {
		sc.Scoring.Backend = "heuristic"
	}
	return &sc, nil
}
