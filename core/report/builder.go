package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/crashlens/core/model"
)

// DefaultApp is the application name stamped on reports.
const DefaultApp = "CrashLens AI"

// ErrPartyCount is returned when a report does not have two or three parties.
var ErrPartyCount = errors.New("report needs two or three parties")

// Builder assembles reports.
type Builder struct {
	App   string
	Now   func() time.Time
	NewID func() string
}

// NewBuilder returns a Builder stamping app on every report.
func NewBuilder(app string) *Builder {
	if app == "" {
		app = DefaultApp
	}
	return &Builder{App: app, Now: time.Now, NewID: func() string { return uuid.NewString() }}
}

// Build creates a report. Timestamps are truncated to seconds.
func (b *Builder) Build(acc model.AccidentContext, parties []model.Party, an model.Analysis) (model.Report, error) {
	if len(parties) < 2 || len(parties) > 3 {
		return model.Report{}, fmt.Errorf("%w: got %d", ErrPartyCount, len(parties))
	}
	ps := make([]model.Party, len(parties))
	copy(ps, parties)
	return model.Report{
		ID:          b.NewID(),
		App:         b.App,
		Accident:    acc,
		Parties:     ps,
		Analysis:    an,
		GeneratedAt: b.Now().Truncate(time.Second),
	}, nil
}

// PlaceholderDistribution is shown before any analysis has run.
var PlaceholderDistribution = model.Distribution{A: 0.33, B: 0.33, C: 0.34}

// NewAnalysis records the scored inputs next to the result.
func NewAnalysis(acc model.AccidentContext, p1, p2 model.Party, res model.Result, backend string) model.Analysis {
	return model.Analysis{
		Intersection: acc.Intersection,
		Hour:         acc.Hour,
		V1Speed:      p1.Observation.Speed,
		V1Direction:  p1.Observation.Direction,
		V2Speed:      p2.Observation.Speed,
		V2Direction:  p2.Observation.Direction,
		Probs:        res.Distribution,
		Best:         res.Best,
		Backend:      backend,
	}
}

// PlaceholderAnalysis is NewAnalysis with the placeholder distribution.
func PlaceholderAnalysis(acc model.AccidentContext, p1, p2 model.Party) model.Analysis {
	return NewAnalysis(acc, p1, p2, model.NewResult(PlaceholderDistribution), "")
}
