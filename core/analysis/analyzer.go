package analysis

import (
	"errors"
	"time"

	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/logger"
	"github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/core/model"
	"github.com/kilianp07/crashlens/core/scoring"
)

// Request is the raw input of one score_scenario call. Speeds and hour are
// taken as entered; they are coerced, never rejected.
type Request struct {
	Speed1       any    `json:"speed1"`
	Speed2       any    `json:"speed2"`
	Dir1         string `json:"dir1"`
	Dir2         string `json:"dir2"`
	Hour         any    `json:"hour"`
	Intersection string `json:"intersection"`
}

// Outcome is a scored request with the vector and backend that produced it.
type Outcome struct {
	Result  model.Result
	Vector  model.FeatureVector
	Backend string
}

// Analyzer runs the feature normalizer and the active scorer. It holds no
// mutable state, so one Analyzer can serve concurrent callers as long as the
// scorer and recorder can.
type Analyzer struct {
	norm   *features.Normalizer
	scorer scoring.Scorer
	rec    metrics.Recorder
	log    logger.Logger
	now    func() time.Time
}

// New returns an Analyzer. A nil recorder or logger disables metrics or logs.
func New(norm *features.Normalizer, scorer scoring.Scorer, rec metrics.Recorder, log logger.Logger) *Analyzer {
	if rec == nil {
		rec = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Analyzer{norm: norm, scorer: scorer, rec: rec, log: log, now: time.Now}
}

// Backend returns the name of the configured scorer.
func (a *Analyzer) Backend() string { return scoring.NameOf(a.scorer) }

// ScoreScenario scores one request. The only error is an
// *features.UnknownCategoryError for directions or intersections outside the
// active tables.
func (a *Analyzer) ScoreScenario(req Request) (model.Result, error) {
	out, err := a.Evaluate(req)
	if err != nil {
		return model.Result{}, err
	}
	return out.Result, nil
}

// Evaluate is ScoreScenario returning the feature vector and backend too.
func (a *Analyzer) Evaluate(req Request) (Outcome, error) {
	start := a.now()
	fv, err := a.norm.NormalizeRaw(features.RawInput{
		Speed1:       req.Speed1,
		Speed2:       req.Speed2,
		Dir1:         req.Dir1,
		Dir2:         req.Dir2,
		Hour:         req.Hour,
		Intersection: req.Intersection,
	})
	if err != nil {
		a.reject(err)
		return Outcome{}, err
	}

	var (
		dist    model.Distribution
		backend string
	)
	if ss, ok := a.scorer.(scoring.SourceScorer); ok {
		dist, backend = ss.ScoreWithSource(fv)
	} else {
		dist, backend = a.scorer.Score(fv), scoring.NameOf(a.scorer)
	}
	res := model.NewResult(dist)

	inter, _ := a.norm.DecodeIntersection(fv)
	ev := metrics.ScoreEvent{
		Backend:      backend,
		Intersection: inter,
		Result:       res,
		Duration:     a.now().Sub(start),
		Time:         start,
	}
	if err := a.rec.RecordScore(ev); err != nil {
		a.log.Errorf("record score: %v", err)
	}
	a.log.Debugw("scenario scored", map[string]any{
		"backend": backend,
		"vector":  fv.Slice(),
		"A":       res.A,
		"B":       res.B,
		"C":       res.C,
		"best":    string(res.Best),
	})
	return Outcome{Result: res, Vector: fv, Backend: backend}, nil
}

// Analyze scores the first two parties' observations within an accident
// context.
func (a *Analyzer) Analyze(ctx model.AccidentContext, p1, p2 model.Party) (Outcome, error) {
	return a.Evaluate(Request{
		Speed1:       p1.Observation.Speed,
		Speed2:       p2.Observation.Speed,
		Dir1:         p1.Observation.Direction,
		Dir2:         p2.Observation.Direction,
		Hour:         ctx.Hour,
		Intersection: ctx.Intersection,
	})
}

func (a *Analyzer) reject(err error) {
	var uc *features.UnknownCategoryError
	if !errors.As(err, &uc) {
		return
	}
	a.log.Warnf("rejected input: %v", err)
	if rerr := a.rec.RecordReject(metrics.RejectEvent{Field: uc.Field, Value: uc.Value, Time: a.now()}); rerr != nil {
		a.log.Errorf("record reject: %v", rerr)
	}
}
