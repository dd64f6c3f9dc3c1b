package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/crashlens/core/logger"
	"github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/core/model"
)

// Fallback scores with a pluggable predictor and answers with the heuristic
// whenever the predictor is missing, returns an error, panics or produces a
// malformed result.
type Fallback struct {
	backend   string
	primary   Predictor
	heuristic *Heuristic
	log       logger.Logger
	rec       metrics.Recorder
	now       func() time.Time
}

// NewFallback wraps primary. A nil heuristic uses DefaultHeuristic; nil log
// and rec disable logging and metrics.
func NewFallback(backend string, primary Predictor, h *Heuristic, log logger.Logger, rec metrics.Recorder) *Fallback {
	if h == nil {
		h = DefaultHeuristic()
	}
	if log == nil {
		log = logger.Nop{}
	}
	if rec == nil {
		rec = metrics.NopSink{}
	}
	return &Fallback{backend: backend, primary: primary, heuristic: h, log: log, rec: rec, now: time.Now}
}

// Name implements Named.
func (f *Fallback) Name() string { return f.backend }

// Score implements Scorer.
func (f *Fallback) Score(fv model.FeatureVector) model.Distribution {
	d, _ := f.ScoreWithSource(fv)
	return d
}

// ScoreWithSource implements SourceScorer. The second value is the backend
// name, or "heuristic" when the fallback answered.
func (f *Fallback) ScoreWithSource(fv model.FeatureVector) (model.Distribution, string) {
	p, err := f.predict(fv)
	if err == nil {
		return model.DistributionOf(Normalize(p)), f.backend
	}
	f.log.Warnf("predictor %s failed, using heuristic: %v", f.backend, err)
	if rerr := f.rec.RecordFallback(metrics.FallbackEvent{Backend: f.backend, Reason: reason(err), Time: f.now()}); rerr != nil {
		f.log.Errorf("record fallback: %v", rerr)
	}
	return f.heuristic.Score(fv), f.heuristic.Name()
}

func (f *Fallback) predict(fv model.FeatureVector) (p [3]float64, err error) {
	if f.primary == nil {
		return p, &PredictorError{Backend: f.backend, Err: ErrPredictorUnavailable}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &PredictorError{Backend: f.backend, Err: fmt.Errorf("%w: panic: %v", ErrPredictorUnavailable, r)}
		}
	}()
	raw, perr := f.primary.Predict(fv)
	if perr != nil {
		return p, &PredictorError{Backend: f.backend, Err: fmt.Errorf("%w: %w", ErrPredictorUnavailable, perr)}
	}
	p, verr := validatePrediction(raw)
	if verr != nil {
		return p, &PredictorError{Backend: f.backend, Err: verr}
	}
	return p, nil
}

func reason(err error) string {
	if errors.Is(err, ErrMalformedPrediction) {
		return "malformed"
	}
	return "unavailable"
}
