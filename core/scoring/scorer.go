package scoring

import "github.com/kilianp07/crashlens/core/model"

// Scorer maps a feature vector to a scenario distribution. Implementations
// never fail: any internal problem is resolved into a valid distribution.
type Scorer interface {
	Score(fv model.FeatureVector) model.Distribution
}

// Named is implemented by scorers and predictors that report a backend name.
type Named interface {
	Name() string
}

// SourceScorer reports which backend produced each distribution. Fallback
// implements it so callers can tell a primary result from a fallback one.
type SourceScorer interface {
	Scorer
	ScoreWithSource(fv model.FeatureVector) (model.Distribution, string)
}

// NameOf returns the backend name of s, or "custom".
func NameOf(s any) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "custom"
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(model.FeatureVector) model.Distribution

// Score implements Scorer.
func (f ScorerFunc) Score(fv model.FeatureVector) model.Distribution { return f(fv) }
