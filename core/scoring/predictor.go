package scoring

import (
	"fmt"
	"math"

	"github.com/kilianp07/crashlens/core/model"
)

// Predictor is a pluggable scoring backend returning raw probabilities ordered
// A, B, C. Results are validated and renormalized by Fallback.
type Predictor interface {
	Predict(fv model.FeatureVector) ([]float64, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(model.FeatureVector) ([]float64, error)

// Predict implements Predictor.
func (f PredictorFunc) Predict(fv model.FeatureVector) ([]float64, error) { return f(fv) }

// validatePrediction checks arity and that every value is a finite,
// non-negative number.
func validatePrediction(p []float64) ([3]float64, error) {
	if len(p) != OutputSize {
		return [3]float64{}, fmt.Errorf("%w: got %d values, want %d", ErrMalformedPrediction, len(p), OutputSize)
	}
	var out [3]float64
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return [3]float64{}, fmt.Errorf("%w: value %d is not a number", ErrMalformedPrediction, i)
		}
		if v < 0 {
			return [3]float64{}, fmt.Errorf("%w: value %d is negative", ErrMalformedPrediction, i)
		}
		out[i] = v
	}
	return out, nil
}
