package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrPredictorUnavailable marks a pluggable predictor that is absent,
	// panicked or returned an error.
	ErrPredictorUnavailable = errors.New("predictor unavailable")
	// ErrMalformedPrediction marks a predictor result with the wrong arity or
	// values that are not finite non-negative numbers.
	ErrMalformedPrediction = errors.New("malformed prediction")
	// ErrWeightShape is returned when loaded weights do not match the network.
	ErrWeightShape = errors.New("weight shape mismatch")
)

// PredictorError records which backend failed and why.
type PredictorError struct {
	Backend string
	Err     error
}

func (e *PredictorError) Error() string {
	return fmt.Sprintf("predictor %s: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PredictorError) Unwrap() error { return e.Err }
