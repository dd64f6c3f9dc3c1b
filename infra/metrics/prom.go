package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/crashlens/core/metrics"
)

// PromSink records scoring events in Prometheus metrics.
type PromSink struct {
	scores    *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	rejects   *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewPromSink registers scoring metrics on the package Registry.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(Registry)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the package Registry.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = Registry
	}
	scores := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crashlens_scores_total",
		Help: "Total number of scored scenarios",
	}, []string{"backend", "best", "intersection"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crashlens_predictor_fallbacks_total",
		Help: "Predictor calls answered by the heuristic instead",
	}, []string{"backend", "reason"})
	rejects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crashlens_rejected_inputs_total",
		Help: "Inputs refused with an unknown category",
	}, []string{"field"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crashlens_score_duration_seconds",
		Help:    "Time spent normalizing and scoring one request",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"backend"})

	var err error
	if scores, err = register(reg, scores); err != nil {
		return nil, err
	}
	if fallbacks, err = register(reg, fallbacks); err != nil {
		return nil, err
	}
	if rejects, err = register(reg, rejects); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	return &PromSink{scores: scores, fallbacks: fallbacks, rejects: rejects, latency: latency}, nil
}

// register returns the collector already registered under the same
// descriptor when there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordScore counts the result and observes its duration.
func (s *PromSink) RecordScore(ev coremetrics.ScoreEvent) error {
	s.scores.WithLabelValues(ev.Backend, string(ev.Result.Best), ev.Intersection.String()).Inc()
	s.latency.WithLabelValues(ev.Backend).Observe(ev.Duration.Seconds())
	return nil
}

// RecordFallback counts a heuristic substitution.
func (s *PromSink) RecordFallback(ev coremetrics.FallbackEvent) error {
	s.fallbacks.WithLabelValues(ev.Backend, ev.Reason).Inc()
	return nil
}

// RecordReject counts a refused input.
func (s *PromSink) RecordReject(ev coremetrics.RejectEvent) error {
	s.rejects.WithLabelValues(ev.Field).Inc()
	return nil
}
