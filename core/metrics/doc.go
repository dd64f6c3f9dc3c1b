// Package metrics defines the recorder interface used by the scoring path.
// Sinks like the Prometheus sink in infra/metrics record scored analyses,
// predictor fallbacks and rejected inputs, and can be combined with
// NewMultiSink. NewSink returns a MultiSink automatically when multiple sinks
// are configured.
package metrics
