package metrics

import (
	"time"

	"github.com/kilianp07/crashlens/core/model"
)

// ScoreEvent describes one completed score_scenario call.
type ScoreEvent struct {
	Backend      string
	Intersection model.IntersectionCategory
	Result       model.Result
	Duration     time.Duration
	Time         time.Time
}

// FallbackEvent records a pluggable predictor being replaced by the heuristic.
type FallbackEvent struct {
	Backend string
	Reason  string
	Time    time.Time
}

// RejectEvent records an input refused with UnknownCategory.
type RejectEvent struct {
	Field string
	Value string
	Time  time.Time
}

// Recorder records scoring activity for observability purposes.
type Recorder interface {
	RecordScore(ev ScoreEvent) error
	RecordFallback(ev FallbackEvent) error
	RecordReject(ev RejectEvent) error
}

// NopSink implements Recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScore(ScoreEvent) error       { return nil }
func (NopSink) RecordFallback(FallbackEvent) error { return nil }
func (NopSink) RecordReject(RejectEvent) error     { return nil }
