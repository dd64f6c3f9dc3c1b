package metrics

import (
	coremetrics "github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/infra/logger"
)

// LogSink writes every event as a structured debug log line.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a LogSink writing through log.
func NewLogSink(log logger.Logger) *LogSink {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &LogSink{log: log}
}

func (s *LogSink) RecordScore(ev coremetrics.ScoreEvent) error {
	s.log.Debugw("score", map[string]any{
		"backend":      ev.Backend,
		"intersection": ev.Intersection.String(),
		"best":         string(ev.Result.Best),
		"a":            ev.Result.A,
		"b":            ev.Result.B,
		"c":            ev.Result.C,
		"duration":     ev.Duration.String(),
	})
	return nil
}

func (s *LogSink) RecordFallback(ev coremetrics.FallbackEvent) error {
	s.log.Debugw("fallback", map[string]any{"backend": ev.Backend, "reason": ev.Reason})
	return nil
}

func (s *LogSink) RecordReject(ev coremetrics.RejectEvent) error {
	s.log.Debugw("reject", map[string]any{"field": ev.Field, "value": ev.Value})
	return nil
}
