package metrics

// MultiSink fans events out to multiple recorders.
type MultiSink struct {
	Sinks []Recorder
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Recorder) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScore forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordScore(ev ScoreEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScore(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordFallback forwards fallback events.
func (m *MultiSink) RecordFallback(ev FallbackEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFallback(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordReject forwards rejected inputs.
func (m *MultiSink) RecordReject(ev RejectEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordReject(ev); err != nil {
			return err
		}
	}
	return nil
}
