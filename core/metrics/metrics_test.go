package metrics

import (
	"errors"
	"testing"

	"github.com/kilianp07/crashlens/core/factory"
)

type recordSink struct {
	count int
	err   error
}

func (r *recordSink) RecordScore(ScoreEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordFallback(FallbackEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordReject(RejectEvent) error {
	r.count++
	return r.err
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordScore(ScoreEvent{}); err != nil {
		t.Fatalf("record score: %v", err)
	}
	if err := m.RecordFallback(FallbackEvent{}); err != nil {
		t.Fatalf("record fallback: %v", err)
	}
	if err := m.RecordReject(RejectEvent{}); err != nil {
		t.Fatalf("record reject: %v", err)
	}
	if s1.count != 3 || s2.count != 3 {
		t.Fatalf("events not forwarded: %d %d", s1.count, s2.count)
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	if err := NewMultiSink(s1, s2).RecordScore(ScoreEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.count != 0 {
		t.Fatalf("second sink should not be called")
	}
}

func TestNewSink(t *testing.T) {
	s, err := NewSink(nil)
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
	s, err = NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	if err != nil {
		t.Fatalf("two sinks: %v", err)
	}
	if ms, ok := s.(*MultiSink); !ok || len(ms.Sinks) != 2 {
		t.Fatalf("expected MultiSink with two sinks, got %T", s)
	}
	if _, err := NewSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
