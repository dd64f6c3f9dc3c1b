package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/crashlens/core/factory"
	coremetrics "github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/core/model"
)

func TestPromSink_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	res := model.NewResult(model.Distribution{A: 0.5, B: 0.3, C: 0.2})
	require.NoError(t, sink.RecordScore(coremetrics.ScoreEvent{
		Backend: "network", Intersection: model.Crossroad, Result: res, Duration: time.Millisecond,
	}))
	require.NoError(t, sink.RecordScore(coremetrics.ScoreEvent{
		Backend: "network", Intersection: model.Crossroad, Result: res, Duration: time.Millisecond,
	}))
	require.NoError(t, sink.RecordFallback(coremetrics.FallbackEvent{Backend: "network", Reason: "malformed"}))
	require.NoError(t, sink.RecordReject(coremetrics.RejectEvent{Field: "dir1", Value: "Up"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.scores.WithLabelValues("network", "A", "Crossroad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.fallbacks.WithLabelValues("network", "malformed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.rejects.WithLabelValues("dir1")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.latency))
}

func TestPromSink_AlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	s1, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	s2, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	assert.Same(t, s1.scores, s2.scores)
}

func TestDump(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordReject(coremetrics.RejectEvent{Field: "intersection"}))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, reg))
	assert.Contains(t, buf.String(), `crashlens_rejected_inputs_total{field="intersection"} 1`)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, DumpFile(path, reg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
}

func TestFactory_Prometheus(t *testing.T) {
	rec, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "prometheus"}, {Type: "log"}})
	require.NoError(t, err)
	assert.NoError(t, rec.RecordFallback(coremetrics.FallbackEvent{Backend: "network", Reason: "unavailable"}))
}
