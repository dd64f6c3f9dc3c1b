package metrics

import (
	coremetrics "github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/infra/logger"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Recorder, error) {
		return NewPromSink()
	})
	_ = coremetrics.RegisterSink("log", func(map[string]any) (coremetrics.Recorder, error) {
		return NewLogSink(logger.New("metrics")), nil
	})
}
