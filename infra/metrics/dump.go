package metrics

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Registry collects the metrics of sinks built from configuration. The CLI
// is one-shot, so metrics are dumped to a file on exit instead of served.
var Registry = prometheus.NewRegistry()

// Dump writes every metric family gathered from g in the text exposition
// format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// DumpFile writes the exposition to path, replacing any previous content.
func DumpFile(path string, g prometheus.Gatherer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Dump(f, g); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
