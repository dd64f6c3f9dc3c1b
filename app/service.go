package app

import (
	"fmt"
	"time"

	"github.com/kilianp07/crashlens/config"
	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/core/features"
	coremetrics "github.com/kilianp07/crashlens/core/metrics"
	coremon "github.com/kilianp07/crashlens/core/monitoring"
	"github.com/kilianp07/crashlens/core/report"
	"github.com/kilianp07/crashlens/core/scoring"
	"github.com/kilianp07/crashlens/infra/logger"
	"github.com/kilianp07/crashlens/infra/metrics"
	"github.com/kilianp07/crashlens/infra/monitoring"
)

// Service wires the configured scorer, metrics and monitoring together. One
// Service backs one CLI invocation.
type Service struct {
	Config     *config.Config
	Normalizer *features.Normalizer
	Analyzer   *analysis.Analyzer
	Builder    *report.Builder
	Recorder   coremetrics.Recorder
	log        logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Logging.Options())
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	rec, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	dirs, inters := cfg.Scoring.Tables()
	norm := features.NewNormalizer(dirs, inters, cfg.Scoring.MaxSpeed, logger.New("features"))
	h := scoring.NewHeuristic(cfg.Heuristic, inters)
	scorer := scoring.Select(cfg.Scoring.Backends, h, logger.New("scoring"), rec)
	an := analysis.New(norm, scorer, rec, logger.New("analysis"))

	return &Service{
		Config:     cfg,
		Normalizer: norm,
		Analyzer:   an,
		Builder:    report.NewBuilder(cfg.Report.App),
		Recorder:   rec,
		log:        logg,
	}, nil
}

// NewSession returns a fresh operator session backed by the service.
func (s *Service) NewSession() *report.Session {
	return report.NewSession(s.Analyzer, s.Builder, s.Normalizer.Directions, logger.New("session"))
}

// Close dumps the collected metrics when an output file is configured and
// flushes pending monitoring events.
func (s *Service) Close() error {
	defer coremon.Flush(2 * time.Second)
	if out := s.Config.Metrics.Output; out != "" {
		if err := metrics.DumpFile(out, metrics.Registry); err != nil {
			return fmt.Errorf("metrics dump: %w", err)
		}
		s.log.Debugf("metrics written to %s", out)
	}
	return nil
}
