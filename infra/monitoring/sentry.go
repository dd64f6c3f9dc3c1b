package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/crashlens/config"
	coremon "github.com/kilianp07/crashlens/core/monitoring"
)

// NewSentryMonitor initializes Sentry using the provided configuration and
// returns a Monitor implementation. Without a DSN the Nop monitor is used.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if !cfg.Enabled() {
		return coremon.NopMonitor{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
		Release:          cfg.Release,
		AttachStacktrace: true,
		BeforeSend:       scrub,
	})
	if err != nil {
		return nil, err
	}
	return &sentryMonitor{hub: sentry.CurrentHub()}, nil
}

// scrub drops host and user data. Reports carry personal details of the
// parties and none of it may leave the session.
func scrub(ev *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	ev.ServerName = ""
	ev.User = sentry.User{}
	ev.Request = nil
	ev.Extra = nil
	return ev
}

type sentryMonitor struct {
	hub *sentry.Hub
}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		if tags["severity"] == "soft" {
			scope.SetLevel(sentry.LevelWarning)
		}
		s.hub.CaptureException(err)
	})
}

func (s *sentryMonitor) CapturePanic(value any) { s.hub.Recover(value) }

func (s *sentryMonitor) Flush(timeout time.Duration) { s.hub.Flush(timeout) }
