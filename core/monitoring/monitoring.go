package monitoring

import (
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	CapturePanic(value any)
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any)                          {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	get().CaptureException(err, tags)
}

// CaptureSoft records a failure the session survives, such as a report that
// could not be rendered.
func CaptureSoft(err error, stage string) {
	if err == nil {
		return
	}
	get().CaptureException(err, map[string]string{"severity": "soft", "stage": stage})
}

// CapturePanic records a value obtained from recover(). recover itself must
// be called by the deferred function, so callers do that and pass the value.
func CapturePanic(value any) {
	if value == nil {
		return
	}
	get().CapturePanic(value)
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	get().Flush(d)
}
