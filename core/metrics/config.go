package metrics

import "github.com/kilianp07/crashlens/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Output is an optional file receiving a text exposition dump of the
	// collected metrics when the command exits.
	Output string `json:"output"`
}
