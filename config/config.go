package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/crashlens/core/metrics"
	"github.com/kilianp07/crashlens/core/scoring"
)

type Config struct {
	Scoring   ScoringConfig              `json:"scoring"`
	Heuristic scoring.HeuristicConstants `json:"heuristic"`
	Logging   LoggingConfig              `json:"logging"`
	Metrics   metrics.Config             `json:"metrics"`
	Sentry    SentryConfig               `json:"sentry"`
	Report    ReportConfig               `json:"report"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Heuristic: scoring.DefaultHeuristicConstants()}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration from path, then applies K_ environment
// overrides. An empty path loads only the environment on top of the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides: K_SCORING__MAX_SPEED sets scoring.max_speed.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Config{Heuristic: scoring.DefaultHeuristicConstants()}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Scoring.SetDefaults()
	c.Logging.SetDefaults()
	c.Report.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	return nil
}
