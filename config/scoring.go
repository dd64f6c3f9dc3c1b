package config

import (
	"fmt"

	"github.com/kilianp07/crashlens/core/factory"
	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/report"
)

// ScoringConfig selects the encoding tables and the scoring backends.
type ScoringConfig struct {
	// Directions is the size of the compass table: 4 or 8.
	Directions int `json:"directions"`
	// Intersections names the category table: "basic" or "extended".
	Intersections string  `json:"intersections"`
	MaxSpeed      float64 `json:"max_speed"`
	// Backends are probed in order; the heuristic is always the fallback.
	Backends []factory.ModuleConfig `json:"backends"`
}

// SetDefaults applies sane defaults.
func (c *ScoringConfig) SetDefaults() {
	if c.Directions == 0 {
		c.Directions = 8
	}
	if c.Intersections == "" {
		c.Intersections = "extended"
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = features.DefaultMaxSpeed
	}
	if len(c.Backends) == 0 {
		c.Backends = []factory.ModuleConfig{{Type: "network"}}
	}
}

// Validate checks that the tables exist.
func (c ScoringConfig) Validate() error {
	if _, ok := features.DirectionTableFor(c.Directions); !ok {
		return fmt.Errorf("unsupported direction table size %d", c.Directions)
	}
	if _, ok := features.IntersectionTableFor(c.Intersections); !ok {
		return fmt.Errorf("unknown intersection table %s", c.Intersections)
	}
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive")
	}
	for i, b := range c.Backends {
		if b.Type == "" {
			return fmt.Errorf("backend %d: type is required", i)
		}
	}
	return nil
}

// Tables returns the encoding tables. Validate must have passed.
func (c ScoringConfig) Tables() (features.DirectionTable, features.IntersectionTable) {
	d, _ := features.DirectionTableFor(c.Directions)
	i, _ := features.IntersectionTableFor(c.Intersections)
	return d, i
}

// ReportConfig holds report presentation settings.
type ReportConfig struct {
	App string `json:"app"`
}

// SetDefaults applies sane defaults.
func (c *ReportConfig) SetDefaults() {
	if c.App == "" {
		c.App = report.DefaultApp
	}
}
