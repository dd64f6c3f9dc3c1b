package scoring

import (
	"github.com/kilianp07/crashlens/core/factory"
	"github.com/kilianp07/crashlens/core/logger"
	"github.com/kilianp07/crashlens/core/metrics"
)

var backendRegistry = factory.NewRegistry[Predictor]()

// RegisterBackend adds a predictor factory identified by name.
func RegisterBackend(name string, f factory.Factory[Predictor]) error {
	return backendRegistry.Register(name, f)
}

// Backends lists the selectable backend names. "heuristic" is not in the
// registry: Select answers it with the configured Heuristic.
func Backends() []string {
	return append([]string{"heuristic"}, backendRegistry.Names()...)
}

// NetworkConfig selects the network weights. WeightsFile wins over Seed.
type NetworkConfig struct {
	Seed        uint64 `json:"seed"`
	WeightsFile string `json:"weights_file"`
}

// Weights resolves the configured weights.
func (c NetworkConfig) Weights() (Weights, error) {
	if c.WeightsFile != "" {
		return LoadWeights(c.WeightsFile)
	}
	seed := c.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	return SeededWeights(seed), nil
}

func init() {
	_ = RegisterBackend("network", func(conf map[string]any) (Predictor, error) {
		var c NetworkConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		w, err := c.Weights()
		if err != nil {
			return nil, err
		}
		return NewNetwork(w)
	})
}

// Select probes the candidate backends in order and returns a scorer for the
// first one that can be built. Non-heuristic backends are wrapped in
// Fallback. When no candidate builds, h is returned directly.
func Select(cands []factory.ModuleConfig, h *Heuristic, log logger.Logger, rec metrics.Recorder) Scorer {
	if h == nil {
		h = DefaultHeuristic()
	}
	if log == nil {
		log = logger.Nop{}
	}
	for _, c := range cands {
		if c.Type == h.Name() {
			log.Infof("scoring backend: %s", h.Name())
			return h
		}
		p, err := backendRegistry.Create(c)
		if err != nil {
			log.Warnf("scoring backend %s unavailable: %v", c.Type, err)
			continue
		}
		log.Infof("scoring backend: %s (fallback %s)", c.Type, h.Name())
		return NewFallback(c.Type, p, h, log, rec)
	}
	log.Infof("scoring backend: %s", h.Name())
	return h
}
