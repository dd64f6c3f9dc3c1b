package scenarios

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/core/factory"
	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/model"
	"github.com/kilianp07/crashlens/core/scoring"
	"github.com/kilianp07/crashlens/infra/logger"
	"github.com/kilianp07/crashlens/infra/metrics"
)

const tolerance = 1e-6

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	dirs, ok := features.DirectionTableFor(sc.Scoring.Directions)
	if !ok {
		t.Fatalf("direction table %d", sc.Scoring.Directions)
	}
	inters, ok := features.IntersectionTableFor(sc.Scoring.Intersections)
	if !ok {
		t.Fatalf("intersection table %s", sc.Scoring.Intersections)
	}
	norm := features.NewNormalizer(dirs, inters, features.DefaultMaxSpeed, logger.NopLogger{})
	h := scoring.NewHeuristic(scoring.DefaultHeuristicConstants(), inters)

	var scorer scoring.Scorer
	switch sc.Scoring.Backend {
	case "broken":
		broken := scoring.PredictorFunc(func(model.FeatureVector) ([]float64, error) {
			return nil, errors.New("backend offline")
		})
		scorer = scoring.NewFallback("broken", broken, h, logger.NopLogger{}, sink)
	default:
		conf := map[string]any{}
		if sc.Scoring.Seed != 0 {
			conf["seed"] = sc.Scoring.Seed
		}
		scorer = scoring.Select([]factory.ModuleConfig{{Type: sc.Scoring.Backend, Conf: conf}}, h, logger.NopLogger{}, sink)
	}
	an := analysis.New(norm, scorer, sink, logger.NopLogger{})

	for _, c := range sc.Cases {
		res, err := an.ScoreScenario(c.Input.ToRequest())
		if c.Expected.Error != "" {
			if c.Expected.Error != "unknown_category" || !errors.Is(err, features.ErrUnknownCategory) {
				t.Errorf("%s: expected %s, got %v", c.Name, c.Expected.Error, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.Name, err)
			continue
		}
		if !res.Valid(tolerance) {
			t.Errorf("%s: not a distribution: %+v", c.Name, res.Distribution)
		}
		if res.Best != res.Distribution.Best() {
			t.Errorf("%s: best %s disagrees with argmax %s", c.Name, res.Best, res.Distribution.Best())
		}
		if c.Expected.Best != "" && string(res.Best) != c.Expected.Best {
			t.Errorf("%s: best %s, want %s", c.Name, res.Best, c.Expected.Best)
		}
		if len(c.Expected.BestIn) > 0 && !contains(c.Expected.BestIn, string(res.Best)) {
			t.Errorf("%s: best %s, want one of %v", c.Name, res.Best, c.Expected.BestIn)
		}
		if p := c.Expected.Probs; p != nil {
			want := p.ToModel().Array()
			got := res.Array()
			for i := range want {
				if diff := got[i] - want[i]; diff > tolerance || diff < -tolerance {
					t.Errorf("%s: probs %v, want %v", c.Name, got, want)
					break
				}
			}
		}
	}

	checks := []struct {
		name string
		want int
	}{
		{"crashlens_scores_total", sc.Expected.Scores},
		{"crashlens_rejected_inputs_total", sc.Expected.Rejects},
		{"crashlens_predictor_fallbacks_total", sc.Expected.Fallbacks},
	}
	for _, ch := range checks {
		if got := counterTotal(t, reg, ch.name); got != float64(ch.want) {
			t.Errorf("%s = %v, want %d", ch.name, got, ch.want)
		}
	}
}

func counterTotal(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	mfs, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
