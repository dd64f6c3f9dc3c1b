package model

import (
	"encoding/json"
	"testing"
)

func TestDistributionBest_TieBreak(t *testing.T) {
	cases := []struct {
		d    Distribution
		want Scenario
	}{
		{Distribution{A: 0.4, B: 0.4, C: 0.2}, ScenarioA},
		{Distribution{A: 0.2, B: 0.4, C: 0.4}, ScenarioB},
		{Distribution{A: 0.4, B: 0.2, C: 0.4}, ScenarioA},
		{Distribution{A: 1.0 / 3, B: 1.0 / 3, C: 1.0 / 3}, ScenarioA},
		{Distribution{A: 0.1, B: 0.2, C: 0.7}, ScenarioC},
	}
	for _, c := range cases {
		if got := c.d.Best(); got != c.want {
			t.Errorf("%+v: expected %s got %s", c.d, c.want, got)
		}
	}
}

func TestDistributionValid(t *testing.T) {
	if !(Distribution{A: 0.5, B: 0.25, C: 0.25}).Valid(1e-9) {
		t.Fatal("expected valid")
	}
	if (Distribution{A: 0.6, B: 0.6, C: -0.2}).Valid(1e-9) {
		t.Fatal("negative value must be invalid")
	}
	if (Distribution{A: 0.5, B: 0.5, C: 0.5}).Valid(1e-6) {
		t.Fatal("sum 1.5 must be invalid")
	}
}

func TestResultJSON(t *testing.T) {
	r := NewResult(Distribution{A: 0.5, B: 0.3, C: 0.2})
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["best"] != "A" || got["A"] != 0.5 || got["C"] != 0.2 {
		t.Fatalf("unexpected payload %s", data)
	}
	if r.Label() != "A (0.50)" {
		t.Fatalf("unexpected label %q", r.Label())
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"n": North, "North-East": NorthEast, "south west": SouthWest, "NW": NorthWest, " e ": East,
	} {
		got, ok := ParseDirection(in)
		if !ok || got != want {
			t.Errorf("%q: expected %s got %s (%v)", in, want, got, ok)
		}
	}
	if _, ok := ParseDirection("up"); ok {
		t.Fatal("expected failure")
	}
}
