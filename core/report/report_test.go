package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/crashlens/core/analysis"
	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/model"
	"github.com/kilianp07/crashlens/core/scoring"
)

const sampleForm = `
accident:
  intersection_type: Crossroad
  hour: 14
  road_type: Street
  date: "2024-05-02"
  time: "14:10"
  location: King Fahd Road / Signal 3
parties:
  - name: Party One
    role: driver
    vehicle: Toyota Camry
    plate: ABC 123
    observation:
      speed_kmh: 60
      direction: N
  - name: Party Two
    role: Owner
    vehicle: Hyundai Elantra
    observation:
      speed_kmh: 50
      direction: N
`

func fixedBuilder() *Builder {
	b := NewBuilder("")
	b.Now = func() time.Time { return time.Date(2024, 5, 2, 14, 30, 15, 999, time.UTC) }
	b.NewID = func() string { return "report-1" }
	return b
}

func newSession(dirs features.DirectionTable) *Session {
	norm := features.NewNormalizer(dirs, features.ExtendedIntersections, features.DefaultMaxSpeed, nil)
	an := analysis.New(norm, scoring.DefaultHeuristic(), nil, nil)
	return NewSession(an, fixedBuilder(), dirs, nil)
}

func TestDecodeForm(t *testing.T) {
	f, err := DecodeForm(strings.NewReader(sampleForm))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, "Crossroad", f.Accident.Intersection)
	assert.Equal(t, model.RoleDriver, f.Parties[0].Role)
	assert.Equal(t, model.RoleOwner, f.Parties[1].Role)
	assert.Equal(t, 60.0, f.Parties[0].Observation.Speed)

	_, err = DecodeForm(strings.NewReader("accident:\n  bogus: 1\n"))
	assert.Error(t, err)
}

func TestDecodeForm_CoercesNumerics(t *testing.T) {
	in := strings.Replace(sampleForm, "hour: 14", "hour: noon", 1)
	in = strings.Replace(in, "speed_kmh: 60", "speed_kmh: fast", 1)
	in = strings.Replace(in, "speed_kmh: 50", "speed_kmh: -20", 1)

	f, err := DecodeForm(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Accident.Hour)
	assert.Equal(t, 0.0, f.Parties[0].Observation.Speed)
	assert.Equal(t, 0.0, f.Parties[1].Observation.Speed)
	assert.Equal(t, []string{
		"accident.hour",
		"parties[0].observation.speed_kmh",
		"parties[1].observation.speed_kmh",
	}, f.Coerced)

	s := newSession(features.Compass4)
	rep, err := s.Analyze(f)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, rep.Analysis.Probs.Sum(), 1e-6)
}

func TestDecodeForm_KeepsReadableNumerics(t *testing.T) {
	in := strings.Replace(sampleForm, "hour: 14", `hour: "7.9"`, 1)
	in = strings.Replace(in, "speed_kmh: 60", "speed_kmh: 260", 1)

	f, err := DecodeForm(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 7, f.Accident.Hour)
	assert.Equal(t, 260.0, f.Parties[0].Observation.Speed)
	assert.Empty(t, f.Coerced)
}

func TestBuilder_PartyCount(t *testing.T) {
	b := fixedBuilder()
	_, err := b.Build(model.AccidentContext{}, []model.Party{{}}, model.Analysis{})
	assert.True(t, errors.Is(err, ErrPartyCount))
	_, err = b.Build(model.AccidentContext{}, make([]model.Party, 4), model.Analysis{})
	assert.True(t, errors.Is(err, ErrPartyCount))

	rep, err := b.Build(model.AccidentContext{}, make([]model.Party, 3), model.Analysis{})
	require.NoError(t, err)
	assert.Equal(t, DefaultApp, rep.App)
	assert.Equal(t, "report-1", rep.ID)
	assert.Equal(t, time.Date(2024, 5, 2, 14, 30, 15, 0, time.UTC), rep.GeneratedAt)
}

func TestSession_Analyze(t *testing.T) {
	f, err := DecodeForm(strings.NewReader(sampleForm))
	require.NoError(t, err)
	s := newSession(features.Compass4)

	_, ok := s.Last()
	require.False(t, ok)

	rep, err := s.Analyze(f)
	require.NoError(t, err)
	assert.Equal(t, model.ScenarioA, rep.Analysis.Best)
	assert.Equal(t, "heuristic", rep.Analysis.Backend)
	assert.InDelta(t, 1.0, rep.Analysis.Probs.Sum(), 1e-6)

	last, ok := s.Last()
	require.True(t, ok)
	if diff := cmp.Diff(rep, last); diff != "" {
		t.Fatalf("last report mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_CurrentPlaceholder(t *testing.T) {
	f, err := DecodeForm(strings.NewReader(sampleForm))
	require.NoError(t, err)
	s := newSession(features.Compass4)

	rep, err := s.Current(f)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderDistribution, rep.Analysis.Probs)
	assert.Equal(t, model.ScenarioC, rep.Analysis.Best)

	again, err := s.Current(withHour(f, 3))
	require.NoError(t, err)
	assert.Equal(t, rep.ID, again.ID)
}

func withHour(f Form, h int) Form {
	f.Accident.Hour = h
	return f
}

func TestSession_DirectionFromScene(t *testing.T) {
	f, err := DecodeForm(strings.NewReader(sampleForm))
	require.NoError(t, err)
	f.Parties[0].Observation.Direction = ""
	f.Parties[1].Observation.Direction = ""

	s := newSession(features.Compass4)
	require.NoError(t, s.LoadScene(&SceneInput{Paths: [][]Point{
		{{Lat: 24.70, Lng: 46.67}, {Lat: 24.70, Lng: 46.68}}, // east
		{{Lat: 24.71, Lng: 46.67}, {Lat: 24.70, Lng: 46.67}}, // south
	}}))

	rep, err := s.Analyze(f)
	require.NoError(t, err)
	assert.Equal(t, "E", rep.Analysis.V1Direction)
	assert.Equal(t, "S", rep.Analysis.V2Direction)
	assert.Equal(t, "", f.Parties[0].Observation.Direction, "form must not be mutated")
}

func TestSession_UnknownCategoryKeepsState(t *testing.T) {
	f, err := DecodeForm(strings.NewReader(sampleForm))
	require.NoError(t, err)
	s := newSession(features.Compass4)
	f.Parties[0].Observation.Direction = "NE"

	_, err = s.Analyze(f)
	require.True(t, errors.Is(err, features.ErrUnknownCategory))
	_, ok := s.Last()
	assert.False(t, ok)
}
