package features

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/crashlens/core/model"
)

func TestNormalizeRaw_FixedOrder(t *testing.T) {
	n := NewNormalizer(Compass8, ExtendedIntersections, DefaultMaxSpeed, nil)
	fv, err := n.NormalizeRaw(RawInput{
		Speed1: 60, Speed2: "50", Dir1: "NE", Dir2: "west", Hour: 14, Intersection: "Roundabout",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FeatureVector{60, 50, 1, 6, 14, 1}, fv)
}

func TestNormalizeRaw_Coercion(t *testing.T) {
	n := NewNormalizer(Compass4, BasicIntersections, 180, nil)
	cases := []struct {
		name   string
		s1, s2 any
		hour   any
		want   [3]float64
	}{
		{"garbage", "fast", nil, "noon", [3]float64{0, 0, 0}},
		{"negative", -20, -1.5, -3, [3]float64{0, 0, 0}},
		{"nan and inf", math.NaN(), math.Inf(1), 24, [3]float64{0, 0, 0}},
		{"clamped", 250, json.Number("90.5"), 23.7, [3]float64{180, 90.5, 23}},
		{"strings", " 42 ", "0", "7", [3]float64{42, 0, 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fv, err := n.NormalizeRaw(RawInput{Speed1: c.s1, Speed2: c.s2, Dir1: "N", Dir2: "S", Hour: c.hour, Intersection: "Crossroad"})
			require.NoError(t, err)
			assert.Equal(t, c.want[0], fv[model.IdxSpeed1])
			assert.Equal(t, c.want[1], fv[model.IdxSpeed2])
			assert.Equal(t, c.want[2], fv[model.IdxHour])
		})
	}
}

func TestNormalizeRaw_UnknownCategory(t *testing.T) {
	n := NewNormalizer(Compass4, BasicIntersections, DefaultMaxSpeed, nil)
	cases := []struct {
		name  string
		in    RawInput
		field string
	}{
		{"intersection", RawInput{Dir1: "N", Dir2: "N", Intersection: "Spaghetti Junction"}, "intersection"},
		{"extended name under basic table", RawInput{Dir1: "N", Dir2: "N", Intersection: "T-Junction"}, "intersection"},
		{"empty intersection", RawInput{Dir1: "N", Dir2: "N", Intersection: ""}, "intersection"},
		{"diagonal under compass4", RawInput{Dir1: "NE", Dir2: "N", Intersection: "Crossroad"}, "dir1"},
		{"bad direction", RawInput{Dir1: "N", Dir2: "up", Intersection: "Crossroad"}, "dir2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fv, err := n.NormalizeRaw(c.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownCategory))
			var uc *UnknownCategoryError
			require.True(t, errors.As(err, &uc))
			assert.Equal(t, c.field, uc.Field)
			assert.Equal(t, model.FeatureVector{}, fv)
		})
	}
}

func TestNormalize_Typed(t *testing.T) {
	n := NewNormalizer(Compass8, ExtendedIntersections, DefaultMaxSpeed, nil)
	fv, err := n.Normalize(
		model.VehicleObservation{Speed: 30, Direction: "S"},
		model.VehicleObservation{Speed: 45, Direction: "E"},
		model.AccidentContext{Intersection: "Parking / Low Speed", Hour: 8},
	)
	require.NoError(t, err)
	assert.Equal(t, model.FeatureVector{30, 45, 4, 2, 8, 4}, fv)

	d1, d2, ok := n.DecodeDirections(fv)
	require.True(t, ok)
	assert.Equal(t, model.South, d1)
	assert.Equal(t, model.East, d2)
	c, ok := n.DecodeIntersection(fv)
	require.True(t, ok)
	assert.Equal(t, model.ParkingLowSpeed, c)
}
