package features

import (
	"github.com/kilianp07/crashlens/core/logger"
	"github.com/kilianp07/crashlens/core/model"
)

// DefaultMaxSpeed is the form's slider bound in km/h.
const DefaultMaxSpeed = 200

// RawInput is what the form submits before any validation.
type RawInput struct {
	Speed1       any
	Speed2       any
	Dir1         string
	Dir2         string
	Hour         any
	Intersection string
}

// Normalizer encodes form inputs with a fixed pair of tables.
type Normalizer struct {
	Directions    DirectionTable
	Intersections IntersectionTable
	MaxSpeed      float64
	log           logger.Logger
}

// NewNormalizer returns a Normalizer. A nil logger disables logging of
// coerced values.
func NewNormalizer(dirs DirectionTable, inters IntersectionTable, maxSpeed float64, log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop{}
	}
	return &Normalizer{Directions: dirs, Intersections: inters, MaxSpeed: maxSpeed, log: log}
}

// Normalize encodes typed observations and accident context.
func (n *Normalizer) Normalize(v1, v2 model.VehicleObservation, ctx model.AccidentContext) (model.FeatureVector, error) {
	return n.NormalizeRaw(RawInput{
		Speed1:       v1.Speed,
		Speed2:       v2.Speed,
		Dir1:         v1.Direction,
		Dir2:         v2.Direction,
		Hour:         ctx.Hour,
		Intersection: ctx.Intersection,
	})
}

// NormalizeRaw encodes raw form values. Numeric fields never fail: bad values
// are replaced by DefaultNumeric. Categories outside the active tables return
// an *UnknownCategoryError and a zero vector.
func (n *Normalizer) NormalizeRaw(in RawInput) (model.FeatureVector, error) {
	var fv model.FeatureVector

	d1, err := n.direction("dir1", in.Dir1)
	if err != nil {
		return model.FeatureVector{}, err
	}
	d2, err := n.direction("dir2", in.Dir2)
	if err != nil {
		return model.FeatureVector{}, err
	}
	ic, err := n.intersection(in.Intersection)
	if err != nil {
		return model.FeatureVector{}, err
	}

	s1, ok := CoerceSpeed(in.Speed1, n.MaxSpeed)
	if !ok {
		n.log.Debugw("speed coerced", map[string]any{"field": "speed1", "raw": in.Speed1, "value": s1})
	}
	s2, ok := CoerceSpeed(in.Speed2, n.MaxSpeed)
	if !ok {
		n.log.Debugw("speed coerced", map[string]any{"field": "speed2", "raw": in.Speed2, "value": s2})
	}
	h, ok := CoerceHour(in.Hour)
	if !ok {
		n.log.Debugw("hour coerced", map[string]any{"raw": in.Hour, "value": h})
	}

	fv[model.IdxSpeed1] = s1
	fv[model.IdxSpeed2] = s2
	fv[model.IdxDir1] = float64(d1)
	fv[model.IdxDir2] = float64(d2)
	fv[model.IdxHour] = float64(h)
	fv[model.IdxIntersection] = float64(ic)
	return fv, nil
}

// DecodeDirections returns the directions encoded in fv.
func (n *Normalizer) DecodeDirections(fv model.FeatureVector) (model.Direction, model.Direction, bool) {
	d1, ok1 := n.Directions.Decode(int(fv[model.IdxDir1]))
	d2, ok2 := n.Directions.Decode(int(fv[model.IdxDir2]))
	return d1, d2, ok1 && ok2
}

// DecodeIntersection returns the category encoded in fv.
func (n *Normalizer) DecodeIntersection(fv model.FeatureVector) (model.IntersectionCategory, bool) {
	return n.Intersections.Decode(fv.IntersectionCode())
}

func (n *Normalizer) direction(field, raw string) (int, error) {
	d, ok := model.ParseDirection(raw)
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Value: raw, Table: n.Directions.Name}
	}
	code, ok := n.Directions.Encode(d)
	if !ok {
		return 0, &UnknownCategoryError{Field: field, Value: raw, Table: n.Directions.Name}
	}
	return code, nil
}

func (n *Normalizer) intersection(raw string) (int, error) {
	c, ok := n.Intersections.Resolve(raw)
	if !ok {
		return 0, &UnknownCategoryError{Field: "intersection", Value: raw, Table: n.Intersections.Name}
	}
	code, ok := n.Intersections.Encode(c)
	if !ok {
		return 0, &UnknownCategoryError{Field: "intersection", Value: raw, Table: n.Intersections.Name}
	}
	return code, nil
}
