package features

import (
	"sort"
	"strings"

	"github.com/kilianp07/crashlens/core/model"
)

// DirectionTable maps compass directions to feature codes.
type DirectionTable struct {
	Name  string
	codes map[model.Direction]int
}

// Compass4 is used by deployments exposing N, E, S, W.
var Compass4 = DirectionTable{Name: "compass4", codes: map[model.Direction]int{
	model.North: 0,
	model.East:  1,
	model.South: 2,
	model.West:  3,
}}

// Compass8 is used by deployments exposing all eight points.
var Compass8 = DirectionTable{Name: "compass8", codes: map[model.Direction]int{
	model.North:     0,
	model.NorthEast: 1,
	model.East:      2,
	model.SouthEast: 3,
	model.South:     4,
	model.SouthWest: 5,
	model.West:      6,
	model.NorthWest: 7,
}}

// DirectionTableFor returns the table for a 4 or 8 direction deployment.
func DirectionTableFor(n int) (DirectionTable, bool) {
	switch n {
	case 4:
		return Compass4, true
	case 8:
		return Compass8, true
	}
	return DirectionTable{}, false
}

// Encode returns the code for d.
func (t DirectionTable) Encode(d model.Direction) (int, bool) {
	c, ok := t.codes[d]
	return c, ok
}

// Decode is the inverse of Encode.
func (t DirectionTable) Decode(code int) (model.Direction, bool) {
	for d, c := range t.codes {
		if c == code {
			return d, true
		}
	}
	return 0, false
}

// Directions lists the table entries ordered by code.
func (t DirectionTable) Directions() []model.Direction {
	out := make([]model.Direction, 0, len(t.codes))
	for d := range t.codes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return t.codes[out[i]] < t.codes[out[j]] })
	return out
}

// Kind groups intersection categories by how the heuristic treats them.
type Kind int

const (
	KindNeutral Kind = iota
	KindRoundabout
	KindCrossroad
)

func (k Kind) String() string {
	switch k {
	case KindRoundabout:
		return "roundabout"
	case KindCrossroad:
		return "crossroad"
	default:
		return "neutral"
	}
}

var (
	roundaboutKeywords = []string{"roundabout", "circle", "rotary"}
	crossroadKeywords  = []string{"crossroad", "intersection", "cross"}
)

// KindOf collapses a free-form category name by keyword. Roundabout keywords
// are checked first.
func KindOf(name string) Kind {
	n := strings.ToLower(name)
	for _, kw := range roundaboutKeywords {
		if strings.Contains(n, kw) {
			return KindRoundabout
		}
	}
	for _, kw := range crossroadKeywords {
		if strings.Contains(n, kw) {
			return KindCrossroad
		}
	}
	return KindNeutral
}

// IntersectionTable maps intersection categories to feature codes.
type IntersectionTable struct {
	Name  string
	codes map[model.IntersectionCategory]int
}

// BasicIntersections only knows the two base categories; other names are
// collapsed onto them by keyword.
var BasicIntersections = IntersectionTable{Name: "basic", codes: map[model.IntersectionCategory]int{
	model.Crossroad:  0,
	model.Roundabout: 1,
}}

// ExtendedIntersections carries every category the form offers.
var ExtendedIntersections = IntersectionTable{Name: "extended", codes: map[model.IntersectionCategory]int{
	model.Crossroad:         0,
	model.Roundabout:        1,
	model.TJunction:         2,
	model.HighwayMerge:      3,
	model.ParkingLowSpeed:   4,
	model.OtherIntersection: 5,
}}

// IntersectionTableFor returns the named table ("basic" or "extended").
func IntersectionTableFor(name string) (IntersectionTable, bool) {
	switch strings.ToLower(name) {
	case "basic":
		return BasicIntersections, true
	case "extended":
		return ExtendedIntersections, true
	}
	return IntersectionTable{}, false
}

// Encode returns the code for c.
func (t IntersectionTable) Encode(c model.IntersectionCategory) (int, bool) {
	code, ok := t.codes[c]
	return code, ok
}

// Decode is the inverse of Encode.
func (t IntersectionTable) Decode(code int) (model.IntersectionCategory, bool) {
	for c, v := range t.codes {
		if v == code {
			return c, true
		}
	}
	return 0, false
}

// Categories lists the table entries ordered by code.
func (t IntersectionTable) Categories() []model.IntersectionCategory {
	out := make([]model.IntersectionCategory, 0, len(t.codes))
	for c := range t.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return t.codes[out[i]] < t.codes[out[j]] })
	return out
}

// Resolve finds the category for a name. Exact (case and punctuation
// insensitive) matches win; otherwise the name is collapsed by keyword onto
// Roundabout or Crossroad.
func (t IntersectionTable) Resolve(name string) (model.IntersectionCategory, bool) {
	key := compact(name)
	if key == "" {
		return 0, false
	}
	for c := range t.codes {
		if compact(c.String()) == key {
			return c, true
		}
	}
	switch KindOf(name) {
	case KindRoundabout:
		return model.Roundabout, true
	case KindCrossroad:
		return model.Crossroad, true
	}
	return 0, false
}

// KindOfCode classifies an encoded category.
func (t IntersectionTable) KindOfCode(code int) Kind {
	c, ok := t.Decode(code)
	if !ok {
		return KindNeutral
	}
	return KindOf(c.String())
}

func compact(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
