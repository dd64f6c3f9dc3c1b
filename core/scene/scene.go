// Package scene holds the map captures of one operator session: where the
// accident happened, the path each vehicle took and the collision point.
// Each session owns its Scene; nothing here is process global.
package scene

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/kilianp07/crashlens/core/features"
	"github.com/kilianp07/crashlens/core/model"
)

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6371008.8

// ErrInvalidPoint is returned for coordinates outside the valid lat/lng range.
var ErrInvalidPoint = errors.New("invalid coordinates")

// Scene is the mutable map state of a single session.
type Scene struct {
	location  *s2.LatLng
	collision *s2.LatLng
	paths     map[int][]s2.LatLng
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{paths: make(map[int][]s2.LatLng)}
}

func point(lat, lng float64) (s2.LatLng, error) {
	p := s2.LatLngFromDegrees(lat, lng)
	if !p.IsValid() || math.IsNaN(lat) || math.IsNaN(lng) {
		return s2.LatLng{}, ErrInvalidPoint
	}
	return p, nil
}

// SetLocation records the accident location.
func (s *Scene) SetLocation(lat, lng float64) error {
	p, err := point(lat, lng)
	if err != nil {
		return err
	}
	s.location = &p
	return nil
}

// Location returns the accident location if set.
func (s *Scene) Location() (s2.LatLng, bool) {
	if s.location == nil {
		return s2.LatLng{}, false
	}
	return *s.location, true
}

// SetCollision records the collision point.
func (s *Scene) SetCollision(lat, lng float64) error {
	p, err := point(lat, lng)
	if err != nil {
		return err
	}
	s.collision = &p
	return nil
}

// AddPathPoint appends a point to the path of party (0-based).
func (s *Scene) AddPathPoint(party int, lat, lng float64) error {
	p, err := point(lat, lng)
	if err != nil {
		return err
	}
	s.paths[party] = append(s.paths[party], p)
	return nil
}

// Path returns a copy of the recorded path of party.
func (s *Scene) Path(party int) []s2.LatLng {
	out := make([]s2.LatLng, len(s.paths[party]))
	copy(out, s.paths[party])
	return out
}

// ClearPath drops the path of party.
func (s *Scene) ClearPath(party int) { delete(s.paths, party) }

// Reset clears every capture.
func (s *Scene) Reset() {
	s.location = nil
	s.collision = nil
	s.paths = make(map[int][]s2.LatLng)
}

// Heading returns the initial bearing in degrees [0, 360) of the last
// segment of party's path. It needs at least two distinct points.
func (s *Scene) Heading(party int) (float64, bool) {
	path := s.paths[party]
	if len(path) < 2 {
		return 0, false
	}
	a, b := path[len(path)-2], path[len(path)-1]
	if a.ApproxEqual(b) {
		return 0, false
	}
	return bearing(a, b), true
}

// Direction snaps the heading of party to the closest entry of table.
func (s *Scene) Direction(party int, table features.DirectionTable) (model.Direction, bool) {
	h, ok := s.Heading(party)
	if !ok {
		return 0, false
	}
	return Snap(h, table)
}

// Snap returns the direction of table closest to a bearing in degrees.
func Snap(deg float64, table features.DirectionTable) (model.Direction, bool) {
	dirs := table.Directions()
	if len(dirs) == 0 {
		return 0, false
	}
	best, bestDiff := dirs[0], math.Inf(1)
	for _, d := range dirs {
		diff := angularDiff(deg, float64(d)*45)
		if diff < bestDiff {
			best, bestDiff = d, diff
		}
	}
	return best, true
}

// DistanceToCollision returns the distance in metres from the last point of
// party's path to the collision point.
func (s *Scene) DistanceToCollision(party int) (float64, bool) {
	path := s.paths[party]
	if s.collision == nil || len(path) == 0 {
		return 0, false
	}
	return distance(path[len(path)-1], *s.collision), true
}

func distance(a, b s2.LatLng) float64 {
	return a.Distance(b).Radians() * EarthRadiusMeters
}

func bearing(a, b s2.LatLng) float64 {
	lat1, lat2 := a.Lat.Radians(), b.Lat.Radians()
	dLng := (b.Lng - a.Lng).Radians()
	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	deg := s1.Angle(math.Atan2(y, x)).Degrees()
	return math.Mod(deg+360, 360)
}

func angularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
