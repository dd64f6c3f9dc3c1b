package model

import "strings"

// Direction is a compass heading. Deployments expose either the four
// cardinal points or all eight.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// String returns the abbreviated compass name.
func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection accepts abbreviations ("NE") and full names ("north-east",
// "North East"). The boolean is false for anything else.
func ParseDirection(s string) (Direction, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", " ", "", "_", "").Replace(key)
	switch key {
	case "N", "NORTH":
		return North, true
	case "NE", "NORTHEAST":
		return NorthEast, true
	case "E", "EAST":
		return East, true
	case "SE", "SOUTHEAST":
		return SouthEast, true
	case "S", "SOUTH":
		return South, true
	case "SW", "SOUTHWEST":
		return SouthWest, true
	case "W", "WEST":
		return West, true
	case "NW", "NORTHWEST":
		return NorthWest, true
	}
	return 0, false
}

// VehicleObservation is what the scorer knows about one party's vehicle.
type VehicleObservation struct {
	Speed     float64 `json:"speed_kmh" yaml:"speed_kmh"` // km/h
	Direction string  `json:"direction" yaml:"direction"`
}

// Party holds the identity fields of a person involved in the accident. They
// are carried by the report only; the scorer reads Observation.
type Party struct {
	Name        string             `json:"name" yaml:"name"`
	ID          string             `json:"id" yaml:"id"`
	Phone       string             `json:"phone" yaml:"phone"`
	Role        Role               `json:"role" yaml:"role"`
	Vehicle     string             `json:"vehicle" yaml:"vehicle"`
	Plate       string             `json:"plate" yaml:"plate"`
	Insurance   string             `json:"insurance" yaml:"insurance"`
	DamageNotes string             `json:"damage_notes" yaml:"damage_notes"`
	Statement   string             `json:"statement" yaml:"statement"`
	Observation VehicleObservation `json:"observation" yaml:"observation"`
}
