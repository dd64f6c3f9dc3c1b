package model

import "strings"

// IntersectionCategory is the coarse road topology where the accident happened.
type IntersectionCategory int

const (
	Crossroad IntersectionCategory = iota
	Roundabout
	TJunction
	HighwayMerge
	ParkingLowSpeed
	OtherIntersection
)

// String returns the display name shown by the form.
func (c IntersectionCategory) String() string {
	switch c {
	case Crossroad:
		return "Crossroad"
	case Roundabout:
		return "Roundabout"
	case TJunction:
		return "T-Junction"
	case HighwayMerge:
		return "Highway Merge"
	case ParkingLowSpeed:
		return "Parking / Low Speed"
	case OtherIntersection:
		return "Other"
	default:
		return "unknown"
	}
}

// IntersectionCategories lists every category in enumeration order.
func IntersectionCategories() []IntersectionCategory {
	return []IntersectionCategory{Crossroad, Roundabout, TJunction, HighwayMerge, ParkingLowSpeed, OtherIntersection}
}

// AccidentContext holds the accident facts that are not tied to a party.
// Intersection is kept as entered; the feature normalizer resolves it against
// the active encoding table.
type AccidentContext struct {
	Intersection string `json:"intersection_type" yaml:"intersection_type"`
	Hour         int    `json:"hour" yaml:"hour"`
	RoadType     string `json:"road_type" yaml:"road_type"`
	Date         string `json:"date,omitempty" yaml:"date"`
	Time         string `json:"time,omitempty" yaml:"time"`
	Location     string `json:"location,omitempty" yaml:"location"`
	Notes        string `json:"notes,omitempty" yaml:"notes"`
}

// IsNight reports whether the hour falls in the night window used for scoring.
func IsNight(hour int) bool {
	return hour <= 5 || hour >= 22
}

// Role is the part a person played in the accident.
type Role string

const (
	RoleDriver  Role = "Driver"
	RoleOwner   Role = "Owner"
	RoleWitness Role = "Witness"
)

// ParseRole returns the role matching s case-insensitively, defaulting to
// RoleDriver like the form does.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return RoleOwner
	case "witness":
		return RoleWitness
	default:
		return RoleDriver
	}
}
