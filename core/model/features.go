package model

// FeatureVectorLen is the number of features consumed by every scorer.
const FeatureVectorLen = 6

// Feature indexes. The order is part of the scoring contract and never changes.
const (
	IdxSpeed1 = iota
	IdxSpeed2
	IdxDir1
	IdxDir2
	IdxHour
	IdxIntersection
)

// FeatureVector is the fixed-order numeric encoding of one accident:
// [speed_1, speed_2, direction_1_code, direction_2_code, hour, intersection_code].
type FeatureVector [FeatureVectorLen]float64

// Speeds returns both vehicle speeds.
func (f FeatureVector) Speeds() (float64, float64) {
	return f[IdxSpeed1], f[IdxSpeed2]
}

// Hour returns the hour of day feature as an integer.
func (f FeatureVector) Hour() int { return int(f[IdxHour]) }

// IntersectionCode returns the encoded intersection category.
func (f FeatureVector) IntersectionCode() int { return int(f[IdxIntersection]) }

// Slice returns a copy of the vector as a slice.
func (f FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureVectorLen)
	copy(out, f[:])
	return out
}
