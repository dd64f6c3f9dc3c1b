package scoring

import "math"

// Uniform is returned when raw scores cannot form a distribution.
var Uniform = [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

// Normalize divides each score by the total. A total that is not positive,
// or any non-finite score, yields Uniform.
func Normalize(p [3]float64) [3]float64 {
	var sum float64
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Uniform
		}
		sum += v
	}
	if sum <= 0 {
		return Uniform
	}
	return [3]float64{p[0] / sum, p[1] / sum, p[2] / sum}
}

// softmax computes exp(v_i)/sum(exp(v_j)) after shifting by the maximum so
// large logits cannot overflow.
func softmax(v []float64) []float64 {
	out := make([]float64, len(v))
	if len(v) == 0 {
		return out
	}
	peak := v[0]
	for _, x := range v[1:] {
		if x > peak {
			peak = x
		}
	}
	var sum float64
	for i, x := range v {
		out[i] = math.Exp(x - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func relu(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
