package features

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultNumeric replaces speeds and hours that cannot be read as numbers.
const DefaultNumeric = 0.0

// ToFloat reads v as a finite number. Strings are parsed after trimming;
// nil, NaN, Inf and anything else report false.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		p, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceSpeed returns a speed in [0, max]. Unreadable and negative values
// become DefaultNumeric; a non-positive max disables the upper clamp.
func CoerceSpeed(v any, max float64) (float64, bool) {
	f, ok := ToFloat(v)
	if !ok {
		return DefaultNumeric, false
	}
	if f < 0 {
		return DefaultNumeric, false
	}
	if max > 0 && f > max {
		return max, false
	}
	return f, true
}

// CoerceHour returns an hour in [0, 23]. Fractions are truncated; anything
// unreadable or out of range becomes DefaultNumeric.
func CoerceHour(v any) (int, bool) {
	f, ok := ToFloat(v)
	if !ok {
		return int(DefaultNumeric), false
	}
	h := int(f)
	if h < 0 || h > 23 {
		return int(DefaultNumeric), false
	}
	return h, true
}
