package mathutil

import "math"

// DivEps is the smallest magnitude allowed for a perspective-divide
// denominator.
const DivEps = 1e-6

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
