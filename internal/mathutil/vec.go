package mathutil

import "math"

// Vec2 is a 2-component vector (value type, stack-allocated).
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross returns the z-component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Vec3 is a 3-component vector used for homogeneous 2D points.
type Vec3 [3]float64
