package warp

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

// Quad is an ordered quadrilateral in texture space, the images of the
// unit-square corners (0,0), (1,0), (1,1), (0,1).
type Quad [4]mathutil.Vec2

// containTol absorbs floating error when testing points against edges.
const containTol = 1e-9

// UnitSquareQuad is the quad of the identity warp.
func UnitSquareQuad() Quad {
	return Quad{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

// ProjectUnitSquare maps the unit square through the inverse of m,
// yielding the texture-space region that stays visible under the warp.
// Each corner goes to centered NDC, through inverse(m), and back through
// a guarded perspective divide.
func ProjectUnitSquare(m mathutil.Mat3) Quad {
	fwd := m.Inverse()
	var q Quad
	for i, c := range UnitSquareQuad() {
		ndc := mathutil.Vec2{2*c[0] - 1, 2*c[1] - 1}
		p := fwd.ProjectPoint(ndc)
		q[i] = mathutil.Vec2{(p[0] + 1) / 2, (p[1] + 1) / 2}
	}
	return q
}

// Contains reports whether p lies inside (or on the boundary of) the
// quad. The quad is convex within the bounded tilt range; the test checks
// that p sits on a consistent side of every edge.
func (q Quad) Contains(p mathutil.Vec2) bool {
	pos, neg := false, false
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		cr := b.Sub(a).Cross(p.Sub(a))
		if cr > containTol {
			pos = true
		} else if cr < -containTol {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// ContainsRect reports whether every corner of r, shrunk toward its
// center by tol, lies inside the quad.
func (q Quad) ContainsRect(r mathutil.Rect, tol float64) bool {
	if tol != 0 {
		r = r.ScaledAbout(r.Center(), 1-tol)
	}
	for _, c := range r.Corners() {
		if !q.Contains(c) {
			return false
		}
	}
	return true
}

// Centroid returns the corner average, an interior point for any
// convex quad.
func (q Quad) Centroid() mathutil.Vec2 {
	return mathutil.Vec2{
		(q[0][0] + q[1][0] + q[2][0] + q[3][0]) / 4,
		(q[0][1] + q[1][1] + q[2][1] + q[3][1]) / 4,
	}
}

// Area returns the (unsigned) polygon area via the shoelace formula.
func (q Quad) Area() float64 {
	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += q[i].Cross(q[(i+1)%4])
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// IsDegenerate reports a near-zero-area quad, only reachable at the
// extremes of the allowed tilt and straighten ranges combined.
func (q Quad) IsDegenerate() bool {
	return q.Area() < 1e-9
}
