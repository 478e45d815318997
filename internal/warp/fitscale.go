package warp

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

const (
	// fitEps guards ray parameters and scale denominators.
	fitEps = 1e-6

	// DefaultMaxFitScale bounds the shrink factor so a degenerate quad
	// cannot collapse the crop to nothing.
	DefaultMaxFitScale = 50
)

// FitScale computes the minimum uniform scale S ≥ 1 such that shrinking
// r by 1/S about its own center puts all four corners inside q.
//
// For each corner a ray is cast from the rect center through the corner
// and intersected with the quad boundary. A hit at parameter t < 1 means
// the corner crosses the boundary before reaching its position, so it
// must be pulled in by 1/t. The answer is the maximum over corners,
// clamped to [1, maxScale]. One pass, no iteration.
func FitScale(r Rect, q Quad, maxScale float64) float64 {
	c := r.Center()
	if !q.Contains(c) {
		// The ray construction is only sound with the center inside
		// the quad: every ray then exits the boundary exactly once,
		// and a miss means the corner is inside. With the center
		// outside, no scale about it can restore containment, so
		// degrade to the bound; callers recenter first.
		if maxScale >= 1 {
			return maxScale
		}
		return 1
	}
	s := 1.0
	for _, corner := range r.Corners() {
		d := corner.Sub(c)
		if d.Len() < fitEps {
			// Degenerate ray: corner coincides with center.
			continue
		}
		t, ok := rayExit(c, d, q)
		if !ok || t >= 1 {
			// Corner already inside the quad.
			continue
		}
		if t < fitEps {
			t = fitEps
		}
		if 1/t > s {
			s = 1 / t
		}
	}
	if maxScale >= 1 && s > maxScale {
		s = maxScale
	}
	return s
}

// Rect aliases the shared rect type so callers of the solver read
// naturally.
type Rect = mathutil.Rect

// rayExit intersects the ray origin + t·dir (t > 0) with the quad's four
// edges and returns the nearest positive hit parameter.
func rayExit(origin, dir mathutil.Vec2, q Quad) (float64, bool) {
	best := 0.0
	found := false
	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		e := b.Sub(a)
		denom := dir.Cross(e)
		if denom > -1e-12 && denom < 1e-12 {
			// Ray parallel to this edge.
			continue
		}
		ao := a.Sub(origin)
		t := ao.Cross(e) / denom
		u := ao.Cross(dir) / denom
		if t <= fitEps || u < -containTol || u > 1+containTol {
			continue
		}
		if !found || t < best {
			best = t
			found = true
		}
	}
	return best, found
}

// NearestInsidePoint returns p unchanged when it lies inside the quad,
// otherwise the closest point on the quad boundary pulled inset toward
// the quad centroid. A point exactly on the boundary discards its own
// edge during the ray cast in FitScale, so callers that shrink around
// the returned point pass a positive inset.
func NearestInsidePoint(p mathutil.Vec2, q Quad, inset float64) mathutil.Vec2 {
	if q.Contains(p) {
		return p
	}
	best := p
	bestDist := -1.0
	for i := 0; i < 4; i++ {
		cand := nearestOnSegment(p, q[i], q[(i+1)%4])
		d := cand.Sub(p).Len()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = cand
		}
	}
	if inset > 0 {
		d := q.Centroid().Sub(best)
		if l := d.Len(); l > 1e-12 {
			if inset > l/2 {
				inset = l / 2
			}
			best = best.Add(d.Scale(inset / l))
		}
	}
	return best
}

func nearestOnSegment(p, a, b mathutil.Vec2) mathutil.Vec2 {
	e := b.Sub(a)
	len2 := e.Dot(e)
	if len2 < 1e-18 {
		return a
	}
	t := mathutil.Clamp(p.Sub(a).Dot(e)/len2, 0, 1)
	return a.Add(e.Scale(t))
}
