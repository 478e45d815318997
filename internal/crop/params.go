// Package crop holds the interactive edit session for one photo: the
// crop rectangle, the perspective/straighten parameters, the view
// transform, and the constraint logic that keeps the crop inside the
// visible image region while the user drags sliders and handles.
package crop

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

// Parameters are the user-facing geometry controls. Vertical and
// Horizontal are tilt inputs in [-1,1]; RotateSteps counts 90° clockwise
// turns; StraightenDeg is the fine in-plane rotation.
type Parameters struct {
	Vertical      float64
	Horizontal    float64
	RotateSteps   int
	StraightenDeg float64
	FlipH         bool
}

// Clamped returns a copy with every field forced into the engine's
// accepted ranges.
func (p Parameters) Clamped(o Options) Parameters {
	p.Vertical = mathutil.Clamp(p.Vertical, -1, 1)
	p.Horizontal = mathutil.Clamp(p.Horizontal, -1, 1)
	p.StraightenDeg = mathutil.Clamp(p.StraightenDeg, -o.StraightenRangeDeg, o.StraightenRangeDeg)
	p.RotateSteps = ((p.RotateSteps % 4) + 4) % 4
	return p
}

// RollDeg is the total in-plane rotation: quarter turns plus straighten.
func (p Parameters) RollDeg() float64 {
	return float64(90*p.RotateSteps) + p.StraightenDeg
}
