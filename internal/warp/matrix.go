// Package warp builds perspective-tilt matrices and solves the
// crop-containment geometry: projecting the visible image region through
// a tilt and finding the scale that keeps a crop rectangle inside it.
package warp

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

// DefaultTiltRangeDeg is the rotation angle a tilt input of ±1 maps to.
const DefaultTiltRangeDeg = 20

// TiltMatrix builds the perspective matrix for the two tilt sliders.
// vertical tilts about the X axis, horizontal about the Y axis; both are
// clamped to [-1,1] and mapped to ±maxDeg. The result is Ry · Rx.
func TiltMatrix(vertical, horizontal, maxDeg float64) mathutil.Mat3 {
	av := mathutil.Clamp(vertical, -1, 1) * mathutil.Deg2Rad(maxDeg)
	ah := mathutil.Clamp(horizontal, -1, 1) * mathutil.Deg2Rad(maxDeg)
	return mathutil.Mat3Mul(mathutil.RotY(ah), mathutil.RotX(av))
}

// FullMatrix composes the complete warp: horizontal mirror, then in-plane
// rotation (90° steps plus straighten), then the tilt pair. The in-plane
// rotation participates in the projection so straighten is part of the
// containment constraint.
func FullMatrix(vertical, horizontal, maxTiltDeg, rollDeg float64, flipH bool) mathutil.Mat3 {
	m := TiltMatrix(vertical, horizontal, maxTiltDeg)
	if rollDeg != 0 {
		m = mathutil.Mat3Mul(m, mathutil.RotZ(mathutil.Deg2Rad(rollDeg)))
	}
	if flipH {
		m = mathutil.Mat3Mul(m, mathutil.Mat3Diag(-1, 1, 1))
	}
	return m
}
