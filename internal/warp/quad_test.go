package warp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
)

func TestProjectUnitSquareIdentity(t *testing.T) {
	q := ProjectUnitSquare(mathutil.Mat3Identity())
	want := UnitSquareQuad()
	for i := range q {
		assert.InDelta(t, want[i][0], q[i][0], 1e-12)
		assert.InDelta(t, want[i][1], q[i][1], 1e-12)
	}
}

func TestProjectUnitSquareSingular(t *testing.T) {
	// A singular matrix must fall back to identity, not crash.
	q := ProjectUnitSquare(mathutil.Mat3{})
	want := UnitSquareQuad()
	for i := range q {
		assert.InDelta(t, want[i][0], q[i][0], 1e-12)
		assert.InDelta(t, want[i][1], q[i][1], 1e-12)
	}
}

func TestTiltMatrixClampsInput(t *testing.T) {
	assert.Equal(t, TiltMatrix(1, -1, 20), TiltMatrix(5, -5, 20))
}

func TestTiltShrinksOneSide(t *testing.T) {
	q := ProjectUnitSquare(TiltMatrix(0.5, 0, DefaultTiltRangeDeg))
	// A pure vertical tilt leaves x symmetric but pulls one horizontal
	// edge inside the unit square.
	inside := 0
	for _, c := range q {
		if c[1] > 1e-6 && c[1] < 1-1e-6 {
			inside++
		}
	}
	assert.Equal(t, 2, inside, "one edge of the quad should sit strictly inside the unit square")
}

func TestQuadContains(t *testing.T) {
	q := UnitSquareQuad()
	assert.True(t, q.Contains(mathutil.Vec2{0.5, 0.5}))
	assert.True(t, q.Contains(mathutil.Vec2{0, 0}), "boundary counts as inside")
	assert.True(t, q.Contains(mathutil.Vec2{1, 0.5}))
	assert.False(t, q.Contains(mathutil.Vec2{1.01, 0.5}))
	assert.False(t, q.Contains(mathutil.Vec2{0.5, -0.2}))
}

func TestQuadArea(t *testing.T) {
	assert.InDelta(t, 1.0, UnitSquareQuad().Area(), 1e-12)
	assert.False(t, UnitSquareQuad().IsDegenerate())

	line := Quad{{0, 0}, {1, 0}, {1, 0}, {0, 0}}
	assert.True(t, line.IsDegenerate())
}

func TestNearestInsidePoint(t *testing.T) {
	q := UnitSquareQuad()

	in := mathutil.Vec2{0.3, 0.7}
	assert.Equal(t, in, NearestInsidePoint(in, q, 0))
	assert.Equal(t, in, NearestInsidePoint(in, q, 0.01))

	out := mathutil.Vec2{1.5, 0.5}
	got := NearestInsidePoint(out, q, 0)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 0.5, got[1], 1e-12)

	// With an inset the result is pulled off the boundary toward the
	// centroid, so it lands strictly inside.
	pulled := NearestInsidePoint(out, q, 0.01)
	assert.InDelta(t, 0.99, pulled[0], 1e-12)
	assert.InDelta(t, 0.5, pulled[1], 1e-12)
	assert.True(t, q.Contains(pulled))
}

func TestQuadCentroid(t *testing.T) {
	c := UnitSquareQuad().Centroid()
	assert.InDelta(t, 0.5, c[0], 1e-12)
	assert.InDelta(t, 0.5, c[1], 1e-12)
}
