package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/warp"
)

func assertRectInDelta(t *testing.T, want, got mathutil.Rect, tol float64) {
	t.Helper()
	assert.InDelta(t, want.Left, got.Left, tol)
	assert.InDelta(t, want.Top, got.Top, tol)
	assert.InDelta(t, want.Right, got.Right, tol)
	assert.InDelta(t, want.Bottom, got.Bottom, tol)
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(1000, 800, Options{})
	assert.Equal(t, mathutil.UnitRect(), s.CropRect())
	assert.Equal(t, mathutil.Mat3Identity(), s.WarpMatrix())
	assert.Equal(t, warp.UnitSquareQuad(), s.VisibleQuad())
}

func TestSetPerspectiveChanged(t *testing.T) {
	s := NewSession(1000, 800, Options{})
	assert.True(t, s.SetPerspective(0.5, 0))
	assert.False(t, s.SetPerspective(0.5, 0))
	// Out-of-range input clamps, so 5 equals an existing 1.
	assert.True(t, s.SetPerspective(1, 0))
	assert.False(t, s.SetPerspective(5, 0))
}

func TestPerspectiveReversibility(t *testing.T) {
	s := NewSession(1200, 900, Options{})
	start := mathutil.Rect{Left: 0.1, Top: 0.2, Right: 0.9, Bottom: 0.8}
	s.Restore(Parameters{}, start)
	startScale := s.View().Scale

	require.True(t, s.SetPerspective(0.8, 0))
	shrunk := s.CropRect()
	require.Less(t, shrunk.Width(), start.Width(), "tilt must shrink the crop")

	// Returning the slider to its starting value inside the same
	// gesture restores the baseline exactly: no ratchet.
	require.True(t, s.SetPerspective(0, 0))
	assertRectInDelta(t, start, s.CropRect(), 1e-6)
	assert.InDelta(t, startScale, s.View().Scale, 1e-6)
	s.EndPerspectiveGesture()
}

func TestGestureCommitRebaselines(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.Restore(Parameters{}, mathutil.Rect{Left: 0.1, Top: 0.1, Right: 0.9, Bottom: 0.9})

	s.SetPerspective(0.8, 0)
	committed := s.CropRect()
	s.EndPerspectiveGesture()

	// A new gesture anchors on the committed rect; undoing the tilt now
	// returns there, not to the pre-commit rect.
	s.SetPerspective(0.9, 0)
	s.SetPerspective(0.8, 0)
	assertRectInDelta(t, committed, s.CropRect(), 1e-6)
}

func TestInvalidateGestureDropsBaseline(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	start := mathutil.Rect{Left: 0.2, Top: 0.2, Right: 0.8, Bottom: 0.8}
	s.Restore(Parameters{}, start)

	s.SetPerspective(0.8, 0)
	abandoned := s.CropRect()
	s.InvalidateGesture()

	// Without the stale baseline the next change anchors on the live
	// rect.
	s.SetPerspective(0, 0)
	assertRectInDelta(t, abandoned, s.CropRect(), 1e-6)
}

func TestStraightenSharesGesture(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	start := mathutil.Rect{Left: 0.05, Top: 0.05, Right: 0.95, Bottom: 0.95}
	s.Restore(Parameters{}, start)

	require.True(t, s.SetStraighten(30))
	require.Less(t, s.CropRect().Width(), start.Width())
	require.True(t, s.SetStraighten(0))
	assertRectInDelta(t, start, s.CropRect(), 1e-6)
}

func TestCropStaysInsideQuadAfterSettle(t *testing.T) {
	rects := []mathutil.Rect{
		mathutil.UnitRect(),
		{Left: 0.1, Top: 0.2, Right: 0.9, Bottom: 0.8},
		// Corner and edge-hugging crops: at strong tilts their centers
		// leave the quad entirely and the refit must recenter first.
		{Left: 0, Top: 0, Right: 0.1, Bottom: 0.1},
		{Left: 0.9, Top: 0, Right: 1, Bottom: 0.1},
		{Left: 0, Top: 0.9, Right: 0.1, Bottom: 1},
		{Left: 0.9, Top: 0.9, Right: 1, Bottom: 1},
		{Left: 0, Top: 0.4, Right: 0.15, Bottom: 0.6},
	}
	s := NewSession(1000, 1000, Options{})
	for v := -1.0; v <= 1.0; v += 0.5 {
		for h := -1.0; h <= 1.0; h += 0.5 {
			for _, r := range rects {
				s.Restore(Parameters{}, r)
				s.SetPerspective(v, h)
				q := s.VisibleQuad()
				require.Truef(t, q.ContainsRect(s.CropRect(), 1e-5),
					"v=%v h=%v rect=%+v crop=%+v", v, h, r, s.CropRect())
				s.EndPerspectiveGesture()
			}
		}
	}
}

func TestCornerCropExtremeTiltGesture(t *testing.T) {
	// A small crop in the top-left image corner whose center falls
	// outside the visible quad at full negative tilt. The gesture refit
	// must move the crop inside rather than leave it untouched, and
	// undoing the tilt must still restore the baseline exactly.
	start := mathutil.Rect{Left: 0, Top: 0, Right: 0.1, Bottom: 0.1}
	s := NewSession(1000, 1000, Options{})
	s.Restore(Parameters{}, start)

	require.True(t, s.SetPerspective(-1, -1))
	q := s.VisibleQuad()
	require.False(t, q.Contains(start.Center()), "tilt should push the start center out of the quad")
	require.True(t, q.ContainsRect(s.CropRect(), 1e-5),
		"crop=%+v quad=%+v", s.CropRect(), q)

	require.True(t, s.SetPerspective(0, 0))
	assertRectInDelta(t, start, s.CropRect(), 1e-6)
	s.EndPerspectiveGesture()
}

func TestRestoreOutOfBoundsRectShrinksInPlace(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.Restore(Parameters{Vertical: 0.9}, mathutil.UnitRect())
	assert.True(t, s.VisibleQuad().ContainsRect(s.CropRect(), 1e-5))
}

func TestRestoreCornerRectExtremeTilt(t *testing.T) {
	// Same geometry as the gesture case but through the persistence
	// path: the recentred crop must end up strictly inside the quad, not
	// tangent to it with edges poking out.
	s := NewSession(1000, 1000, Options{})
	for _, r := range []mathutil.Rect{
		{Left: 0, Top: 0, Right: 0.1, Bottom: 0.1},
		{Left: 0.9, Top: 0.9, Right: 1, Bottom: 1},
	} {
		s.Restore(Parameters{Vertical: -1, Horizontal: -1}, r)
		require.Truef(t, s.VisibleQuad().ContainsRect(s.CropRect(), 1e-5),
			"rect=%+v crop=%+v", r, s.CropRect())
	}
}

func TestRotateRoundTrip(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	start := mathutil.Rect{Left: 0.1, Top: 0.3, Right: 0.6, Bottom: 0.9}
	s.Restore(Parameters{}, start)

	for i := 0; i < 4; i++ {
		s.RotateClockwise()
	}
	assert.Equal(t, 0, s.Parameters().RotateSteps)
	assertRectInDelta(t, start, s.CropRect(), 1e-9)
}

func TestRotateRemapsRect(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.Restore(Parameters{}, mathutil.Rect{Left: 0.1, Top: 0.3, Right: 0.6, Bottom: 0.9})

	s.RotateClockwise()
	assertRectInDelta(t, mathutil.Rect{Left: 0.1, Top: 0.1, Right: 0.7, Bottom: 0.6}, s.CropRect(), 1e-9)
}

func TestFlipRoundTrip(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	start := mathutil.Rect{Left: 0.1, Top: 0.3, Right: 0.6, Bottom: 0.9}
	s.Restore(Parameters{}, start)

	s.SetFlipHorizontal(true)
	assertRectInDelta(t, mathutil.Rect{Left: 0.4, Top: 0.3, Right: 0.9, Bottom: 0.9}, s.CropRect(), 1e-9)
	s.SetFlipHorizontal(true) // no-op
	s.SetFlipHorizontal(false)
	assertRectInDelta(t, start, s.CropRect(), 1e-9)
}

func TestCropDragMovesEdges(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.SetViewport(1000, 1000, 1)

	s.BeginCropGesture(HandleLeft)
	s.UpdateCropGesture(mathutil.Vec2{50, 0})
	s.EndCropGesture()

	r := s.CropRect()
	assert.InDelta(t, 0.05, r.Left, 1e-9)
	assert.InDelta(t, 1.0, r.Right, 1e-9)

	s.BeginCropGesture(HandleTopLeft)
	s.UpdateCropGesture(mathutil.Vec2{100, 200})
	s.EndCropGesture()

	r = s.CropRect()
	assert.InDelta(t, 0.15, r.Left, 1e-9)
	assert.InDelta(t, 0.2, r.Top, 1e-9)
}

func TestCropDragRespectsMinSize(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.SetViewport(1000, 1000, 1)
	s.Restore(Parameters{}, mathutil.Rect{Left: 0.4, Top: 0.4, Right: 0.5, Bottom: 0.5})

	s.BeginCropGesture(HandleLeft)
	s.UpdateCropGesture(mathutil.Vec2{80, 0}) // would leave 0.02 width
	s.EndCropGesture()

	assert.InDelta(t, 0.4, s.CropRect().Left, 1e-9, "move below MinCropSize is rejected")
}

func TestCropDragStopsAtBounds(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.SetViewport(1000, 1000, 1)

	s.BeginCropGesture(HandleRight)
	s.UpdateCropGesture(mathutil.Vec2{200, 0}) // would push Right past 1
	s.EndCropGesture()

	assert.InDelta(t, 1.0, s.CropRect().Right, 1e-9)
}

func TestGestureCallsOutOfOrderAreNoOps(t *testing.T) {
	s := NewSession(1000, 1000, Options{})
	s.SetViewport(1000, 1000, 1)

	s.EndCropGesture()
	s.UpdateCropGesture(mathutil.Vec2{50, 0})
	assert.Equal(t, mathutil.UnitRect(), s.CropRect())

	s.BeginCropGesture(HandleNone)
	s.UpdateCropGesture(mathutil.Vec2{50, 0})
	assert.Equal(t, mathutil.UnitRect(), s.CropRect())

	s.EndPerspectiveGesture()
}

func TestResetRestoresInitialState(t *testing.T) {
	s := NewSession(1000, 800, Options{})
	s.SetViewport(500, 500, 1)
	s.SetPerspective(0.7, -0.3)
	s.SetStraighten(12)
	s.Reset()

	assert.Equal(t, Parameters{}, s.Parameters())
	assert.Equal(t, mathutil.UnitRect(), s.CropRect())
	assert.Equal(t, mathutil.Mat3Identity(), s.WarpMatrix())
}

func TestHandleEdges(t *testing.T) {
	assert.Equal(t, edgeSet{left: true, top: true}, HandleTopLeft.edges())
	assert.Equal(t, edgeSet{right: true}, HandleRight.edges())
	assert.Equal(t, edgeSet{}, HandleNone.edges())
	assert.False(t, HandleNone.Valid())
	assert.True(t, HandleBottomLeft.Valid())
	assert.Equal(t, "bottom-left", HandleBottomLeft.String())
}
