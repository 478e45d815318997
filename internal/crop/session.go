package crop

import (
	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/warp"
)

// Session is the crop/perspective edit state for one photo. It is owned
// by a single editing session and never accessed concurrently; every
// method is synchronous and allocation-free on the hot paths.
type Session struct {
	imageW, imageH float64
	opts           Options

	params Parameters
	rect   mathutil.Rect
	view   ViewTransform
	vp     viewport

	matrix  mathutil.Mat3
	inverse mathutil.Mat3
	quad    warp.Quad

	// baseline anchors a perspective gesture: all fit scales during the
	// gesture are computed against it, so returning the sliders to their
	// starting values restores the starting rect exactly.
	baseline *baselineState
	drag     *dragState
}

type baselineState struct {
	rect      mathutil.Rect
	viewScale float64
}

type dragState struct {
	handle    Handle
	lastDelta mathutil.Vec2
}

// NewSession creates a session for an image of the given pixel
// dimensions with a full-frame crop and an identity warp.
func NewSession(imageW, imageH int, opts Options) *Session {
	opts.Resolve()
	if imageW < 1 {
		imageW = 1
	}
	if imageH < 1 {
		imageH = 1
	}
	s := &Session{
		imageW: float64(imageW),
		imageH: float64(imageH),
		opts:   opts,
		rect:   mathutil.UnitRect(),
		view: ViewTransform{
			Scale:  1,
			Center: mathutil.Vec2{float64(imageW) / 2, float64(imageH) / 2},
		},
	}
	s.recomputeWarp()
	return s
}

// SetViewport updates the device-pixel viewport dimensions and refits
// the view so the whole image is visible and centered.
func (s *Session) SetViewport(w, h int, pixelRatio float64) {
	if w < 1 || h < 1 {
		return
	}
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.vp = viewport{w: float64(w), h: float64(h), pixelRatio: pixelRatio}
	fit := s.vp.w / s.imageW
	if fh := s.vp.h / s.imageH; fh < fit {
		fit = fh
	}
	s.view.Scale = mathutil.Clamp(fit, s.opts.MinViewScale, s.opts.MaxViewScale)
	s.view.Center = mathutil.Vec2{s.imageW / 2, s.imageH / 2}
}

// SetPerspective updates the tilt sliders. The first change after a
// release opens a gesture and captures the baseline; every subsequent
// change refits the crop against that baseline. Returns false when the
// clamped values equal the current ones.
func (s *Session) SetPerspective(vertical, horizontal float64) bool {
	vertical = mathutil.Clamp(vertical, -1, 1)
	horizontal = mathutil.Clamp(horizontal, -1, 1)
	if vertical == s.params.Vertical && horizontal == s.params.Horizontal {
		return false
	}
	s.ensureBaseline()
	s.params.Vertical = vertical
	s.params.Horizontal = horizontal
	s.applyGestureFit()
	return true
}

// SetStraighten updates the straighten angle; it shares the perspective
// gesture since both feed the same warp matrix.
func (s *Session) SetStraighten(deg float64) bool {
	deg = mathutil.Clamp(deg, -s.opts.StraightenRangeDeg, s.opts.StraightenRangeDeg)
	if deg == s.params.StraightenDeg {
		return false
	}
	s.ensureBaseline()
	s.params.StraightenDeg = deg
	s.applyGestureFit()
	return true
}

// EndPerspectiveGesture commits the current gesture and discards the
// baseline. No-op when no gesture is open.
func (s *Session) EndPerspectiveGesture() {
	s.baseline = nil
}

// InvalidateGesture abandons any open perspective or crop gesture, e.g.
// when pointer capture is lost. Stale baselines must not survive past
// the gesture they anchor.
func (s *Session) InvalidateGesture() {
	s.baseline = nil
	s.drag = nil
}

func (s *Session) ensureBaseline() {
	if s.baseline == nil {
		s.baseline = &baselineState{rect: s.rect, viewScale: s.view.Scale}
	}
}

// applyGestureFit recomputes the warp and refits the crop relative to
// the gesture baseline: the live rect is always the baseline rect shrunk
// by the current fit scale, never the already-shrunk rect shrunk again.
// A crop near a texture corner can have its center pushed out of the
// quad entirely at strong tilt; shrinking about an outside center can
// never restore containment, so the baseline is recentred first. The
// shift depends only on the slider values, so it vanishes when they
// return to their gesture-start values and the baseline rect comes back
// exactly. The view zooms by the fit scale so the crop keeps its
// apparent size.
func (s *Session) applyGestureFit() {
	s.recomputeWarp()
	base := s.baseline.rect
	if c := base.Center(); !s.quad.Contains(c) {
		nc := warp.NearestInsidePoint(c, s.quad, s.containInset(base))
		base = base.Translate(nc.Sub(c))
	}
	sc := warp.FitScale(base, s.quad, s.opts.MaxFitScale)
	s.rect = base.ScaledAbout(base.Center(), 1/sc).Clamp01()
	s.view.Scale = mathutil.Clamp(s.baseline.viewScale*sc, s.opts.MinViewScale, s.opts.MaxViewScale)
}

// containInset is how deep inside the quad a recentred crop center must
// land: far enough from every edge that a fit scale within MaxFitScale
// can still pull all four corners inside.
func (s *Session) containInset(r mathutil.Rect) float64 {
	halfDiag := mathutil.Vec2{r.Width() / 2, r.Height() / 2}.Len()
	inset := 4 * halfDiag / s.opts.MaxFitScale
	if inset < 1e-4 {
		inset = 1e-4
	}
	return inset
}

// SetRotateSteps sets the quarter-turn count, remapping the crop rect by
// the same rotation so containment is preserved by construction.
func (s *Session) SetRotateSteps(steps int) {
	steps = ((steps % 4) + 4) % 4
	if steps == s.params.RotateSteps {
		return
	}
	delta := (steps - s.params.RotateSteps + 4) % 4
	for i := 0; i < delta; i++ {
		s.rect = rotateRectCW(s.rect)
	}
	s.params.RotateSteps = steps
	s.recomputeWarp()
	s.revalidate()
}

// RotateClockwise advances the quarter-turn count by one.
func (s *Session) RotateClockwise() {
	s.SetRotateSteps(s.params.RotateSteps + 1)
}

// SetFlipHorizontal toggles the mirror, mirroring the crop rect with it.
func (s *Session) SetFlipHorizontal(flip bool) {
	if flip == s.params.FlipH {
		return
	}
	s.params.FlipH = flip
	s.rect = mathutil.Rect{
		Left:   1 - s.rect.Right,
		Top:    s.rect.Top,
		Right:  1 - s.rect.Left,
		Bottom: s.rect.Bottom,
	}
	s.recomputeWarp()
	s.revalidate()
}

// rotateRectCW maps a texture-space rect through a 90° clockwise
// rotation of texture coordinates: (x, y) → (1-y, x).
func rotateRectCW(r mathutil.Rect) mathutil.Rect {
	return mathutil.Rect{
		Left:   1 - r.Bottom,
		Top:    r.Left,
		Right:  1 - r.Top,
		Bottom: r.Right,
	}
}

// Restore applies persisted parameters and a persisted crop rect through
// the non-gesture path: no baseline exists, so an out-of-bounds rect is
// recentred and shrunk in place (non-reversible).
func (s *Session) Restore(p Parameters, rect mathutil.Rect) {
	s.params = p.Clamped(s.opts)
	rect = rect.Canon().Clamp01()
	if rect.Width() < s.opts.MinCropSize || rect.Height() < s.opts.MinCropSize {
		rect = mathutil.UnitRect()
	}
	s.rect = rect
	s.baseline = nil
	s.drag = nil
	s.recomputeWarp()
	s.revalidate()
}

// Reset returns the session to its initial state: identity warp,
// full-frame crop.
func (s *Session) Reset() {
	s.params = Parameters{}
	s.rect = mathutil.UnitRect()
	s.baseline = nil
	s.drag = nil
	s.recomputeWarp()
	if s.vp.w > 0 {
		s.SetViewport(int(s.vp.w), int(s.vp.h), s.vp.pixelRatio)
	}
}

// revalidate is the non-gesture containment path: recenter the rect if
// its center left the quad, then shrink it in place if it still does not
// fit.
func (s *Session) revalidate() {
	c := s.rect.Center()
	if !s.quad.Contains(c) {
		nc := warp.NearestInsidePoint(c, s.quad, s.containInset(s.rect))
		s.rect = s.rect.Translate(nc.Sub(c))
		c = nc
	}
	if !s.quad.ContainsRect(s.rect, 0) {
		sc := warp.FitScale(s.rect, s.quad, s.opts.MaxFitScale)
		s.rect = s.rect.ScaledAbout(c, 1/sc)
	}
	s.rect = s.rect.Clamp01()
}

func (s *Session) recomputeWarp() {
	s.matrix = warp.FullMatrix(
		s.params.Vertical, s.params.Horizontal,
		s.opts.TiltRangeDeg, s.params.RollDeg(), s.params.FlipH)
	s.inverse = s.matrix.Inverse()
	s.quad = warp.ProjectUnitSquare(s.matrix)
}

// BeginCropGesture starts a handle drag. Invalid handles and nested
// begins are no-ops.
func (s *Session) BeginCropGesture(h Handle) {
	if !h.Valid() || s.drag != nil {
		return
	}
	s.drag = &dragState{handle: h}
}

// UpdateCropGesture moves the dragged handle by a raw device-pixel
// delta. Edge moves are accepted per axis only while the rect stays
// inside the quad, inside [0,1]², and above the minimum crop size, which
// gives the slide-along-boundary feel without a solver. Edge push then
// reacts to the same delta.
func (s *Session) UpdateCropGesture(deltaDevice mathutil.Vec2) {
	if s.drag == nil || s.vp.w == 0 {
		return
	}
	s.drag.lastDelta = deltaDevice

	d := mathutil.Vec2{
		deltaDevice[0] / (s.view.Scale * s.imageW),
		deltaDevice[1] / (s.view.Scale * s.imageH),
	}
	e := s.drag.handle.edges()

	cand := s.rect
	if e.left {
		cand.Left += d[0]
	}
	if e.right {
		cand.Right += d[0]
	}
	if s.rectValid(cand) {
		s.rect = cand
	}
	cand = s.rect
	if e.top {
		cand.Top += d[1]
	}
	if e.bottom {
		cand.Bottom += d[1]
	}
	if s.rectValid(cand) {
		s.rect = cand
	}

	s.applyEdgePush(deltaDevice)
}

// EndCropGesture releases the dragged handle. No-op when none is held.
func (s *Session) EndCropGesture() {
	s.drag = nil
}

func (s *Session) rectValid(r mathutil.Rect) bool {
	if r.Left < 0 || r.Top < 0 || r.Right > 1 || r.Bottom > 1 {
		return false
	}
	if r.Width() < s.opts.MinCropSize || r.Height() < s.opts.MinCropSize {
		return false
	}
	return s.quad.ContainsRect(r, 0)
}

// CropRect returns the current crop rectangle in texture space.
func (s *Session) CropRect() mathutil.Rect { return s.rect }

// Parameters returns the current geometry parameters.
func (s *Session) Parameters() Parameters { return s.params }

// WarpMatrix returns the full forward warp matrix.
func (s *Session) WarpMatrix() mathutil.Mat3 { return s.matrix }

// InverseWarp returns the inverse warp matrix, the value a renderer or
// shader consumes to map viewport UV back to texture UV.
func (s *Session) InverseWarp() mathutil.Mat3 { return s.inverse }

// VisibleQuad returns the texture-space quadrilateral that remains
// visible under the current warp.
func (s *Session) VisibleQuad() warp.Quad { return s.quad }

// View returns the current view transform.
func (s *Session) View() ViewTransform { return s.view }
