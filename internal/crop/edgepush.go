package crop

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

// Edge push: while a crop handle is dragged toward the viewport
// boundary, the view shrinks and pans against the drag so the handle
// meets increasing resistance instead of a hard stop. Acts only on the
// view, never on the crop rect, and has no baseline: it is not
// reversible and only runs during a drag.

// pushPressure maps a margin below the threshold to (0,1]; zero at or
// beyond the threshold.
func pushPressure(margin, threshold float64) float64 {
	if threshold <= 0 || margin >= threshold {
		return 0
	}
	p := (threshold - margin) / threshold
	if p > 1 {
		p = 1
	}
	return p
}

func easeInQuad(p float64) float64 { return p * p }

func (s *Session) applyEdgePush(deltaDevice mathutil.Vec2) {
	e := s.drag.handle.edges()
	threshold := s.opts.EdgeThresholdPx * s.vp.pixelRatio

	tl := s.view.imageToViewport(mathutil.Vec2{s.rect.Left * s.imageW, s.rect.Top * s.imageH}, s.vp)
	br := s.view.imageToViewport(mathutil.Vec2{s.rect.Right * s.imageW, s.rect.Bottom * s.imageH}, s.vp)

	// Per-axis pressure: only edges the handle owns, only when the drag
	// pushes that edge outward.
	var px, py float64
	if e.left && deltaDevice[0] < 0 {
		px = pushPressure(tl[0], threshold)
	}
	if e.right && deltaDevice[0] > 0 {
		if p := pushPressure(s.vp.w-br[0], threshold); p > px {
			px = p
		}
	}
	if e.top && deltaDevice[1] < 0 {
		py = pushPressure(tl[1], threshold)
	}
	if e.bottom && deltaDevice[1] > 0 {
		if p := pushPressure(s.vp.h-br[1], threshold); p > py {
			py = p
		}
	}

	pressure := px
	if py > pressure {
		pressure = py
	}
	if pressure == 0 {
		return
	}
	eased := easeInQuad(pressure)

	// Shrink the view, anchored at the crop center's viewport position
	// so the crop stays put while surrounding content recedes.
	newScale := mathutil.Clamp(
		s.view.Scale*(1-s.opts.MaxShrinkRate*eased),
		s.opts.MinViewScale, s.opts.MaxViewScale)
	cropCenter := s.rect.Center()
	centerImg := mathutil.Vec2{cropCenter[0] * s.imageW, cropCenter[1] * s.imageH}
	anchor := s.view.imageToViewport(centerImg, s.vp)
	s.view.Scale = newScale
	s.view.Center = centerImg.Sub(anchor.Sub(s.vp.center()).Scale(1 / newScale))

	// Compensating pan against the drag direction.
	gain := 0.75 + 0.25*eased
	off := mathutil.Vec2{deltaDevice[0] * px * gain, deltaDevice[1] * py * gain}
	s.view.Center = s.view.Center.Add(off.Scale(1 / newScale))

	s.clampViewCenter()
}

// clampViewCenter keeps the crop rect fully representable in the
// viewport at the current scale; when an axis cannot fit, the crop is
// centered on that axis.
func (s *Session) clampViewCenter() {
	halfW := s.vp.w / (2 * s.view.Scale)
	halfH := s.vp.h / (2 * s.view.Scale)

	lpx, rpx := s.rect.Left*s.imageW, s.rect.Right*s.imageW
	tpx, bpx := s.rect.Top*s.imageH, s.rect.Bottom*s.imageH

	s.view.Center[0] = clampOrCenter(s.view.Center[0], rpx-halfW, lpx+halfW, (lpx+rpx)/2)
	s.view.Center[1] = clampOrCenter(s.view.Center[1], bpx-halfH, tpx+halfH, (tpx+bpx)/2)
}

func clampOrCenter(v, lo, hi, mid float64) float64 {
	if lo > hi {
		return mid
	}
	return mathutil.Clamp(v, lo, hi)
}
