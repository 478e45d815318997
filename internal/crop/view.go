package crop

import "github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"

// ViewTransform maps image pixel space to viewport device-pixel space.
// Scale is device pixels per image pixel; Center is the image-pixel
// point shown at the viewport center.
type ViewTransform struct {
	Scale  float64
	Center mathutil.Vec2
}

// viewport holds the device-pixel dimensions the view maps into.
type viewport struct {
	w, h       float64
	pixelRatio float64
}

func (vp viewport) center() mathutil.Vec2 {
	return mathutil.Vec2{vp.w / 2, vp.h / 2}
}

// imageToViewport maps an image-pixel point to viewport device pixels.
func (v ViewTransform) imageToViewport(p mathutil.Vec2, vp viewport) mathutil.Vec2 {
	return p.Sub(v.Center).Scale(v.Scale).Add(vp.center())
}
