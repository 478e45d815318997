package mathutil

// Rect is an axis-aligned rectangle in normalized texture space [0,1]².
// Valid rects satisfy Left < Right and Top < Bottom.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// UnitRect is the full-frame crop: the whole texture.
func UnitRect() Rect {
	return Rect{0, 0, 1, 1}
}

// RectFromCenterSize builds a rect of the given width and height centered
// at c.
func RectFromCenterSize(c Vec2, w, h float64) Rect {
	return Rect{
		Left:   c[0] - w/2,
		Top:    c[1] - h/2,
		Right:  c[0] + w/2,
		Bottom: c[1] + h/2,
	}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Corners returns the rect corners in order TL, TR, BR, BL.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
}

// ScaledAbout scales the rect uniformly by s about the anchor point c.
func (r Rect) ScaledAbout(c Vec2, s float64) Rect {
	return Rect{
		Left:   c[0] + (r.Left-c[0])*s,
		Top:    c[1] + (r.Top-c[1])*s,
		Right:  c[0] + (r.Right-c[0])*s,
		Bottom: c[1] + (r.Bottom-c[1])*s,
	}
}

func (r Rect) Translate(d Vec2) Rect {
	return Rect{r.Left + d[0], r.Top + d[1], r.Right + d[0], r.Bottom + d[1]}
}

// Clamp01 clamps all four edges into [0,1].
func (r Rect) Clamp01() Rect {
	return Rect{
		Left:   Clamp(r.Left, 0, 1),
		Top:    Clamp(r.Top, 0, 1),
		Right:  Clamp(r.Right, 0, 1),
		Bottom: Clamp(r.Bottom, 0, 1),
	}
}

// Canon swaps edges so that Left ≤ Right and Top ≤ Bottom.
func (r Rect) Canon() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

func (r Rect) ContainsPoint(p Vec2) bool {
	return p[0] >= r.Left && p[0] <= r.Right && p[1] >= r.Top && p[1] <= r.Bottom
}
