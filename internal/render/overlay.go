package render

import (
	"image"
	"image/color"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/warp"
)

// Overlay colors.
var (
	quadColor   = color.NRGBA{255, 200, 40, 255}
	cropColor   = color.NRGBA{255, 255, 255, 255}
	handleColor = color.NRGBA{255, 255, 255, 255}
)

const handleRadius = 3

// DrawQuadOutline draws the projected quad onto img, mapping texture
// space [0,1]² to the image bounds.
func DrawQuadOutline(img *image.NRGBA, q warp.Quad) {
	for i := 0; i < 4; i++ {
		drawLine(img, texToPix(img, q[i]), texToPix(img, q[(i+1)%4]), quadColor)
	}
}

// DrawCropRect draws the crop rectangle outline and its eight handles.
func DrawCropRect(img *image.NRGBA, r mathutil.Rect) {
	c := r.Corners()
	for i := 0; i < 4; i++ {
		drawLine(img, texToPix(img, c[i]), texToPix(img, c[(i+1)%4]), cropColor)
	}
	// Handles: four corners and four edge midpoints.
	cx := (r.Left + r.Right) / 2
	cy := (r.Top + r.Bottom) / 2
	for _, p := range []mathutil.Vec2{
		{r.Left, r.Top}, {cx, r.Top}, {r.Right, r.Top}, {r.Right, cy},
		{r.Right, r.Bottom}, {cx, r.Bottom}, {r.Left, r.Bottom}, {r.Left, cy},
	} {
		drawHandle(img, texToPix(img, p))
	}
}

func texToPix(img *image.NRGBA, p mathutil.Vec2) image.Point {
	b := img.Bounds()
	return image.Point{
		X: b.Min.X + int(p[0]*float64(b.Dx()-1)+0.5),
		Y: b.Min.Y + int(p[1]*float64(b.Dy()-1)+0.5),
	}
}

func drawHandle(img *image.NRGBA, p image.Point) {
	for dy := -handleRadius; dy <= handleRadius; dy++ {
		for dx := -handleRadius; dx <= handleRadius; dx++ {
			setPixel(img, p.X+dx, p.Y+dy, handleColor)
		}
	}
}

// drawLine rasterizes a segment with the integer Bresenham walk.
func drawLine(img *image.NRGBA, a, b image.Point, c color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		setPixel(img, x, y, c)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	i := img.PixOffset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
