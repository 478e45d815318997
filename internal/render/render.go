// Package render is a software implementation of the engine's rendering
// contract: it consumes only the inverse warp matrix and the crop rect,
// the same two values a GPU shader would take as uniforms.
package render

import (
	"image"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
)

// Options controls the output raster.
type Options struct {
	// Width, Height are the output dimensions in pixels.
	Width, Height int
	// Supersample renders at an N× grid per axis; callers downsample
	// afterwards.
	Supersample int
}

// Render maps every output pixel through the inverse warp back into
// texture space, discards UVs outside [0,1]² or outside the crop rect,
// and bilinearly samples the rest. Discarded pixels are transparent.
func Render(src *image.NRGBA, inv mathutil.Mat3, rect mathutil.Rect, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w := opts.Width * ss
	h := opts.Height * ss
	if w < 1 || h < 1 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			p := inv.ProjectPoint(mathutil.Vec2{2*u - 1, 2*v - 1})
			tu := (p[0] + 1) / 2
			tv := (p[1] + 1) / 2
			if tu < 0 || tu > 1 || tv < 0 || tv > 1 {
				continue
			}
			if tu < rect.Left || tu > rect.Right || tv < rect.Top || tv > rect.Bottom {
				continue
			}
			r, g, b, a := sampleClamped(src, tu, tv)
			i := dst.PixOffset(x, y)
			dst.Pix[i] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = b
			dst.Pix[i+3] = a
		}
	}
	return dst
}

// sampleClamped performs bilinear filtering with clamped UVs. Photos do
// not tile, so coordinates clamp to the edge instead of wrapping.
// Accesses tex.Pix directly for performance.
func sampleClamped(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	if x0 > w-1 {
		x0 = w - 1
	}
	if y0 > h-1 {
		y0 = h - 1
	}
	x1 := x0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	y1 := y0 + 1
	if y1 > h-1 {
		y1 = h - 1
	}
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return uint8(fr + 0.5), uint8(fg + 0.5), uint8(fb + 0.5), uint8(fa + 0.5)
}

// TrimToOpaque cuts the image to the bounding box of pixels with any
// alpha, dropping the transparent border the discard pass leaves around
// the warped crop. Returns the input when nothing is transparent or
// everything is.
func TrimToOpaque(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] != 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		return img
	}
	if minX == b.Min.X && minY == b.Min.Y && maxX == b.Max.X-1 && maxY == b.Max.Y-1 {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, maxX-minX+1, maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		si := img.PixOffset(minX, y)
		di := out.PixOffset(0, y-minY)
		copy(out.Pix[di:di+out.Stride], img.Pix[si:si+(maxX-minX+1)*4])
	}
	return out
}
