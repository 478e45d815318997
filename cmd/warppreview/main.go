// warppreview renders a single photo through an edit recipe and writes
// a preview image, optionally with the visible-quad and crop overlay
// drawn on the unwarped source instead.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/crop"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/imgio"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/recipe"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/render"
)

func main() {
	imagePath := flag.String("image", "", "Photo to render (required)")
	recipePath := flag.String("recipe", "", "Recipe JSON (default: parameters flags)")
	outPath := flag.String("out", "preview.webp", "Output file (.webp or .png)")
	size := flag.Int("size", 1024, "Output long-edge size in pixels")
	supersample := flag.Int("ss", 2, "Supersample factor")
	overlay := flag.Bool("overlay", false, "Draw quad/crop overlay on the source instead of warping")
	vertical := flag.Float64("vertical", 0, "Vertical tilt [-1,1]")
	horizontal := flag.Float64("horizontal", 0, "Horizontal tilt [-1,1]")
	straighten := flag.Float64("straighten", 0, "Straighten angle in degrees")

	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -image is required")
		os.Exit(1)
	}

	src, err := imgio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b := src.Bounds()
	sess := crop.NewSession(b.Dx(), b.Dy(), crop.Options{})

	if *recipePath != "" {
		rec, err := recipe.Load(*recipePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rec.Apply(sess)
	} else {
		sess.Restore(crop.Parameters{
			Vertical:      *vertical,
			Horizontal:    *horizontal,
			StraightenDeg: *straighten,
		}, sess.CropRect())
	}

	outW, outH := fitLongEdge(b.Dx(), b.Dy(), *size)
	var out = src
	if *overlay {
		// Unwarped source with the visible quad and crop drawn on top.
		out = render.Render(src, mathutil.Mat3Identity(), mathutil.UnitRect(), render.Options{Width: outW, Height: outH})
		render.DrawQuadOutline(out, sess.VisibleQuad())
		render.DrawCropRect(out, sess.CropRect())
	} else {
		out = render.Render(src, sess.InverseWarp(), sess.CropRect(), render.Options{
			Width:       outW,
			Height:      outH,
			Supersample: *supersample,
		})
		out = render.TrimToOpaque(out)
		out = render.Downsample(out, *size, *size)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(*outPath), ".png") {
		err = png.Encode(f, out)
	} else {
		err = nativewebp.Encode(f, out, nil)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", *outPath, out.Bounds().Dx(), out.Bounds().Dy())
}

func fitLongEdge(w, h, size int) (int, int) {
	if w >= h {
		h = size * h / w
		if h < 1 {
			h = 1
		}
		return size, h
	}
	w = size * w / h
	if w < 1 {
		w = 1
	}
	return w, size
}
