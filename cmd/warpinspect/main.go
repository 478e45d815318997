// warpinspect prints the geometry the engine derives from a recipe or
// raw parameters: warp matrix, projected quad, fit scale, and the
// constrained crop rect. Debug tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/crop"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/recipe"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/warp"
)

func main() {
	recipePath := flag.String("recipe", "", "Recipe JSON to inspect")
	vertical := flag.Float64("vertical", 0, "Vertical tilt [-1,1]")
	horizontal := flag.Float64("horizontal", 0, "Horizontal tilt [-1,1]")
	straighten := flag.Float64("straighten", 0, "Straighten angle in degrees")
	rotate := flag.Int("rotate", 0, "Quarter-turn count 0-3")
	flip := flag.Bool("flip", false, "Horizontal flip")
	cropSpec := flag.String("crop", "", "Crop rect as left,top,right,bottom")

	flag.Parse()

	params := crop.Parameters{
		Vertical:      *vertical,
		Horizontal:    *horizontal,
		StraightenDeg: *straighten,
		RotateSteps:   *rotate,
		FlipH:         *flip,
	}
	rect := mathutil.UnitRect()

	if *recipePath != "" {
		rec, err := recipe.Load(*recipePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		params = rec.Parameters()
		rect = rec.CropRect()
	} else if *cropSpec != "" {
		r, err := parseRect(*cropSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -crop: %v\n", err)
			os.Exit(1)
		}
		rect = r
	}

	sess := crop.NewSession(1000, 1000, crop.Options{})
	inputRect := rect
	sess.Restore(params, rect)

	m := sess.WarpMatrix()
	fmt.Println("Warp matrix:")
	for r := 0; r < 3; r++ {
		fmt.Printf("  [%9.5f %9.5f %9.5f]\n", m[r*3], m[r*3+1], m[r*3+2])
	}

	q := sess.VisibleQuad()
	fmt.Println("Projected quad:")
	for _, p := range q {
		fmt.Printf("  (%8.5f, %8.5f)\n", p[0], p[1])
	}
	fmt.Printf("Quad area: %.6f", q.Area())
	if q.IsDegenerate() {
		fmt.Print("  (degenerate)")
	}
	fmt.Println()

	s := warp.FitScale(inputRect, q, warp.DefaultMaxFitScale)
	fmt.Printf("Fit scale for input rect: %.6f\n", s)

	out := sess.CropRect()
	fmt.Printf("Constrained crop: {%.5f, %.5f, %.5f, %.5f}  (%.5f × %.5f)\n",
		out.Left, out.Top, out.Right, out.Bottom, out.Width(), out.Height())
}

func parseRect(spec string) (mathutil.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return mathutil.Rect{}, fmt.Errorf("want 4 comma-separated numbers, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mathutil.Rect{}, err
		}
		v[i] = f
	}
	r := mathutil.Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	if r.Left >= r.Right || r.Top >= r.Bottom {
		return mathutil.Rect{}, fmt.Errorf("empty or inverted rect")
	}
	return r, nil
}
