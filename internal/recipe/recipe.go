// Package recipe reads and writes edit recipes: the persisted
// perspective parameters and crop rect for one photo, stored as plain
// JSON sidecars.
package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/crop"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/mathutil"
)

// RectJSON is the JSON shape of a normalized crop rect.
type RectJSON struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Recipe is one photo's persisted edit.
type Recipe struct {
	Image         string    `json:"image"`
	Vertical      float64   `json:"vertical"`
	Horizontal    float64   `json:"horizontal"`
	RotateSteps   int       `json:"rotate_steps"`
	StraightenDeg float64   `json:"straighten_deg"`
	FlipH         bool      `json:"flip_horizontal"`
	Crop          *RectJSON `json:"crop,omitempty"`
}

// Load reads one recipe file.
func Load(path string) (Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return Recipe{}, fmt.Errorf("recipe: parse %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return Recipe{}, fmt.Errorf("recipe: %s: %w", path, err)
	}
	return r, nil
}

// Save writes a recipe as indented JSON.
func Save(path string, r Recipe) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("recipe: %s: %w", path, err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("recipe: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("recipe: write %s: %w", path, err)
	}
	return nil
}

// LoadDir collects every *.json recipe in dir, sorted by filename.
// Unreadable or invalid files are returned as errors alongside the
// recipes that did load.
func LoadDir(dir string) ([]Recipe, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("recipe: read dir %s: %w", dir, err)}
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var recipes []Recipe
	var errs []error
	for _, name := range names {
		r, err := Load(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, errs
}

// Validate rejects recipes the engine cannot restore. Out-of-range
// parameters are fine (the session clamps them); an inverted or empty
// crop rect is not.
func (r Recipe) Validate() error {
	if r.Image == "" {
		return fmt.Errorf("missing image reference")
	}
	if r.Crop != nil {
		if r.Crop.Left >= r.Crop.Right || r.Crop.Top >= r.Crop.Bottom {
			return fmt.Errorf("empty or inverted crop rect %+v", *r.Crop)
		}
	}
	return nil
}

// Parameters converts the recipe's parameter fields.
func (r Recipe) Parameters() crop.Parameters {
	return crop.Parameters{
		Vertical:      r.Vertical,
		Horizontal:    r.Horizontal,
		RotateSteps:   r.RotateSteps,
		StraightenDeg: r.StraightenDeg,
		FlipH:         r.FlipH,
	}
}

// CropRect converts the recipe's crop, defaulting to the full frame.
func (r Recipe) CropRect() mathutil.Rect {
	if r.Crop == nil {
		return mathutil.UnitRect()
	}
	return mathutil.Rect{
		Left:   r.Crop.Left,
		Top:    r.Crop.Top,
		Right:  r.Crop.Right,
		Bottom: r.Crop.Bottom,
	}
}

// Apply drives the session's restore path with this recipe.
func (r Recipe) Apply(s *crop.Session) {
	s.Restore(r.Parameters(), r.CropRect())
}

// FromSession snapshots a session into a recipe for image.
func FromSession(image string, s *crop.Session) Recipe {
	p := s.Parameters()
	rect := s.CropRect()
	return Recipe{
		Image:         image,
		Vertical:      p.Vertical,
		Horizontal:    p.Horizontal,
		RotateSteps:   p.RotateSteps,
		StraightenDeg: p.StraightenDeg,
		FlipH:         p.FlipH,
		Crop: &RectJSON{
			Left:   rect.Left,
			Top:    rect.Top,
			Right:  rect.Right,
			Bottom: rect.Bottom,
		},
	}
}

// Stem returns the recipe's image reference without directories or
// extension, the name batch output files are keyed by.
func (r Recipe) Stem() string {
	base := filepath.Base(strings.ReplaceAll(r.Image, "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
