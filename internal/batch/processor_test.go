package batch

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/imgio"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/recipe"
)

func writeTestPhoto(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 120
		img.Pix[i+1] = 80
		img.Pix[i+2] = 40
		img.Pix[i+3] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRunEndToEnd(t *testing.T) {
	photoDir := t.TempDir()
	outDir := t.TempDir()
	writeTestPhoto(t, filepath.Join(photoDir, "sunset.png"))

	cfg := Config{
		OutputDir:   outDir,
		Photos:      imgio.NewCache(imgio.BuildIndex(photoDir)),
		RenderSize:  16,
		Supersample: 1,
		Workers:     2,
		Quiet:       true,
	}
	recipes := []recipe.Recipe{
		{Image: "sunset", Vertical: 0.3, Crop: &recipe.RectJSON{Left: 0.1, Top: 0.1, Right: 0.9, Bottom: 0.9}},
		{Image: "missing"},
	}

	results := Run(cfg, recipes)
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.FileExists(t, filepath.Join(outDir, "sunset.webp"))

	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "missing")

	manifest := filepath.Join(outDir, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sunset.webp")
	assert.NotContains(t, string(data), "missing")
}

func TestFitLongEdge(t *testing.T) {
	w, h := fitLongEdge(4000, 3000, 1024)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	w, h = fitLongEdge(300, 600, 100)
	assert.Equal(t, 50, w)
	assert.Equal(t, 100, h)
}
