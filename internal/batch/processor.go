// Package batch applies edit recipes to a photo directory with a worker
// pool and writes the rendered crops as WebP files.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/crop"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/imgio"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/recipe"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/render"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run. Output is lossless
// WebP (nativewebp has no quality setting), so none is carried here.
type Config struct {
	OutputDir   string
	Photos      *imgio.Cache
	RenderSize  int
	Supersample int
	Workers     int
	// Quiet suppresses the periodic progress line.
	Quiet bool
}

// Result holds the outcome of processing one recipe.
type Result struct {
	Stem    string
	Image   string
	Output  string
	Success bool
	Error   string
}

// Run processes all recipes using a worker pool. Per-recipe failures are
// carried in the results, never aborting the pool.
func Run(cfg Config, recipes []recipe.Recipe) []Result {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	total := len(recipes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		if cfg.Quiet {
			return
		}
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f photos/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processRecipe(cfg, recipes[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range recipes {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processRecipe(cfg Config, r recipe.Recipe) Result {
	res := Result{Stem: r.Stem(), Image: r.Image}

	src, err := cfg.Photos.Resolve(r.Image)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	b := src.Bounds()
	sess := crop.NewSession(b.Dx(), b.Dy(), crop.Options{})
	r.Apply(sess)

	// Render the full warped frame at the target long edge, trim the
	// transparent surround the crop discard leaves, then downsample.
	outW, outH := fitLongEdge(b.Dx(), b.Dy(), cfg.RenderSize)
	img := render.Render(src, sess.InverseWarp(), sess.CropRect(), render.Options{
		Width:       outW,
		Height:      outH,
		Supersample: cfg.Supersample,
	})
	img = render.TrimToOpaque(img)
	img = render.Downsample(img, cfg.RenderSize, cfg.RenderSize)

	outPath := filepath.Join(cfg.OutputDir, res.Stem+".webp")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Output = res.Stem + ".webp"
	res.Success = true
	return res
}

// fitLongEdge scales w×h so the longer edge equals size.
func fitLongEdge(w, h, size int) (int, int) {
	if w >= h {
		return size, max1(size * h / w)
	}
	return max1(size * w / h), size
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
