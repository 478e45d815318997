// warprender applies every edit recipe in a directory to its photo and
// writes the rendered crops as WebP files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OliverZhaohaibin/iphotron-warp/internal/batch"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/config"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/imgio"
	"github.com/OliverZhaohaibin/iphotron-warp/internal/recipe"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	photoDir := flag.String("photos", "", "Photo directory (default: ./photos)")
	recipeDir := flag.String("recipes", "", "Recipe directory (default: ./recipes)")
	outputDir := flag.String("output", "", "Output directory (default: ./renders)")
	size := flag.Int("size", 0, "Output long-edge size in pixels (default: 1024)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N recipes for testing")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		PhotoDir:  *photoDir,
		RecipeDir: *recipeDir,
		OutputDir: *outputDir,
		Size:      *size,
		Workers:   *workers,
	})

	recipes, errs := recipe.LoadDir(cfg.RecipeDir)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if *testN > 0 && *testN < len(recipes) {
		recipes = recipes[:*testN]
	}
	if len(recipes) == 0 {
		fmt.Println("No recipes to render.")
		os.Exit(0)
	}

	index := imgio.BuildIndex(cfg.PhotoDir)
	cache := imgio.NewCache(index)
	fmt.Printf("Photos: %d indexed\n", index.Len())
	fmt.Printf("Recipes: %d, Workers: %d\n", len(recipes), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Photos:      cache,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}, recipes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(recipes))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, f := range failures[:limit] {
			fmt.Printf("  %s: %s\n", f.Stem, f.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
