// Package config holds the CLI tools' configuration: a JSON file with
// flag overrides and defaulting.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	PhotoDir  string `json:"photo_dir"`
	RecipeDir string `json:"recipe_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings. Output is always lossless WebP, so there is no
	// quality knob.
	RenderSize  int `json:"render_size"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	PhotoDir  string
	RecipeDir string
	OutputDir string
	Size      int
	Workers   int
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.PhotoDir != "" {
		c.PhotoDir = flags.PhotoDir
	}
	if flags.RecipeDir != "" {
		c.RecipeDir = flags.RecipeDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.BaseDir != "" {
		if c.PhotoDir == "" {
			c.PhotoDir = filepath.Join(c.BaseDir, "photos")
		} else if !filepath.IsAbs(c.PhotoDir) {
			c.PhotoDir = filepath.Join(c.BaseDir, c.PhotoDir)
		}

		if c.RecipeDir == "" {
			c.RecipeDir = filepath.Join(c.BaseDir, "recipes")
		} else if !filepath.IsAbs(c.RecipeDir) {
			c.RecipeDir = filepath.Join(c.BaseDir, c.RecipeDir)
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "renders")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 1024
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
