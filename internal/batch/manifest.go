package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one rendered photo in the output manifest.
type ManifestEntry struct {
	Stem   string `json:"stem"`
	Source string `json:"source"`
	Image  string `json:"image"`
}

// WriteManifest writes manifest.json listing the successful outputs.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Stem:   r.Stem,
			Source: r.Image,
			Image:  r.Output,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
