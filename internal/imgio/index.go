package imgio

import (
	"os"
	"path/filepath"
	"strings"
)

// photoExts ranks the formats the index accepts; higher wins when two
// files share a stem. Lossless originals beat lossy derivatives.
var photoExts = map[string]int{
	".jpg":  1,
	".jpeg": 1,
	".webp": 2,
	".bmp":  3,
	".tga":  3,
	".tiff": 4,
	".tif":  4,
	".png":  5,
}

// Index maps lowercase photo stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans photoDir recursively for supported image files.
func BuildIndex(photoDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(photoDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := photoExts[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank > photoExts[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a photo reference, which
// may be a bare stem, a filename, or a path with directories.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed photos.
func (idx *Index) Len() int {
	return len(idx.entries)
}
