package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var sourceExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".xlsx": true,
	".html": true,
	".htm":  true,
}

// DirSource enumerates curriculum source files in a flat directory.
// Listing is sorted so chunk IDs come out the same on every build.
type DirSource struct{}

func NewDirSource() *DirSource {
	return &DirSource{}
}

func (DirSource) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !sourceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (DirSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
