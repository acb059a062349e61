package ingest

import (
	"io/fs"
	"path/filepath"
	"strings"
)

type SourceFile struct {
	Path string
}

func hasContentExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

// Discover walks one collection directory and returns every content file
// under it, subdirectories included.
func Discover(root string) ([]SourceFile, error) {
	var out []SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if hasContentExt(d.Name()) {
			out = append(out, SourceFile{Path: path})
		}
		return nil
	})
	return out, err
}
