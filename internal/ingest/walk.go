package ingest

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var supportedExtensions = map[string]bool{
	".csv":    true,
	".json":   true,
	".jsonl":  true,
	".ndjson": true,
	".zip":    true,
}

// DiscoverFiles walks the input tree and returns every supported raw file.
// Zip archives with an already-extracted "<stem>_unzipped" sibling directory
// are skipped so the same prices are not counted twice. WalkDir visits
// entries lexically, which keeps the audit table reproducible for a fixed
// filesystem state; consumers must not rely on row order for correctness.
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !supportedExtensions[ext] {
			return nil
		}
		if ext == ".zip" {
			stem := strings.TrimSuffix(path, filepath.Ext(path))
			if info, statErr := os.Stat(stem + "_unzipped"); statErr == nil && info.IsDir() {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
