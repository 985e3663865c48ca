// Package flatten turns one raw hospital price-transparency file into a flat
// pre-canonical table. Format detection is driven by extension first, then by
// a closed set of dialects classified from the column set: narrow CSV,
// CMS v3.0 flat CSV, wide pivoted-payer CSV, and nested CMS JSON. Zip
// archives are searched for their best CSV member.
package flatten

import (
	"os"
	"path/filepath"
	"strings"
)

// LoadAny reads and flattens the file at path according to its detected
// format. It is a pure transform of bytes to rows: all failures come back as
// a *flatten.Error carrying an audit classification, never a panic.
func LoadAny(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, failure(KindReadError, path, err)
		}
		table, err := parseCSV(data, path)
		if err != nil {
			return nil, err
		}
		return flattenCSVTable(table), nil

	case ".zip":
		return parseZip(path)

	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, failure(KindReadError, path, err)
		}
		return parseJSON(data, path)

	case ".jsonl", ".ndjson":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, failure(KindReadError, path, err)
		}
		return parseJSONLines(data, path)

	default:
		return nil, failure(KindUnsupportedFormat, path, nil)
	}
}
