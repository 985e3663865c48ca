package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gyeh/pricebench/internal/model"
)

// WriteManifest writes the run summary as indented JSON.
func WriteManifest(path string, m *model.RunManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
