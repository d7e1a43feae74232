// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveJSON writes v as indented JSON under the library's JSON directory
// with a timestamped filename, and returns the path written.
func (l *Library) SaveJSON(v any, name string) (string, error) {
	if err := os.MkdirAll(l.jsonDir, 0o755); err != nil {
		return "", fmt.Errorf("creating JSON directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json",
		time.Now().Format("20060102_150405"), sanitizeFilename(name))
	path := filepath.Join(l.jsonDir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
