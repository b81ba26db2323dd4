package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"house-tracker/models"
)

// Load reads the full catalog snapshot from path. A missing file is not an
// error — the catalog simply starts empty. An unreadable or corrupt file
// is an error: the run must abort rather than rebuild history from scratch.
func Load(path string) ([]models.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}

	var props []models.Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return props, nil
}

// Save replaces the snapshot at path with the given catalog. The document
// is pretty-printed for human diffing and written via a temp file plus
// rename, so a failed run never leaves a half-written snapshot behind.
func Save(path string, props []models.Property) error {
	if props == nil {
		props = []models.Property{}
	}

	data, err := json.MarshalIndent(props, "", "    ")
	if err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("catalog: create dir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("catalog: create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: replace %q: %w", path, err)
	}
	return nil
}
