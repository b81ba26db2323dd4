// Package capture is the raw snapshot store: every fetched page is kept on
// disk as a timestamped JSON blob so the whole pipeline can be re-run
// against historical captures without touching the network.
package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"house-tracker/utils"
)

// Capture is one stored page snapshot plus its fetch metadata. Category is
// the label the page was fetched under (Betri's filter endpoints are
// per-category, so the label supplies the property category).
type Capture struct {
	URL       string `json:"url"`
	Category  string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	HTML      string `json:"html"`

	// Path is where the capture was read from; not serialized.
	Path string `json:"-"`
}

// Store reads and writes captures under one directory.
type Store struct {
	dir    string
	logger *utils.Logger
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string, logger *utils.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("capture: create dir %q: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// List returns all captures in filename order. Timestamped filenames make
// that chronological, which is the order reconciliation wants. A capture
// that cannot be read or parsed is logged and skipped, never fatal.
func (s *Store) List() ([]Capture, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("capture: read dir %q: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	captures := make([]Capture, 0, len(names))
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("[capture] Skipping unreadable capture %s: %v", name, err)
			continue
		}

		var c Capture
		if err := json.Unmarshal(data, &c); err != nil {
			s.logger.Warn("[capture] Skipping malformed capture %s: %v", name, err)
			continue
		}
		c.Path = path
		captures = append(captures, c)
	}
	return captures, nil
}

// Save writes a new timestamped capture file and returns its path.
func (s *Store) Save(c Capture) (string, error) {
	if c.Timestamp == 0 {
		c.Timestamp = time.Now().Unix()
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", fmt.Errorf("capture: encode: %w", err)
	}

	// The category suffix keeps same-second captures from clobbering each
	// other when one source is fetched once per category.
	name := fmt.Sprintf("html_%s.json", time.Unix(c.Timestamp, 0).Format("2006-01-02_15-04-05"))
	if c.Category != "" {
		name = fmt.Sprintf("html_%s_%s.json",
			time.Unix(c.Timestamp, 0).Format("2006-01-02_15-04-05"),
			strings.ToLower(c.Category))
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("capture: write %q: %w", path, err)
	}
	return path, nil
}
