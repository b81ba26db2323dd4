package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"house-tracker/models"
)

// ChangeLogWriter appends reconciliation events as human-readable lines to
// a log file, one line per event. The file is append-only so the history
// of what the tracker observed survives across runs.
// It is safe for concurrent use.
type ChangeLogWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewChangeLogWriter opens (or creates) the change log at the given path.
// Intermediate directories are created automatically.
func NewChangeLogWriter(path string) (*ChangeLogWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("changelog: create output dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("changelog: open %q: %w", path, err)
	}

	return &ChangeLogWriter{file: f, writer: bufio.NewWriter(f)}, nil
}

// Log appends one line per event, stamped with the current time.
func (w *ChangeLogWriter) Log(events []models.ChangeEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	for _, ev := range events {
		if _, err := fmt.Fprintf(w.writer, "%s %s\n", stamp, ev.String()); err != nil {
			return fmt.Errorf("changelog: write line: %w", err)
		}
	}
	return w.writer.Flush()
}

// Close flushes and closes the underlying file.
func (w *ChangeLogWriter) Close() error {
	w.writer.Flush()
	return w.file.Close()
}
