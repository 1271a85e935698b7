package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Exporter writes entity snapshots to timestamped report files.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter rooted at dir, creating it if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// ExportJSON writes data as indented JSON and returns the file path.
func (e *Exporter) ExportJSON(name string, data any) (string, error) {
	path := e.filePath(name, "json")

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s export: %w", name, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s export: %w", name, err)
	}
	return path, nil
}

// ExportCSV writes a header row followed by rows and returns the file path.
func (e *Exporter) ExportCSV(name string, header []string, rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no data to export for %s", name)
	}

	path := e.filePath(name, "csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s export: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return path, nil
}

func (e *Exporter) filePath(name, ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", name, timestamp, ext))
}
