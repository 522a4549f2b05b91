// Package ingest reads rating sets from files. Readers enforce the row
// contract (known codes, integer ratings, no duplicates) with line-accurate
// errors; full-instrument completeness stays with the scoring validator.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

// FileSource reads one rating set from a CSV, XLSX, or JSON file.
type FileSource struct {
	tax  *instrument.Taxonomy
	path string
	kind string // "csv", "xlsx", or "json"
}

// NewFileSource creates a reader for path, picking the format from the
// file extension.
func NewFileSource(tax *instrument.Taxonomy, path string) *FileSource {
	kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return &FileSource{tax: tax, path: path, kind: kind}
}

// Name identifies the source in logs and error messages.
func (s *FileSource) Name() string {
	return filepath.Base(s.path)
}

// Read returns the item code -> value mapping from the file.
func (s *FileSource) Read() (map[string]any, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("ratings file not found: %s", s.path)
	}

	switch s.kind {
	case "csv":
		rows, err := s.readCSVRows()
		if err != nil {
			return nil, err
		}
		return s.parseRatingRows(rows)
	case "xlsx":
		rows, err := s.readXLSXRows()
		if err != nil {
			return nil, err
		}
		return s.parseRatingRows(rows)
	case "json":
		return s.readJSON()
	default:
		return nil, fmt.Errorf("unsupported ratings format %q (want csv, xlsx, or json)", s.kind)
	}
}
