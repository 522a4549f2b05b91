package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

const (
	codeColumn   = "item_code"
	ratingColumn = "rating"
)

func (s *FileSource) readCSVRows() ([][]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Name(), err)
	}
	return rows, nil
}

// parseRatingRows applies the shared row contract to CSV and XLSX content.
// Row 1 is the header; data lines are reported 1-based to match what the
// respondent sees in a spreadsheet.
func (s *FileSource) parseRatingRows(rows [][]string) (map[string]any, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header with %q and %q columns", s.Name(), codeColumn, ratingColumn)
	}

	codeIdx, ratingIdx := -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case codeColumn:
			codeIdx = i
		case ratingColumn:
			ratingIdx = i
		}
	}
	if codeIdx < 0 || ratingIdx < 0 {
		return nil, fmt.Errorf("%s must have %q and %q columns", s.Name(), codeColumn, ratingColumn)
	}

	values := make(map[string]any, instrument.NumItems)
	for i := 1; i < len(rows); i++ {
		line := i + 1
		row := rows[i]

		code := cellAt(row, codeIdx)
		if code == "" {
			continue
		}
		if !s.tax.Contains(code) {
			return nil, fmt.Errorf("unknown item code %q (line %d)", code, line)
		}
		if _, dup := values[code]; dup {
			return nil, fmt.Errorf("duplicate item code %q (line %d)", code, line)
		}

		raw := cellAt(row, ratingIdx)
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rating %q for item %q (line %d)", raw, code, line)
		}
		if rating < instrument.LikertMin || rating > instrument.LikertMax {
			return nil, fmt.Errorf("rating %d for item %q out of range %d..%d (line %d)",
				rating, code, instrument.LikertMin, instrument.LikertMax, line)
		}
		values[code] = rating
	}
	return values, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
