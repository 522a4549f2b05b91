package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// readJSON decodes a flat object of item code -> rating. Type, range, and
// completeness rules are left to the scoring validator, which already
// understands JSON numbers.
func (s *FileSource) readJSON() (map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Name(), err)
	}
	values := make(map[string]any)
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%s is not a flat JSON object of ratings: %w", s.Name(), err)
	}
	return values, nil
}
