// Package render turns scored profiles into their output formats: JSON,
// terminal text, markdown, standalone HTML, and XLSX workbooks.
package render

import (
	"encoding/json"
	"io"

	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

// WriteJSON writes the canonical profile document, pretty-printed with a
// trailing newline. This is the wire shape downstream tooling consumes.
func WriteJSON(w io.Writer, profile *scoring.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(profile)
}
