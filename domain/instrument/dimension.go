package instrument

import "fmt"

// Dimension identifies one of the six scored constructs of the instrument.
type Dimension string

const (
	DimAttention  Dimension = "attention"
	DimSensory    Dimension = "sensory"
	DimSocial     Dimension = "social"
	DimExecutive  Dimension = "executive"
	DimMotivation Dimension = "motivation"
	DimRegulation Dimension = "regulation"
)

// Dimensions lists all dimensions in report order.
func Dimensions() []Dimension {
	return []Dimension{
		DimAttention,
		DimSensory,
		DimSocial,
		DimExecutive,
		DimMotivation,
		DimRegulation,
	}
}

var dimensionLabels = map[Dimension]string{
	DimAttention:  "Attention Architecture",
	DimSensory:    "Sensory Processing",
	DimSocial:     "Social Energetics",
	DimExecutive:  "Executive Function & Need for Structure",
	DimMotivation: "Motivation Architecture",
	DimRegulation: "Autonomic Regulation / Stress & Vigilance",
}

// Label returns the human-readable name of the dimension.
func (d Dimension) Label() string {
	if label, ok := dimensionLabels[d]; ok {
		return label
	}
	return string(d)
}

// String returns the dimension code.
func (d Dimension) String() string {
	return string(d)
}

// Valid reports whether d is one of the six defined dimensions.
func (d Dimension) Valid() bool {
	_, ok := dimensionLabels[d]
	return ok
}

// ParseDimension converts a code into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown dimension code %q", s)
	}
	return d, nil
}
