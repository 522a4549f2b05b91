package instrument

// ItemDefinition is one questionnaire item of the fixed 88-item instrument.
// Items with IncludeInMainScale false feed auxiliary indices only.
type ItemDefinition struct {
	Code               string    `json:"code"`
	Dimension          Dimension `json:"dimension"`
	IncludeInMainScale bool      `json:"include_in_main_scale"`
	ReverseScored      bool      `json:"reverse_scored"`
	Facet              string    `json:"facet"`
}
