package scoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

// EngineVersion is stamped into every profile's meta block.
const EngineVersion = "0.3.0"

// InstrumentName identifies the questionnaire this engine scores.
const InstrumentName = "Learning Energy Profile (LEP-88)"

// Meta carries instrument-level counts and scale bounds for a profile.
type Meta struct {
	Instrument         string `json:"instrument"`
	Version            string `json:"version"`
	NumItemsInstrument int    `json:"num_items_instrument"`
	NumItemsAnswered   int    `json:"num_items_answered"`
	NumItemsMainScales int    `json:"num_items_main_scales"`
	NumItemsAdditional int    `json:"num_items_additional"`
	NumReversedTotal   int    `json:"num_reversed_total"`
	LikertMin          int    `json:"likert_min"`
	LikertMax          int    `json:"likert_max"`
	ScoreMin           int    `json:"score_min"`
	ScoreMax           int    `json:"score_max"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// Profile is the complete scored result. Immutable once returned; the
// caller owns it exclusively. Field names and nesting are an external
// contract consumed by reports and downstream pipelines.
type Profile struct {
	ID                *string                                  `json:"id"`
	Dimensions        map[instrument.Dimension]DimensionResult `json:"dimensions"`
	AdditionalIndices AdditionalIndices                        `json:"additional_indices"`
	ResponseQuality   ResponseQuality                          `json:"response_quality"`
	Meta              Meta                                     `json:"meta"`
}

// Options carries the caller-supplied parts of a profile. The engine never
// invents identifiers or timestamps itself.
type Options struct {
	ID        string
	CreatedAt time.Time
}

// ComputeProfile validates the rating set and assembles the full profile:
// dimension scores, auxiliary indices, response quality, meta. Validation
// failures propagate unchanged; a chronotype miss after successful
// validation is reported as an internal fault. No partial profile is ever
// returned.
func ComputeProfile(tax *instrument.Taxonomy, ratings map[string]int, opts Options) (*Profile, error) {
	if err := Validate(tax, ratings); err != nil {
		return nil, err
	}

	dimensions, err := ComputeDimensionScores(tax, ratings)
	if err != nil {
		return nil, err
	}

	// Validation guaranteed all 88 items, so an index failure here means the
	// engine itself is inconsistent.
	indices, err := ComputeAdditionalIndices(ratings)
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	mainItems, reversedTotal := 0, 0
	for _, res := range dimensions {
		mainItems += res.NumItems
		reversedTotal += res.NumReversed
	}

	profile := &Profile{
		Dimensions:        dimensions,
		AdditionalIndices: indices,
		ResponseQuality:   CheckResponseQuality(ratings),
		Meta: Meta{
			Instrument:         InstrumentName,
			Version:            EngineVersion,
			NumItemsInstrument: instrument.NumItems,
			NumItemsAnswered:   len(ratings),
			NumItemsMainScales: mainItems,
			NumItemsAdditional: instrument.NumAuxiliary,
			NumReversedTotal:   reversedTotal,
			LikertMin:          instrument.LikertMin,
			LikertMax:          instrument.LikertMax,
			ScoreMin:           instrument.ScoreMin,
			ScoreMax:           instrument.ScoreMax,
		},
	}
	if opts.ID != "" {
		id := opts.ID
		profile.ID = &id
	}
	if !opts.CreatedAt.IsZero() {
		profile.Meta.CreatedAt = opts.CreatedAt.UTC().Format(time.RFC3339)
	}
	return profile, nil
}
