package scoring

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

// Interpretation buckets for the chronotype balance (evening minus morning
// on the raw 1..5 scale).
const (
	strongMorningCutoff = -0.8
	mildMorningCutoff   = -0.4
	mildEveningCutoff   = 0.4
	strongEveningCutoff = 0.8
)

// ChronotypeIndex summarizes the six chronotype items into morning and
// evening tendencies (0-100) and their raw balance.
type ChronotypeIndex struct {
	Label           string  `json:"label"`
	MorningTendency float64 `json:"morning_tendency"`
	EveningTendency float64 `json:"evening_tendency"`
	BalanceScore    float64 `json:"balance_score"`
	Interpretation  string  `json:"interpretation"`
}

// AvoidanceIndex mirrors a dimension score over the two avoidance items.
type AvoidanceIndex struct {
	Label   string   `json:"label"`
	Score   float64  `json:"score"`
	Level   Level    `json:"level"`
	RawMean float64  `json:"raw_mean"`
	Items   []string `json:"items"`
}

// AdditionalIndices bundles the auxiliary indices of a profile. Chronotype
// is always present; the avoidance index only when both its items were
// answered.
type AdditionalIndices struct {
	Chronotype          ChronotypeIndex `json:"chronotype"`
	MotivationAvoidance *AvoidanceIndex `json:"motivation_avoidance,omitempty"`
}

// ComputeChronotypeIndex derives the chronotype from its six fixed items.
// Every item must be present; a full-instrument validation upstream
// guarantees that, so a miss here is a consistency fault, not user error.
func ComputeChronotypeIndex(ratings map[string]int) (ChronotypeIndex, error) {
	morning, err := collectAux(ratings, instrument.MorningItems)
	if err != nil {
		return ChronotypeIndex{}, err
	}
	evening, err := collectAux(ratings, instrument.EveningItems)
	if err != nil {
		return ChronotypeIndex{}, err
	}

	morningRaw, err := stats.Mean(morning)
	if err != nil {
		return ChronotypeIndex{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	eveningRaw, err := stats.Mean(evening)
	if err != nil {
		return ChronotypeIndex{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	balance := round2(eveningRaw - morningRaw)
	return ChronotypeIndex{
		Label:           "Chronotype Profile",
		MorningTendency: round1(RescaleToScore(morningRaw)),
		EveningTendency: round1(RescaleToScore(eveningRaw)),
		BalanceScore:    balance,
		Interpretation:  interpretBalance(balance),
	}, nil
}

// ComputeAdditionalIndices computes the chronotype and, when both of its
// items are present, the avoidance index. Avoidance absence is not an error.
func ComputeAdditionalIndices(ratings map[string]int) (AdditionalIndices, error) {
	chrono, err := ComputeChronotypeIndex(ratings)
	if err != nil {
		return AdditionalIndices{}, err
	}
	indices := AdditionalIndices{Chronotype: chrono}

	var values []float64
	for _, code := range instrument.AvoidanceItems {
		v, ok := ratings[code]
		if !ok {
			return indices, nil
		}
		values = append(values, float64(v))
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return AdditionalIndices{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	score := round1(RescaleToScore(mean))
	indices.MotivationAvoidance = &AvoidanceIndex{
		Label:   "Avoidance Orientation (Motivation)",
		Score:   score,
		Level:   ClassifyScore(score),
		RawMean: round2(mean),
		Items:   append([]string{}, instrument.AvoidanceItems...),
	}
	return indices, nil
}

func collectAux(ratings map[string]int, codes []string) ([]float64, error) {
	values := make([]float64, 0, len(codes))
	for _, code := range codes {
		v, ok := ratings[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingChronotypeItem, code)
		}
		values = append(values, float64(v))
	}
	return values, nil
}

func interpretBalance(balance float64) string {
	switch {
	case balance < strongMorningCutoff:
		return "strong morning type"
	case balance < mildMorningCutoff:
		return "mild morning type"
	case balance < mildEveningCutoff:
		return "neutral/intermediate"
	case balance < strongEveningCutoff:
		return "mild evening type"
	default:
		return "strong evening type"
	}
}
