package scoring

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

// DimensionResult is the scored outcome of one dimension.
type DimensionResult struct {
	Label       string   `json:"label"`
	Score       float64  `json:"score"`
	Level       Level    `json:"level"`
	NumItems    int      `json:"num_items"`
	NumReversed int      `json:"num_reversed"`
	RawMean     float64  `json:"raw_mean"`
	Items       []string `json:"items"`
}

// ComputeDimensionScores aggregates the main-scale items of every dimension
// present in the rating set. Reverse-scored items are inverted before the
// mean; raw_mean keeps the uninverted values. A dimension with no collected
// items is an internal fault: a validated rating set always covers all six.
func ComputeDimensionScores(tax *instrument.Taxonomy, ratings map[string]int) (map[instrument.Dimension]DimensionResult, error) {
	results := make(map[instrument.Dimension]DimensionResult, instrument.NumDimensions)
	for _, dim := range instrument.Dimensions() {
		res, err := scoreDimension(tax, dim, ratings)
		if err != nil {
			return nil, err
		}
		results[dim] = res
	}
	return results, nil
}

func scoreDimension(tax *instrument.Taxonomy, dim instrument.Dimension, ratings map[string]int) (DimensionResult, error) {
	var (
		scored   []float64
		raw      []float64
		codes    []string
		reversed int
	)
	for _, def := range tax.DimensionItems(dim) {
		v, ok := ratings[def.Code]
		if !ok {
			continue
		}
		value := v
		if def.ReverseScored {
			rv, err := Reverse(v)
			if err != nil {
				return DimensionResult{}, err
			}
			value = rv
			reversed++
		}
		scored = append(scored, float64(value))
		raw = append(raw, float64(v))
		codes = append(codes, def.Code)
	}
	if len(scored) == 0 {
		return DimensionResult{}, fmt.Errorf("%w: %s", ErrEmptyDimension, dim)
	}

	mean, err := stats.Mean(scored)
	if err != nil {
		return DimensionResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	rawMean, err := stats.Mean(raw)
	if err != nil {
		return DimensionResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	score := round1(RescaleToScore(mean))
	sort.Strings(codes)
	return DimensionResult{
		Label:       dim.Label(),
		Score:       score,
		Level:       ClassifyScore(score),
		NumItems:    len(codes),
		NumReversed: reversed,
		RawMean:     round2(rawMean),
		Items:       codes,
	}, nil
}
