package scoring

import (
	"github.com/montanaflynn/stats"
)

// Quality flags and the conditions that trigger a "check".
const (
	QualityOK    = "ok"
	QualityCheck = "check"

	maxUniqueForFlag = 2
	minVarianceForOK = 0.5
	warnStraightLine = "Only 1-2 distinct response values used"
	warnLowVariation = "Very low response variation"
)

// ResponseQuality describes how trustworthy a rating set looks. Advisory
// only: a "check" flag never blocks scoring.
type ResponseQuality struct {
	NumUniqueResponses int      `json:"num_unique_responses"`
	ResponseVariance   float64  `json:"response_variance"`
	MeanResponse       float64  `json:"mean_response"`
	QualityFlag        string   `json:"quality_flag"`
	Warnings           []string `json:"warnings,omitempty"`
}

// CheckResponseQuality inspects the raw (uninverted) ratings for
// straight-lining and low variance. Variance is the population variance,
// divisor n.
func CheckResponseQuality(ratings map[string]int) ResponseQuality {
	if len(ratings) == 0 {
		return ResponseQuality{
			QualityFlag: QualityCheck,
			Warnings:    []string{warnStraightLine, warnLowVariation},
		}
	}

	values := make([]float64, 0, len(ratings))
	unique := make(map[int]bool, likertMax)
	for _, v := range ratings {
		values = append(values, float64(v))
		unique[v] = true
	}

	mean, _ := stats.Mean(values)
	variance, _ := stats.PopulationVariance(values)

	quality := ResponseQuality{
		NumUniqueResponses: len(unique),
		ResponseVariance:   round2(variance),
		MeanResponse:       round2(mean),
		QualityFlag:        QualityOK,
	}
	if quality.NumUniqueResponses <= maxUniqueForFlag {
		quality.Warnings = append(quality.Warnings, warnStraightLine)
	}
	if variance < minVarianceForOK {
		quality.Warnings = append(quality.Warnings, warnLowVariation)
	}
	if len(quality.Warnings) > 0 {
		quality.QualityFlag = QualityCheck
	}
	return quality
}
