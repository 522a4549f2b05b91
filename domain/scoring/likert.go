package scoring

import (
	"math"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

const (
	likertMin = instrument.LikertMin
	likertMax = instrument.LikertMax
	scoreMin  = instrument.ScoreMin
	scoreMax  = instrument.ScoreMax
)

// Level classifies a 0-100 score into a coarse band.
type Level string

const (
	LevelLow  Level = "low"
	LevelMid  Level = "mid"
	LevelHigh Level = "high"
)

// Classification cutoffs. A score equal to a cutoff belongs to the band
// above it.
const (
	lowCutoff  = 40.0
	highCutoff = 75.0
)

// Reverse inverts a Likert rating: 1<->5, 2<->4, 3 stays. Self-inverse over
// the valid range.
func Reverse(v int) (int, error) {
	if v < likertMin || v > likertMax {
		return 0, NewOutOfRangeError("", v)
	}
	return likertMax + likertMin - v, nil
}

// RescaleToScore maps a mean on the 1..5 Likert scale linearly onto 0..100.
func RescaleToScore(mean float64) float64 {
	return (mean - float64(likertMin)) / float64(likertMax-likertMin) * float64(scoreMax)
}

// ClassifyScore bands a 0-100 score: below 40 low, 40 to below 75 mid,
// 75 and up high.
func ClassifyScore(score float64) Level {
	switch {
	case score < lowCutoff:
		return LevelLow
	case score < highCutoff:
		return LevelMid
	default:
		return LevelHigh
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
