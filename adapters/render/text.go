package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

const (
	ruleWidth = 60
	barWidth  = 50
)

// TextOptions controls the terminal rendering.
type TextOptions struct {
	// Color enables ANSI colors for levels and the quality flag.
	Color bool
}

var (
	levelColors = map[scoring.Level]*color.Color{
		scoring.LevelLow:  color.New(color.FgRed),
		scoring.LevelMid:  color.New(color.FgYellow),
		scoring.LevelHigh: color.New(color.FgGreen),
	}
	okColor      = color.New(color.FgGreen)
	checkColor   = color.New(color.FgRed)
	morningColor = color.New(color.FgHiYellow)
	eveningColor = color.New(color.FgHiBlue)
)

// WriteText renders the profile as a fixed-width terminal report.
func WriteText(w io.Writer, profile *scoring.Profile, opts TextOptions) error {
	var sb strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	thin := strings.Repeat("-", ruleWidth)

	sb.WriteString(rule + "\n")
	sb.WriteString("  " + strings.ToUpper(profile.Meta.Instrument) + "\n")
	if profile.ID != nil {
		fmt.Fprintf(&sb, "  ID: %s\n", *profile.ID)
	}
	if profile.Meta.CreatedAt != "" {
		fmt.Fprintf(&sb, "  Created: %s\n", profile.Meta.CreatedAt)
	}
	sb.WriteString(rule + "\n\n")

	writeQualitySection(&sb, profile.ResponseQuality, opts)

	sb.WriteString("DIMENSIONS\n")
	sb.WriteString(thin + "\n")
	for _, dim := range instrument.Dimensions() {
		res, ok := profile.Dimensions[dim]
		if !ok {
			continue
		}
		sb.WriteString(res.Label + "\n")
		fmt.Fprintf(&sb, "  [%s] %5.1f/100 (%s)\n",
			scoreBar(res.Score), res.Score, paint(opts, levelColors[res.Level], string(res.Level)))
		fmt.Fprintf(&sb, "  Items: %d | Reversed: %d | Raw mean: %.2f\n\n",
			res.NumItems, res.NumReversed, res.RawMean)
	}

	writeIndicesSection(&sb, profile.AdditionalIndices, opts)

	sb.WriteString("META\n")
	sb.WriteString(thin + "\n")
	meta := profile.Meta
	fmt.Fprintf(&sb, "  Engine version: %s\n", meta.Version)
	fmt.Fprintf(&sb, "  Items answered: %d of %d (%d main-scale, %d auxiliary)\n",
		meta.NumItemsAnswered, meta.NumItemsInstrument, meta.NumItemsMainScales, meta.NumItemsAdditional)
	fmt.Fprintf(&sb, "  Reverse-scored items: %d\n", meta.NumReversedTotal)
	fmt.Fprintf(&sb, "  Scales: ratings %d..%d, scores %d..%d\n",
		meta.LikertMin, meta.LikertMax, meta.ScoreMin, meta.ScoreMax)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeQualitySection(sb *strings.Builder, quality scoring.ResponseQuality, opts TextOptions) {
	flag := strings.ToUpper(quality.QualityFlag)
	flagColor := okColor
	if quality.QualityFlag == scoring.QualityCheck {
		flagColor = checkColor
	}
	fmt.Fprintf(sb, "RESPONSE QUALITY: %s\n", paint(opts, flagColor, flag))
	fmt.Fprintf(sb, "  Distinct values: %d | Variance: %.2f | Mean response: %.2f\n",
		quality.NumUniqueResponses, quality.ResponseVariance, quality.MeanResponse)
	for _, warning := range quality.Warnings {
		fmt.Fprintf(sb, "  ! %s\n", warning)
	}
	sb.WriteString("\n")
}

func writeIndicesSection(sb *strings.Builder, indices scoring.AdditionalIndices, opts TextOptions) {
	thin := strings.Repeat("-", ruleWidth)
	chrono := indices.Chronotype

	sb.WriteString("ADDITIONAL INDICES\n")
	sb.WriteString(thin + "\n")
	sb.WriteString(chrono.Label + "\n")
	fmt.Fprintf(sb, "  %s %5.1f | %s %5.1f\n",
		paint(opts, morningColor, "Morning"), chrono.MorningTendency,
		paint(opts, eveningColor, "Evening"), chrono.EveningTendency)
	fmt.Fprintf(sb, "  Balance: %+.2f -> %s\n\n", chrono.BalanceScore, chrono.Interpretation)

	if av := indices.MotivationAvoidance; av != nil {
		sb.WriteString(av.Label + "\n")
		fmt.Fprintf(sb, "  [%s] %5.1f/100 (%s)\n",
			scoreBar(av.Score), av.Score, paint(opts, levelColors[av.Level], string(av.Level)))
		fmt.Fprintf(sb, "  Raw mean: %.2f\n\n", av.RawMean)
	}
}

// scoreBar renders a 0-100 score as a fixed-width hash bar, one hash per
// two points.
func scoreBar(score float64) string {
	filled := int(score / 2)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("#", filled) + strings.Repeat(" ", barWidth-filled)
}

func paint(opts TextOptions, c *color.Color, s string) string {
	if !opts.Color || c == nil {
		return s
	}
	return c.Sprint(s)
}
