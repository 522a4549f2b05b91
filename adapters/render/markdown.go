package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

// WriteMarkdown renders the profile as a GitHub-flavored markdown report.
// The HTML report reuses this body.
func WriteMarkdown(w io.Writer, profile *scoring.Profile) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", profile.Meta.Instrument)
	if profile.ID != nil {
		fmt.Fprintf(&sb, "**Respondent:** %s", *profile.ID)
		if profile.Meta.CreatedAt != "" {
			fmt.Fprintf(&sb, " · **Created:** %s", profile.Meta.CreatedAt)
		}
		sb.WriteString("\n\n")
	} else if profile.Meta.CreatedAt != "" {
		fmt.Fprintf(&sb, "**Created:** %s\n\n", profile.Meta.CreatedAt)
	}

	quality := profile.ResponseQuality
	fmt.Fprintf(&sb, "## Response Quality: %s\n\n", strings.ToUpper(quality.QualityFlag))
	fmt.Fprintf(&sb, "| Distinct values | Variance | Mean response |\n")
	fmt.Fprintf(&sb, "|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %.2f | %.2f |\n\n", quality.NumUniqueResponses, quality.ResponseVariance, quality.MeanResponse)
	for _, warning := range quality.Warnings {
		fmt.Fprintf(&sb, "> %s\n", warning)
	}
	if len(quality.Warnings) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("## Dimensions\n\n")
	sb.WriteString("| Dimension | Score | Level | Items | Reversed | Raw mean |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, dim := range instrument.Dimensions() {
		res, ok := profile.Dimensions[dim]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "| %s | %.1f | %s | %d | %d | %.2f |\n",
			res.Label, res.Score, res.Level, res.NumItems, res.NumReversed, res.RawMean)
	}
	sb.WriteString("\n")

	chrono := profile.AdditionalIndices.Chronotype
	fmt.Fprintf(&sb, "## %s\n\n", chrono.Label)
	fmt.Fprintf(&sb, "| Morning tendency | Evening tendency | Balance | Interpretation |\n")
	fmt.Fprintf(&sb, "|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %.1f | %.1f | %+.2f | %s |\n\n",
		chrono.MorningTendency, chrono.EveningTendency, chrono.BalanceScore, chrono.Interpretation)

	if av := profile.AdditionalIndices.MotivationAvoidance; av != nil {
		fmt.Fprintf(&sb, "## %s\n\n", av.Label)
		fmt.Fprintf(&sb, "| Score | Level | Raw mean |\n")
		fmt.Fprintf(&sb, "|---|---|---|\n")
		fmt.Fprintf(&sb, "| %.1f | %s | %.2f |\n\n", av.Score, av.Level, av.RawMean)
	}

	meta := profile.Meta
	sb.WriteString("## Instrument\n\n")
	fmt.Fprintf(&sb, "- Engine version %s\n", meta.Version)
	fmt.Fprintf(&sb, "- %d of %d items answered (%d main-scale, %d auxiliary)\n",
		meta.NumItemsAnswered, meta.NumItemsInstrument, meta.NumItemsMainScales, meta.NumItemsAdditional)
	fmt.Fprintf(&sb, "- %d reverse-scored items\n", meta.NumReversedTotal)
	fmt.Fprintf(&sb, "- Ratings %d..%d, scores %d..%d\n",
		meta.LikertMin, meta.LikertMax, meta.ScoreMin, meta.ScoreMax)

	_, err := io.WriteString(w, sb.String())
	return err
}
