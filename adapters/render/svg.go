package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

// Report palette, shared with the HTML template.
const (
	colorLow     = "#E63946"
	colorMid     = "#F4A261"
	colorHigh    = "#2A9D8F"
	colorMorning = "#F4D03F"
	colorEvening = "#5DADE2"
	colorGrid    = "#D0D7DE"
	colorInk     = "#24292F"
)

func levelColor(level scoring.Level) string {
	switch level {
	case scoring.LevelLow:
		return colorLow
	case scoring.LevelHigh:
		return colorHigh
	default:
		return colorMid
	}
}

// RadarSVG draws the six dimension scores as a radar chart.
func RadarSVG(profile *scoring.Profile) string {
	const (
		size   = 320.0
		cx     = size / 2
		cy     = size / 2
		radius = 110.0
	)
	dims := instrument.Dimensions()

	point := func(axis int, score float64) (float64, float64) {
		angle := -math.Pi/2 + float64(axis)*2*math.Pi/float64(len(dims))
		r := score / 100 * radius
		return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" role="img">`, size, size)

	// Grid rings and axes
	for _, ring := range []float64{20, 40, 60, 80, 100} {
		sb.WriteString(`<polygon points="`)
		for i := range dims {
			x, y := point(i, ring)
			fmt.Fprintf(&sb, "%.1f,%.1f ", x, y)
		}
		fmt.Fprintf(&sb, `" fill="none" stroke="%s" stroke-width="1"/>`, colorGrid)
	}
	for i := range dims {
		x, y := point(i, 100)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`,
			cx, cy, x, y, colorGrid)
	}

	// Score polygon
	sb.WriteString(`<polygon points="`)
	for i, dim := range dims {
		score := profile.Dimensions[dim].Score
		x, y := point(i, score)
		fmt.Fprintf(&sb, "%.1f,%.1f ", x, y)
	}
	fmt.Fprintf(&sb, `" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="2"/>`, colorHigh, colorHigh)

	// Axis labels
	for i, dim := range dims {
		angle := -math.Pi/2 + float64(i)*2*math.Pi/float64(len(dims))
		x := cx + (radius+24)*math.Cos(angle)
		y := cy + (radius+24)*math.Sin(angle)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="12" fill="%s">%s</text>`,
			x, y, colorInk, html.EscapeString(string(dim)))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// BarsSVG draws the dimension scores as level-colored horizontal bars.
func BarsSVG(profile *scoring.Profile) string {
	const (
		width     = 560.0
		labelCol  = 250.0
		barScale  = 2.4 // score 100 -> 240px
		barHeight = 20.0
		rowGap    = 32.0
		top       = 16.0
	)
	dims := instrument.Dimensions()
	height := top + float64(len(dims))*rowGap + 8

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" role="img">`, width, height)
	for i, dim := range dims {
		res := profile.Dimensions[dim]
		y := top + float64(i)*rowGap
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-size="13" fill="%s">%s</text>`,
			labelCol-10, y+barHeight/2, colorInk, html.EscapeString(res.Label))
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="3"/>`,
			labelCol, y, 100*barScale, barHeight, colorGrid)
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="3"/>`,
			labelCol, y, res.Score*barScale, barHeight, levelColor(res.Level))
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" dominant-baseline="middle" font-size="12" fill="%s">%.1f</text>`,
			labelCol+100*barScale+8, y+barHeight/2, colorInk, res.Score)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// ChronotypeSVG draws the morning and evening tendencies with the balance
// interpretation underneath.
func ChronotypeSVG(idx scoring.ChronotypeIndex) string {
	const (
		width     = 420.0
		height    = 120.0
		labelCol  = 90.0
		barScale  = 2.4
		barHeight = 20.0
	)
	rows := []struct {
		label string
		value float64
		fill  string
	}{
		{"Morning", idx.MorningTendency, colorMorning},
		{"Evening", idx.EveningTendency, colorEvening},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" role="img">`, width, height)
	for i, row := range rows {
		y := 16.0 + float64(i)*32
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-size="13" fill="%s">%s</text>`,
			labelCol-10, y+barHeight/2, colorInk, row.label)
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="3"/>`,
			labelCol, y, 100*barScale, barHeight, colorGrid)
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="3"/>`,
			labelCol, y, row.value*barScale, barHeight, row.fill)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" dominant-baseline="middle" font-size="12" fill="%s">%.1f</text>`,
			labelCol+100*barScale+8, y+barHeight/2, colorInk, row.value)
	}
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="13" fill="%s">Balance %+.2f: %s</text>`,
		labelCol, 96.0, colorInk, idx.BalanceScore, html.EscapeString(idx.Interpretation))
	sb.WriteString(`</svg>`)
	return sb.String()
}
