package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

const profileSheet = "Profile"

// sheetWriter batches cell writes so one failed call surfaces at the end
// instead of burying the layout in error checks.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

// WriteWorkbook exports the profile as an XLSX workbook with a native
// column chart of the six dimension scores.
func WriteWorkbook(path string, profile *scoring.Profile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), profileSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	w := &sheetWriter{f: f, sheet: profileSheet}

	w.set("A1", profile.Meta.Instrument)
	respondent := ""
	if profile.ID != nil {
		respondent = *profile.ID
	}
	w.set("A2", "Respondent")
	w.set("B2", respondent)
	w.set("A3", "Created")
	w.set("B3", profile.Meta.CreatedAt)
	w.set("A4", "Engine version")
	w.set("B4", profile.Meta.Version)

	headers := []string{"Dimension", "Score", "Level", "Items", "Reversed", "Raw mean"}
	for i, header := range headers {
		w.set(fmt.Sprintf("%c6", 'A'+i), header)
	}
	row := 7
	for _, dim := range instrument.Dimensions() {
		res, ok := profile.Dimensions[dim]
		if !ok {
			continue
		}
		w.set(fmt.Sprintf("A%d", row), res.Label)
		w.set(fmt.Sprintf("B%d", row), res.Score)
		w.set(fmt.Sprintf("C%d", row), string(res.Level))
		w.set(fmt.Sprintf("D%d", row), res.NumItems)
		w.set(fmt.Sprintf("E%d", row), res.NumReversed)
		w.set(fmt.Sprintf("F%d", row), res.RawMean)
		row++
	}

	chrono := profile.AdditionalIndices.Chronotype
	row += 1
	w.set(fmt.Sprintf("A%d", row), chrono.Label)
	w.set(fmt.Sprintf("A%d", row+1), "Morning tendency")
	w.set(fmt.Sprintf("B%d", row+1), chrono.MorningTendency)
	w.set(fmt.Sprintf("A%d", row+2), "Evening tendency")
	w.set(fmt.Sprintf("B%d", row+2), chrono.EveningTendency)
	w.set(fmt.Sprintf("A%d", row+3), "Balance")
	w.set(fmt.Sprintf("B%d", row+3), chrono.BalanceScore)
	w.set(fmt.Sprintf("A%d", row+4), "Interpretation")
	w.set(fmt.Sprintf("B%d", row+4), chrono.Interpretation)
	row += 6

	if av := profile.AdditionalIndices.MotivationAvoidance; av != nil {
		w.set(fmt.Sprintf("A%d", row), av.Label)
		w.set(fmt.Sprintf("A%d", row+1), "Score")
		w.set(fmt.Sprintf("B%d", row+1), av.Score)
		w.set(fmt.Sprintf("A%d", row+2), "Level")
		w.set(fmt.Sprintf("B%d", row+2), string(av.Level))
		w.set(fmt.Sprintf("A%d", row+3), "Raw mean")
		w.set(fmt.Sprintf("B%d", row+3), av.RawMean)
		row += 5
	}

	quality := profile.ResponseQuality
	w.set(fmt.Sprintf("A%d", row), "Response quality")
	w.set(fmt.Sprintf("B%d", row), quality.QualityFlag)
	w.set(fmt.Sprintf("A%d", row+1), "Distinct values")
	w.set(fmt.Sprintf("B%d", row+1), quality.NumUniqueResponses)
	w.set(fmt.Sprintf("A%d", row+2), "Variance")
	w.set(fmt.Sprintf("B%d", row+2), quality.ResponseVariance)
	w.set(fmt.Sprintf("A%d", row+3), "Mean response")
	w.set(fmt.Sprintf("B%d", row+3), quality.MeanResponse)
	for i, warning := range quality.Warnings {
		w.set(fmt.Sprintf("A%d", row+4+i), "Warning")
		w.set(fmt.Sprintf("B%d", row+4+i), warning)
	}

	if w.err != nil {
		return fmt.Errorf("failed to fill workbook: %w", w.err)
	}
	if err := f.SetColWidth(profileSheet, "A", "A", 38); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Score",
			Categories: fmt.Sprintf("%s!$A$7:$A$12", profileSheet),
			Values:     fmt.Sprintf("%s!$B$7:$B$12", profileSheet),
		}},
		Title:  []excelize.RichTextRun{{Text: "Dimension scores"}},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := f.AddChart(profileSheet, "H6", chart); err != nil {
		return fmt.Errorf("failed to add chart: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
