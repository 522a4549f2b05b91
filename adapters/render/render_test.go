package render

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

func sampleProfile(t *testing.T) *scoring.Profile {
	t.Helper()
	tax, err := instrument.New()
	require.NoError(t, err)

	ratings := make(map[string]int, tax.Len())
	for i, code := range tax.Codes() {
		ratings[code] = (i*3)%5 + 1
	}
	profile, err := scoring.ComputeProfile(tax, ratings, scoring.Options{
		ID:        "sample-1",
		CreatedAt: time.Date(2026, 4, 18, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return profile
}

func TestWriteJSON(t *testing.T) {
	profile := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, profile))
	require.True(t, strings.HasSuffix(buf.String(), "\n"))

	var decoded struct {
		ID         *string                    `json:"id"`
		Dimensions map[string]json.RawMessage `json:"dimensions"`
		Meta       struct {
			NumItemsInstrument int `json:"num_items_instrument"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.NotNil(t, decoded.ID)
	require.Equal(t, "sample-1", *decoded.ID)
	require.Len(t, decoded.Dimensions, instrument.NumDimensions)
	require.Equal(t, instrument.NumItems, decoded.Meta.NumItemsInstrument)
}

func TestWriteText(t *testing.T) {
	profile := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, profile, TextOptions{}))

	out := buf.String()
	require.Contains(t, out, strings.ToUpper(scoring.InstrumentName))
	require.Contains(t, out, "ID: sample-1")
	require.Contains(t, out, "Attention Architecture")
	require.Contains(t, out, "Chronotype Profile")
	require.Contains(t, out, "RESPONSE QUALITY")
	require.Contains(t, out, "#")
	require.NotContains(t, out, "\x1b[", "plain rendering must not emit ANSI codes")
}

func TestWriteTextOmitsAbsentAvoidance(t *testing.T) {
	profile := sampleProfile(t)
	profile.AdditionalIndices.MotivationAvoidance = nil

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, profile, TextOptions{}))
	require.NotContains(t, buf.String(), "Avoidance Orientation")
}

func TestWriteMarkdown(t *testing.T) {
	profile := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, profile))

	out := buf.String()
	require.Contains(t, out, "# "+scoring.InstrumentName)
	require.Contains(t, out, "## Dimensions")
	require.Contains(t, out, "| Attention Architecture |")
	require.Contains(t, out, "| Dimension | Score | Level | Items | Reversed | Raw mean |")
	require.Contains(t, out, "## Chronotype Profile")
}

func TestWriteHTML(t *testing.T) {
	profile := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, profile))

	out := buf.String()
	require.Contains(t, out, "<!DOCTYPE html>")
	require.Contains(t, out, "<svg")
	require.Contains(t, out, "Response quality")
	require.Contains(t, out, "Attention Architecture")
	require.Contains(t, out, "engine "+scoring.EngineVersion)
}

func TestSVGEscapesLabels(t *testing.T) {
	profile := sampleProfile(t)
	bars := BarsSVG(profile)
	require.Contains(t, bars, "Executive Function &amp; Need for Structure")
	require.NotContains(t, bars, "& Need")
}

func TestRadarSVGCoversAllDimensions(t *testing.T) {
	profile := sampleProfile(t)
	radar := RadarSVG(profile)
	for _, dim := range instrument.Dimensions() {
		require.Contains(t, radar, ">"+string(dim)+"<")
	}
}

func TestWriteWorkbook(t *testing.T) {
	profile := sampleProfile(t)
	path := filepath.Join(t.TempDir(), "profile.xlsx")
	require.NoError(t, WriteWorkbook(path, profile))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(profileSheet, "A7")
	require.NoError(t, err)
	require.Equal(t, "Attention Architecture", label)

	name, err := f.GetCellValue(profileSheet, "A1")
	require.NoError(t, err)
	require.Equal(t, scoring.InstrumentName, name)
}
