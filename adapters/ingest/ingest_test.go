package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fullCSV(t *testing.T, tax *instrument.Taxonomy, rating int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("item_code,rating\n")
	for _, code := range tax.Codes() {
		fmt.Fprintf(&sb, "%s,%d\n", code, rating)
	}
	return writeFile(t, "ratings.csv", sb.String())
}

func TestCSVReadComplete(t *testing.T) {
	tax := instrument.MustLoad()
	src := NewFileSource(tax, fullCSV(t, tax, 4))

	values, err := src.Read()
	require.NoError(t, err)
	require.Len(t, values, instrument.NumItems)

	ratings, err := scoring.ValidateRaw(tax, values)
	require.NoError(t, err)
	require.Equal(t, 4, ratings["SO11"])
}

func TestCSVColumnOrderAndExtras(t *testing.T) {
	tax := instrument.MustLoad()
	path := writeFile(t, "ratings.csv",
		"respondent,rating,item_code,notes\n"+
			"x,2,A1,first\n"+
			"x,5,M9,\n")

	values, err := NewFileSource(tax, path).Read()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"A1": 2, "M9": 5}, values)
}

func TestCSVSkipsBlankCodes(t *testing.T) {
	tax := instrument.MustLoad()
	path := writeFile(t, "ratings.csv",
		"item_code,rating\n"+
			"A1,3\n"+
			",9\n"+
			"A2,4\n")

	values, err := NewFileSource(tax, path).Read()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"A1": 3, "A2": 4}, values)
}

func TestCSVRowContractErrors(t *testing.T) {
	tax := instrument.MustLoad()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing columns",
			content: "code,value\nA1,3\n",
			wantErr: `"item_code" and "rating" columns`,
		},
		{
			name:    "unknown code",
			content: "item_code,rating\nQ1,3\n",
			wantErr: `unknown item code "Q1" (line 2)`,
		},
		{
			name:    "duplicate code",
			content: "item_code,rating\nA1,3\nA1,4\n",
			wantErr: `duplicate item code "A1" (line 3)`,
		},
		{
			name:    "non-integer rating",
			content: "item_code,rating\nA1,often\n",
			wantErr: `invalid rating "often" for item "A1" (line 2)`,
		},
		{
			name:    "out of range",
			content: "item_code,rating\nA1,7\n",
			wantErr: `rating 7 for item "A1" out of range 1..5 (line 2)`,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: "is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "ratings.csv", tt.content)
			_, err := NewFileSource(tax, path).Read()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestXLSXRead(t *testing.T) {
	tax := instrument.MustLoad()
	path := filepath.Join(t.TempDir(), "ratings.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "item_code"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "rating"))
	for i, code := range tax.Codes() {
		row := i + 2
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("A%d", row), code))
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("B%d", row), 3))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	values, err := NewFileSource(tax, path).Read()
	require.NoError(t, err)
	require.Len(t, values, instrument.NumItems)
	require.Equal(t, 3, values["R12"])
}

func TestJSONRead(t *testing.T) {
	tax := instrument.MustLoad()
	ratings := make(map[string]int, tax.Len())
	for _, code := range tax.Codes() {
		ratings[code] = 5
	}
	raw, err := json.Marshal(ratings)
	require.NoError(t, err)
	path := writeFile(t, "ratings.json", string(raw))

	values, err := NewFileSource(tax, path).Read()
	require.NoError(t, err)

	typed, err := scoring.ValidateRaw(tax, values)
	require.NoError(t, err)
	require.Equal(t, 5, typed["E16"])
}

func TestJSONReadRejectsNonObject(t *testing.T) {
	tax := instrument.MustLoad()
	path := writeFile(t, "ratings.json", `[1,2,3]`)
	_, err := NewFileSource(tax, path).Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "flat JSON object")
}

func TestUnsupportedFormat(t *testing.T) {
	tax := instrument.MustLoad()
	path := writeFile(t, "ratings.txt", "A1 3")
	_, err := NewFileSource(tax, path).Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported ratings format")
}

func TestMissingFile(t *testing.T) {
	tax := instrument.MustLoad()
	_, err := NewFileSource(tax, filepath.Join(t.TempDir(), "absent.csv")).Read()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
