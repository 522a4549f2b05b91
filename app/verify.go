package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

// CheckResult is the outcome of one self-check.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// VerifyReport aggregates the self-check results.
type VerifyReport struct {
	Checks []CheckResult `json:"checks"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
}

// OK reports whether every check passed.
func (r *VerifyReport) OK() bool {
	return r.Failed == 0
}

func (r *VerifyReport) add(name string, err error) {
	result := CheckResult{Name: name, OK: err == nil}
	if err != nil {
		result.Detail = err.Error()
		r.Failed++
	} else {
		r.Passed++
	}
	r.Checks = append(r.Checks, result)
}

// SelfCheck re-asserts the scoring invariants against the built-in item
// table. It is cheap enough to run at startup and doubles as the verify
// stage of workflows.
func SelfCheck() *VerifyReport {
	report := &VerifyReport{}

	tax, err := instrument.New()
	report.add("taxonomy loads", err)
	if err != nil {
		return report
	}

	report.add("taxonomy counts", checkTaxonomyCounts(tax))
	report.add("reverse involution", checkReverseInvolution())
	report.add("level boundaries", checkLevelBoundaries())
	report.add("midpoint profile", checkMidpointProfile(tax))
	report.add("straight-line quality flag", checkStraightLineFlag(tax))
	report.add("incomplete input rejected", checkIncompleteRejected(tax))
	report.add("chronotype golden case", checkChronotypeGolden(tax))
	report.add("deterministic output", checkDeterministicOutput(tax))

	return report
}

func checkTaxonomyCounts(tax *instrument.Taxonomy) error {
	if got := tax.Len(); got != instrument.NumItems {
		return fmt.Errorf("item count = %d, want %d", got, instrument.NumItems)
	}
	if got := len(tax.MainScaleCodes()); got != instrument.NumMainScale {
		return fmt.Errorf("main-scale count = %d, want %d", got, instrument.NumMainScale)
	}
	if got := len(tax.AuxiliaryCodes()); got != instrument.NumAuxiliary {
		return fmt.Errorf("auxiliary count = %d, want %d", got, instrument.NumAuxiliary)
	}
	reversed := 0
	for _, item := range tax.All() {
		if item.IncludeInMainScale && item.ReverseScored {
			reversed++
		}
	}
	if reversed != instrument.NumReversedMain {
		return fmt.Errorf("reversed count = %d, want %d", reversed, instrument.NumReversedMain)
	}
	if got := len(instrument.Dimensions()); got != instrument.NumDimensions {
		return fmt.Errorf("dimension count = %d, want %d", got, instrument.NumDimensions)
	}
	return nil
}

func checkReverseInvolution() error {
	for v := instrument.LikertMin; v <= instrument.LikertMax; v++ {
		once, err := scoring.Reverse(v)
		if err != nil {
			return err
		}
		twice, err := scoring.Reverse(once)
		if err != nil {
			return err
		}
		if twice != v {
			return fmt.Errorf("reverse(reverse(%d)) = %d", v, twice)
		}
	}
	if mid, _ := scoring.Reverse(3); mid != 3 {
		return fmt.Errorf("reverse(3) = %d, want 3", mid)
	}
	return nil
}

func checkLevelBoundaries() error {
	cases := []struct {
		score float64
		want  scoring.Level
	}{
		{0, scoring.LevelLow},
		{39.9, scoring.LevelLow},
		{40, scoring.LevelMid},
		{74.9, scoring.LevelMid},
		{75, scoring.LevelHigh},
		{100, scoring.LevelHigh},
	}
	for _, c := range cases {
		if got := scoring.ClassifyScore(c.score); got != c.want {
			return fmt.Errorf("classify(%.1f) = %s, want %s", c.score, got, c.want)
		}
	}
	return nil
}

func checkMidpointProfile(tax *instrument.Taxonomy) error {
	profile, err := scoring.ComputeProfile(tax, uniformRatings(tax, 3), scoring.Options{})
	if err != nil {
		return err
	}
	for dim, result := range profile.Dimensions {
		if result.Score < 45 || result.Score > 55 {
			return fmt.Errorf("dimension %s midpoint score = %.1f, want within [45,55]", dim, result.Score)
		}
	}
	return nil
}

func checkStraightLineFlag(tax *instrument.Taxonomy) error {
	quality := scoring.CheckResponseQuality(uniformRatings(tax, 2))
	if quality.QualityFlag != scoring.QualityCheck {
		return fmt.Errorf("all-2s flag = %q, want %q", quality.QualityFlag, scoring.QualityCheck)
	}
	if quality.NumUniqueResponses != 1 {
		return fmt.Errorf("all-2s unique values = %d, want 1", quality.NumUniqueResponses)
	}
	if len(quality.Warnings) != 2 {
		return fmt.Errorf("all-2s warnings = %d, want 2", len(quality.Warnings))
	}
	return nil
}

func checkIncompleteRejected(tax *instrument.Taxonomy) error {
	ratings := uniformRatings(tax, 3)
	delete(ratings, "S4")
	_, err := scoring.ComputeProfile(tax, ratings, scoring.Options{})
	if err == nil {
		return fmt.Errorf("incomplete ratings were accepted")
	}
	if !errors.Is(err, scoring.ErrIncompleteInput) {
		return fmt.Errorf("incomplete ratings: got %v, want incomplete-input error", err)
	}
	return nil
}

func checkChronotypeGolden(tax *instrument.Taxonomy) error {
	ratings := uniformRatings(tax, 3)
	ratings["A8"] = 4
	ratings["A13"] = 4
	ratings["A14"] = 5
	ratings["A15"] = 4
	ratings["A9"] = 2
	ratings["A16"] = 1
	profile, err := scoring.ComputeProfile(tax, ratings, scoring.Options{})
	if err != nil {
		return err
	}
	chrono := profile.AdditionalIndices.Chronotype
	if chrono.BalanceScore != -2.75 {
		return fmt.Errorf("balance = %.2f, want -2.75", chrono.BalanceScore)
	}
	if chrono.Interpretation != "strong morning type" {
		return fmt.Errorf("interpretation = %q, want strong morning type", chrono.Interpretation)
	}
	return nil
}

func checkDeterministicOutput(tax *instrument.Taxonomy) error {
	ratings := make(map[string]int)
	for i, code := range tax.Codes() {
		ratings[code] = (i*7)%5 + 1
	}
	opts := scoring.Options{ID: "selfcheck"}

	first, err := scoring.ComputeProfile(tax, ratings, opts)
	if err != nil {
		return err
	}
	second, err := scoring.ComputeProfile(tax, ratings, opts)
	if err != nil {
		return err
	}
	a, err := json.Marshal(first)
	if err != nil {
		return err
	}
	b, err := json.Marshal(second)
	if err != nil {
		return err
	}
	if string(a) != string(b) {
		return fmt.Errorf("repeated scoring produced different serializations")
	}
	return nil
}

func uniformRatings(tax *instrument.Taxonomy, value int) map[string]int {
	ratings := make(map[string]int, tax.Len())
	for _, code := range tax.Codes() {
		ratings[code] = value
	}
	return ratings
}
