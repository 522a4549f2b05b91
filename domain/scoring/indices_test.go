package scoring

import (
	"errors"
	"strings"
	"testing"
)

func TestComputeChronotypeIndex(t *testing.T) {
	// Morning items A8, A13, A14, A15; evening items A9, A16.
	ratings := map[string]int{
		"A8": 4, "A13": 4, "A14": 5, "A15": 4, // morning mean 4.25
		"A9": 2, "A16": 1, // evening mean 1.5
	}
	idx, err := ComputeChronotypeIndex(ratings)
	if err != nil {
		t.Fatalf("ComputeChronotypeIndex failed: %v", err)
	}
	if idx.MorningTendency != 81.3 {
		t.Errorf("morning_tendency = %v, want 81.3", idx.MorningTendency)
	}
	if idx.EveningTendency != 12.5 {
		t.Errorf("evening_tendency = %v, want 12.5", idx.EveningTendency)
	}
	if idx.BalanceScore != -2.75 {
		t.Errorf("balance_score = %v, want -2.75", idx.BalanceScore)
	}
	if idx.Interpretation != "strong morning type" {
		t.Errorf("interpretation = %q, want strong morning type", idx.Interpretation)
	}
}

func TestChronotypeInterpretationBuckets(t *testing.T) {
	tests := []struct {
		balance float64
		want    string
	}{
		{-2, "strong morning type"},
		{-0.81, "strong morning type"},
		{-0.8, "mild morning type"},
		{-0.41, "mild morning type"},
		{-0.4, "neutral/intermediate"},
		{0, "neutral/intermediate"},
		{0.39, "neutral/intermediate"},
		{0.4, "mild evening type"},
		{0.79, "mild evening type"},
		{0.8, "strong evening type"},
		{2, "strong evening type"},
	}
	for _, tt := range tests {
		if got := interpretBalance(tt.balance); got != tt.want {
			t.Errorf("interpretBalance(%v) = %q, want %q", tt.balance, got, tt.want)
		}
	}
}

func TestChronotypeMissingItemFault(t *testing.T) {
	ratings := map[string]int{
		"A8": 3, "A14": 3, "A15": 3, // A13 absent
		"A9": 3, "A16": 3,
	}
	_, err := ComputeChronotypeIndex(ratings)
	if !errors.Is(err, ErrMissingChronotypeItem) {
		t.Fatalf("ComputeChronotypeIndex = %v, want ErrMissingChronotypeItem", err)
	}
	if got := err.Error(); !strings.Contains(got, "A13") {
		t.Errorf("message %q does not name the absent item", got)
	}
}

func TestAdditionalIndicesOmitAvoidanceWhenItemsAbsent(t *testing.T) {
	tax := testTaxonomy(t)
	ratings := fullRatings(tax, 4)
	delete(ratings, "M2")
	delete(ratings, "M9")

	indices, err := ComputeAdditionalIndices(ratings)
	if err != nil {
		t.Fatalf("ComputeAdditionalIndices failed: %v", err)
	}
	if indices.MotivationAvoidance != nil {
		t.Error("motivation_avoidance present despite missing items")
	}
	if indices.Chronotype.MorningTendency != 75 {
		t.Errorf("chronotype morning_tendency = %v, want 75", indices.Chronotype.MorningTendency)
	}
}

func TestAdditionalIndicesAvoidance(t *testing.T) {
	tax := testTaxonomy(t)
	ratings := fullRatings(tax, 2)
	ratings["M2"] = 5
	ratings["M9"] = 4

	indices, err := ComputeAdditionalIndices(ratings)
	if err != nil {
		t.Fatalf("ComputeAdditionalIndices failed: %v", err)
	}
	av := indices.MotivationAvoidance
	if av == nil {
		t.Fatal("motivation_avoidance absent")
	}
	if av.Score != 87.5 {
		t.Errorf("score = %v, want 87.5", av.Score)
	}
	if av.Level != LevelHigh {
		t.Errorf("level = %s, want high", av.Level)
	}
	if av.RawMean != 4.5 {
		t.Errorf("raw_mean = %v, want 4.5", av.RawMean)
	}
}
