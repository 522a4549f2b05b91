package scoring

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

func testTaxonomy(t *testing.T) *instrument.Taxonomy {
	t.Helper()
	tax, err := instrument.New()
	if err != nil {
		t.Fatalf("taxonomy failed to load: %v", err)
	}
	return tax
}

func fullRatings(tax *instrument.Taxonomy, value int) map[string]int {
	ratings := make(map[string]int, tax.Len())
	for _, code := range tax.Codes() {
		ratings[code] = value
	}
	return ratings
}

func TestComputeProfile(t *testing.T) {
	tax := testTaxonomy(t)
	profile, err := ComputeProfile(tax, fullRatings(tax, 3), Options{ID: "probe-1"})
	if err != nil {
		t.Fatalf("ComputeProfile failed: %v", err)
	}

	if profile.ID == nil || *profile.ID != "probe-1" {
		t.Errorf("id = %v, want probe-1", profile.ID)
	}
	if len(profile.Dimensions) != instrument.NumDimensions {
		t.Errorf("dimensions = %d, want %d", len(profile.Dimensions), instrument.NumDimensions)
	}
	if profile.AdditionalIndices.MotivationAvoidance == nil {
		t.Error("motivation_avoidance absent from a complete rating set")
	}

	meta := profile.Meta
	if meta.NumItemsInstrument != instrument.NumItems {
		t.Errorf("num_items_instrument = %d, want %d", meta.NumItemsInstrument, instrument.NumItems)
	}
	if meta.NumItemsAnswered != instrument.NumItems {
		t.Errorf("num_items_answered = %d, want %d", meta.NumItemsAnswered, instrument.NumItems)
	}
	if meta.NumItemsMainScales != instrument.NumMainScale {
		t.Errorf("num_items_main_scales = %d, want %d", meta.NumItemsMainScales, instrument.NumMainScale)
	}
	if meta.NumItemsAdditional != instrument.NumAuxiliary {
		t.Errorf("num_items_additional = %d, want %d", meta.NumItemsAdditional, instrument.NumAuxiliary)
	}
	if meta.NumReversedTotal != instrument.NumReversedMain {
		t.Errorf("num_reversed_total = %d, want %d", meta.NumReversedTotal, instrument.NumReversedMain)
	}
	if meta.LikertMin != 1 || meta.LikertMax != 5 || meta.ScoreMin != 0 || meta.ScoreMax != 100 {
		t.Errorf("scale bounds = %d..%d / %d..%d, want 1..5 / 0..100",
			meta.LikertMin, meta.LikertMax, meta.ScoreMin, meta.ScoreMax)
	}
	if meta.Version != EngineVersion {
		t.Errorf("version = %q, want %q", meta.Version, EngineVersion)
	}
}

func TestComputeProfileNullID(t *testing.T) {
	tax := testTaxonomy(t)
	profile, err := ComputeProfile(tax, fullRatings(tax, 3), Options{})
	if err != nil {
		t.Fatalf("ComputeProfile failed: %v", err)
	}
	if profile.ID != nil {
		t.Errorf("id = %v, want nil", profile.ID)
	}

	encoded, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if string(decoded["id"]) != "null" {
		t.Errorf(`JSON id = %s, want null`, decoded["id"])
	}
}

func TestComputeProfileRejectsInvalidInput(t *testing.T) {
	tax := testTaxonomy(t)

	ratings := fullRatings(tax, 3)
	delete(ratings, "R7")
	if _, err := ComputeProfile(tax, ratings, Options{}); !errors.Is(err, ErrIncompleteInput) {
		t.Errorf("missing item: err = %v, want ErrIncompleteInput", err)
	}

	ratings = fullRatings(tax, 3)
	ratings["Z99"] = 1
	if _, err := ComputeProfile(tax, ratings, Options{}); !errors.Is(err, ErrUnknownItems) {
		t.Errorf("unknown item: err = %v, want ErrUnknownItems", err)
	}

	ratings = fullRatings(tax, 3)
	ratings["A4"] = 0
	if _, err := ComputeProfile(tax, ratings, Options{}); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("out of range: err = %v, want ErrOutOfRange", err)
	}
}

func TestComputeProfileIdempotent(t *testing.T) {
	tax := testTaxonomy(t)
	ratings := make(map[string]int, tax.Len())
	for i, code := range tax.Codes() {
		ratings[code] = (i*7)%5 + 1
	}
	opts := Options{ID: "twice", CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}

	first, err := ComputeProfile(tax, ratings, opts)
	if err != nil {
		t.Fatalf("first ComputeProfile failed: %v", err)
	}
	second, err := ComputeProfile(tax, ratings, opts)
	if err != nil {
		t.Fatalf("second ComputeProfile failed: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(a) != string(b) {
		t.Error("identical inputs produced different profiles")
	}
}

func TestComputeProfileQualityAdvisoryOnly(t *testing.T) {
	tax := testTaxonomy(t)
	profile, err := ComputeProfile(tax, fullRatings(tax, 2), Options{})
	if err != nil {
		t.Fatalf("ComputeProfile failed despite quality concerns: %v", err)
	}
	if profile.ResponseQuality.QualityFlag != QualityCheck {
		t.Errorf("quality_flag = %q, want %q", profile.ResponseQuality.QualityFlag, QualityCheck)
	}
	if len(profile.ResponseQuality.Warnings) != 2 {
		t.Errorf("warnings = %v, want 2", profile.ResponseQuality.Warnings)
	}
}
