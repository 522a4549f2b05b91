package models

import (
	"testing"
	"time"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

func TestProfileRecordRoundTrip(t *testing.T) {
	tax, err := instrument.New()
	if err != nil {
		t.Fatalf("taxonomy failed to load: %v", err)
	}
	ratings := make(map[string]int, tax.Len())
	for i, code := range tax.Codes() {
		ratings[code] = i%5 + 1
	}
	created := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	profile, err := scoring.ComputeProfile(tax, ratings, scoring.Options{ID: "resp-7", CreatedAt: created})
	if err != nil {
		t.Fatalf("ComputeProfile failed: %v", err)
	}

	record, err := NewProfileRecord(profile, created)
	if err != nil {
		t.Fatalf("NewProfileRecord failed: %v", err)
	}
	if record.RespondentID == nil || *record.RespondentID != "resp-7" {
		t.Errorf("respondent_id = %v, want resp-7", record.RespondentID)
	}
	if record.QualityFlag != profile.ResponseQuality.QualityFlag {
		t.Errorf("quality_flag = %q, want %q", record.QualityFlag, profile.ResponseQuality.QualityFlag)
	}
	if record.ChronotypeBalance != profile.AdditionalIndices.Chronotype.BalanceScore {
		t.Errorf("chronotype_balance = %v, want %v",
			record.ChronotypeBalance, profile.AdditionalIndices.Chronotype.BalanceScore)
	}

	restored, err := record.Profile()
	if err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if restored.Meta.Version != profile.Meta.Version {
		t.Errorf("restored version = %q, want %q", restored.Meta.Version, profile.Meta.Version)
	}
	for dim, want := range profile.Dimensions {
		got, ok := restored.Dimensions[dim]
		if !ok {
			t.Errorf("restored profile missing dimension %s", dim)
			continue
		}
		if got.Score != want.Score {
			t.Errorf("%s: restored score = %v, want %v", dim, got.Score, want.Score)
		}
	}
}

func TestJSONBDocumentScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"bytes", []byte(`{"a":1}`), 1},
		{"string", `{"a":1,"b":2}`, 2},
		{"nil", nil, 0},
		{"empty bytes", []byte{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc JSONBDocument
			if err := doc.Scan(tt.input); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if len(doc) != tt.want {
				t.Errorf("len = %d, want %d", len(doc), tt.want)
			}
		})
	}
}
