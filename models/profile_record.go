package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsci3d/learning-energy-profile/domain/scoring"
)

// JSONBDocument is a custom type for PostgreSQL JSONB columns holding the
// full profile document.
type JSONBDocument map[string]interface{}

// Value implements driver.Valuer interface
func (d JSONBDocument) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface
func (d *JSONBDocument) Scan(value interface{}) error {
	if value == nil {
		*d = make(JSONBDocument)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*d = make(JSONBDocument)
		return nil
	}

	if len(bytes) == 0 {
		*d = make(JSONBDocument)
		return nil
	}

	result := make(JSONBDocument)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*d = result
	return nil
}

// ProfileRecord is an archived scored profile. A few summary columns are
// lifted out of the document for listing and filtering without unpacking
// the JSONB.
type ProfileRecord struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	RespondentID      *string       `json:"respondent_id,omitempty" db:"respondent_id"`
	QualityFlag       string        `json:"quality_flag" db:"quality_flag"`
	ChronotypeBalance float64       `json:"chronotype_balance" db:"chronotype_balance"`
	Document          JSONBDocument `json:"document" db:"document"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
}

// NewProfileRecord wraps a scored profile for archival.
func NewProfileRecord(profile *scoring.Profile, createdAt time.Time) (*ProfileRecord, error) {
	doc, err := profileDocument(profile)
	if err != nil {
		return nil, err
	}
	record := &ProfileRecord{
		ID:                uuid.New(),
		QualityFlag:       profile.ResponseQuality.QualityFlag,
		ChronotypeBalance: profile.AdditionalIndices.Chronotype.BalanceScore,
		Document:          doc,
		CreatedAt:         createdAt,
	}
	if profile.ID != nil {
		respondent := *profile.ID
		record.RespondentID = &respondent
	}
	return record, nil
}

// Profile unpacks the archived document back into the engine's result type.
func (r *ProfileRecord) Profile() (*scoring.Profile, error) {
	raw, err := json.Marshal(r.Document)
	if err != nil {
		return nil, fmt.Errorf("decode archived profile %s: %w", r.ID, err)
	}
	var profile scoring.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode archived profile %s: %w", r.ID, err)
	}
	return &profile, nil
}

func profileDocument(profile *scoring.Profile) (JSONBDocument, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile document: %w", err)
	}
	doc := make(JSONBDocument)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode profile document: %w", err)
	}
	return doc, nil
}
