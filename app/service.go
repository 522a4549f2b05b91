package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dsci3d/learning-energy-profile/adapters/ingest"
	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/domain/scoring"
	apperrors "github.com/dsci3d/learning-energy-profile/internal/errors"
	"github.com/dsci3d/learning-energy-profile/models"
	"github.com/dsci3d/learning-energy-profile/ports"
)

// Service orchestrates scoring and archival. The archive is optional; a nil
// archive supports the file-only CLI paths.
type Service struct {
	tax     *instrument.Taxonomy
	archive ports.ProfileArchive
}

// NewService creates the application service
func NewService(tax *instrument.Taxonomy, archive ports.ProfileArchive) *Service {
	return &Service{
		tax:     tax,
		archive: archive,
	}
}

// Taxonomy exposes the loaded instrument (for handlers and renderers)
func (s *Service) Taxonomy() *instrument.Taxonomy {
	return s.tax
}

// Score validates raw ratings and computes a profile. Input problems come
// back as invalid_input; anything else is an internal fault.
func (s *Service) Score(values map[string]any, opts scoring.Options) (*scoring.Profile, error) {
	ratings, err := scoring.ValidateRaw(s.tax, values)
	if err != nil {
		return nil, mapScoringError(err)
	}
	profile, err := scoring.ComputeProfile(s.tax, ratings, opts)
	if err != nil {
		return nil, mapScoringError(err)
	}
	return profile, nil
}

// ScoreSource reads ratings from any source and scores them. Read failures
// are user-facing: the source decides what its medium looks like, the engine
// decides what a valid rating set is.
func (s *Service) ScoreSource(source ports.RatingsSource, opts scoring.Options) (*scoring.Profile, error) {
	values, err := source.Read()
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}
	return s.Score(values, opts)
}

// ScoreFile reads ratings from a CSV, XLSX or JSON file and scores them.
func (s *Service) ScoreFile(path string, opts scoring.Options) (*scoring.Profile, error) {
	return s.ScoreSource(ingest.NewFileSource(s.tax, path), opts)
}

// ArchiveProfile stores a scored profile and returns the stored record.
func (s *Service) ArchiveProfile(ctx context.Context, profile *scoring.Profile) (*models.ProfileRecord, error) {
	if s.archive == nil {
		return nil, apperrors.ConfigInvalid("profile archive is not configured")
	}
	record, err := models.NewProfileRecord(profile, time.Now().UTC())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build profile record")
	}
	if err := s.archive.Save(ctx, record); err != nil {
		return nil, apperrors.DatabaseError("failed to save profile", err)
	}
	return record, nil
}

// GetProfile retrieves an archived profile record by id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.ProfileRecord, error) {
	if s.archive == nil {
		return nil, apperrors.ConfigInvalid("profile archive is not configured")
	}
	record, err := s.archive.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("profile")
		}
		return nil, apperrors.DatabaseError("failed to load profile", err)
	}
	return record, nil
}

// ListProfiles returns archived records, newest first.
func (s *Service) ListProfiles(ctx context.Context, limit, offset int) ([]*models.ProfileRecord, error) {
	if s.archive == nil {
		return nil, apperrors.ConfigInvalid("profile archive is not configured")
	}
	records, err := s.archive.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list profiles", err)
	}
	return records, nil
}

// DeleteProfile removes an archived record.
func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if s.archive == nil {
		return apperrors.ConfigInvalid("profile archive is not configured")
	}
	if err := s.archive.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("profile")
		}
		return apperrors.DatabaseError("failed to delete profile", err)
	}
	return nil
}

// DimensionInfo summarizes one dimension for the instrument listing.
type DimensionInfo struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	MainItems     int    `json:"main_items"`
	ReversedItems int    `json:"reversed_items"`
}

// InstrumentSummary is the taxonomy view served by the API and the CLI.
type InstrumentSummary struct {
	Name          string                      `json:"name"`
	EngineVersion string                      `json:"engine_version"`
	NumItems      int                         `json:"num_items"`
	NumMainScale  int                         `json:"num_main_scale"`
	NumAuxiliary  int                         `json:"num_auxiliary"`
	NumReversed   int                         `json:"num_reversed"`
	Dimensions    []DimensionInfo             `json:"dimensions"`
	Items         []instrument.ItemDefinition `json:"items"`
}

// Instrument describes the loaded taxonomy.
func (s *Service) Instrument() InstrumentSummary {
	summary := InstrumentSummary{
		Name:          scoring.InstrumentName,
		EngineVersion: scoring.EngineVersion,
		NumItems:      instrument.NumItems,
		NumMainScale:  instrument.NumMainScale,
		NumAuxiliary:  instrument.NumAuxiliary,
		NumReversed:   instrument.NumReversedMain,
		Items:         s.tax.All(),
	}
	for _, dim := range instrument.Dimensions() {
		items := s.tax.DimensionItems(dim)
		info := DimensionInfo{
			Key:       string(dim),
			Label:     dim.Label(),
			MainItems: len(items),
		}
		for _, item := range items {
			if item.ReverseScored {
				info.ReversedItems++
			}
		}
		summary.Dimensions = append(summary.Dimensions, info)
	}
	return summary
}

func mapScoringError(err error) error {
	if scoring.IsInputError(err) {
		return apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}
	return apperrors.WithCode(apperrors.CodeInternal, err)
}
