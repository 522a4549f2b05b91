package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dsci3d/learning-energy-profile/models"
	"github.com/dsci3d/learning-energy-profile/ports"
)

const pqUniqueViolation = pq.ErrorCode("23505")

// ProfileArchiveImpl implements ProfileArchive for PostgreSQL
type ProfileArchiveImpl struct {
	db *sqlx.DB
}

// NewProfileArchive creates a new PostgreSQL profile archive
func NewProfileArchive(db *sqlx.DB) ports.ProfileArchive {
	return &ProfileArchiveImpl{db: db}
}

// Save stores a scored profile record
func (r *ProfileArchiveImpl) Save(ctx context.Context, record *models.ProfileRecord) error {
	// JSONBDocument implements driver.Valuer, so it converts automatically
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, respondent_id, quality_flag, chronotype_balance, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.RespondentID, record.QualityFlag, record.ChronotypeBalance, record.Document, record.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("profile %s already archived: %w", record.ID, err)
	}
	return err
}

// Get retrieves a profile record by id
func (r *ProfileArchiveImpl) Get(ctx context.Context, id uuid.UUID) (*models.ProfileRecord, error) {
	var record models.ProfileRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, respondent_id, quality_flag, chronotype_balance, document, created_at
		FROM profiles
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns stored records newest first
func (r *ProfileArchiveImpl) List(ctx context.Context, limit, offset int) ([]*models.ProfileRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var records []*models.ProfileRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, respondent_id, quality_flag, chronotype_balance, document, created_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes a profile record by id
func (r *ProfileArchiveImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
