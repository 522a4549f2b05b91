package migration

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"github.com/dsci3d/learning-energy-profile/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner brings the archive schema up to date. Every step is
// idempotent, so running it against an existing database is safe.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createProfilesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create profiles table")
	}

	if err := r.addProfilesColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add profiles columns")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createProfilesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			respondent_id TEXT,
			quality_flag VARCHAR(10) NOT NULL DEFAULT 'ok',
			chronotype_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			document JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addProfilesColumns upgrades schemas created before the summary columns
// existed. The document blob was always there; quality_flag and
// chronotype_balance were promoted to columns later for filtering.
func (r *MigrationRunner) addProfilesColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'profiles' AND column_name = 'quality_flag'
			) THEN
				ALTER TABLE profiles ADD COLUMN quality_flag VARCHAR(10) NOT NULL DEFAULT 'ok';
			END IF;

			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'profiles' AND column_name = 'chronotype_balance'
			) THEN
				ALTER TABLE profiles ADD COLUMN chronotype_balance DOUBLE PRECISION NOT NULL DEFAULT 0;
			END IF;

			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'profiles' AND column_name = 'respondent_id'
			) THEN
				ALTER TABLE profiles ADD COLUMN respondent_id TEXT;
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_profiles_respondent_id ON profiles(respondent_id)",
		"CREATE INDEX IF NOT EXISTS idx_profiles_quality_flag ON profiles(quality_flag)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Indexes are a performance concern, not a correctness one.
			log.Printf("warning: failed to create index: %v", err)
		}
	}

	return nil
}
