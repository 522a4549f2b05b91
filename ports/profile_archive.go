package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/dsci3d/learning-energy-profile/models"
)

// ProfileArchive defines the interface for persisted profile operations
type ProfileArchive interface {
	// Save stores a scored profile record
	Save(ctx context.Context, record *models.ProfileRecord) error

	// Get retrieves a profile record by id
	Get(ctx context.Context, id uuid.UUID) (*models.ProfileRecord, error)

	// List returns stored records newest first
	List(ctx context.Context, limit, offset int) ([]*models.ProfileRecord, error)

	// Delete removes a profile record by id
	Delete(ctx context.Context, id uuid.UUID) error
}
