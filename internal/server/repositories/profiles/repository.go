// Package profiles provides a PostgreSQL-backed repository for bio-data
// profiles.
package profiles

import (
	"context"

	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Repository persists profiles keyed by their allocated bioId.
type Repository interface {
	// Create inserts a new profile with an already-allocated bioId.
	Create(ctx context.Context, p *models.Profile) error

	// Update overwrites every profile field except bio_id, owner_email and
	// created_at for the row matching (bioId, ownerEmail).
	// Returns common.ErrNotFound when no such row exists.
	Update(ctx context.Context, p *models.Profile) error

	// SetPremium flags the profile as belonging to a premium member.
	// Returns common.ErrNotFound when no such row exists.
	SetPremium(ctx context.Context, bioID int64) error

	// GetByID returns the full profile or common.ErrNotFound.
	GetByID(ctx context.Context, bioID int64) (*models.Profile, error)

	// GetByOwner returns the owner's full profile or common.ErrNotFound.
	GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error)

	// List returns reduced records. Empty category means no filter;
	// limit <= 0 means unbounded. Category matching is case-insensitive.
	List(ctx context.Context, category string, limit int) ([]*models.ProfileSummary, error)

	// Count returns the total number of profiles.
	Count(ctx context.Context) (int64, error)

	// CountByCategory returns the number of profiles in the category
	// (case-insensitive).
	CountByCategory(ctx context.Context, category string) (int64, error)
}
