// Package favorites provides a PostgreSQL-backed repository for favourited
// profiles.
package favorites

import (
	"context"

	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Repository persists favourites. Duplicate (owner, bioId) pairs are allowed;
// the store does not enforce uniqueness beyond the record id.
type Repository interface {
	Create(ctx context.Context, f *models.Favorite) error
	ListByOwner(ctx context.Context, ownerEmail string) ([]*models.FavoriteDetail, error)
	Delete(ctx context.Context, id string, ownerEmail string) error
}
