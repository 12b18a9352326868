// Package stories provides a PostgreSQL-backed repository for success
// stories. The table is append-only: no update or delete operations exist.
package stories

import (
	"context"

	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Repository persists success stories.
type Repository interface {
	Create(ctx context.Context, s *models.SuccessStory) error
	GetByID(ctx context.Context, id string) (*models.SuccessStory, error)
	List(ctx context.Context) ([]*models.SuccessStory, error)
}
