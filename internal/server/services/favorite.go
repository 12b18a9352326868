package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
)

// FavoriteService manages bookmarked profiles. Favouriting the same profile
// twice makes two records; the listing shows both.
type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewFavoriteService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *FavoriteService {
	return &FavoriteService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Add bookmarks the profile for the caller.
func (s *FavoriteService) Add(ctx context.Context, ownerEmail string, bioID int64) (*models.Favorite, error) {
	if ownerEmail == "" || bioID <= 0 {
		return nil, common.ErrInvalidArgument
	}

	f := &models.Favorite{
		ID:         uuid.NewString(),
		OwnerEmail: ownerEmail,
		BioID:      bioID,
	}
	if err := s.repomanager.Favorites(s.db).Create(ctx, f); err != nil {
		return nil, fmt.Errorf("error adding favorite: %w", err)
	}
	return f, nil
}

// List returns the caller's favourites joined to a summary of each profile.
func (s *FavoriteService) List(ctx context.Context, ownerEmail string) ([]*models.FavoriteDetail, error) {
	result, err := s.repomanager.Favorites(s.db).ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("error listing favorites: %w", err)
	}
	return result, nil
}

// Remove deletes one of the caller's favourites. Removing somebody else's
// record (or a missing one) is ErrNotFound; the ownership check is part of
// the delete statement.
func (s *FavoriteService) Remove(ctx context.Context, ownerEmail, id string) error {
	if err := s.repomanager.Favorites(s.db).Delete(ctx, id, ownerEmail); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error removing favorite: %w", err)
	}
	return nil
}
