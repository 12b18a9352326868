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

// StoryService manages success stories. The collection is append-only.
type StoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewStoryService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *StoryService {
	return &StoryService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Create appends a story. Stars are a 1..5 rating.
func (s *StoryService) Create(ctx context.Context, story *models.SuccessStory) (*models.SuccessStory, error) {
	if story.SelfBioID <= 0 || story.Stars < 1 || story.Stars > 5 {
		return nil, common.ErrInvalidArgument
	}

	story.ID = uuid.NewString()
	if err := s.repomanager.Stories(s.db).Create(ctx, story); err != nil {
		return nil, fmt.Errorf("error creating story: %w", err)
	}
	return story, nil
}

// List returns every story, newest first. The listing is public.
func (s *StoryService) List(ctx context.Context) ([]*models.SuccessStory, error) {
	result, err := s.repomanager.Stories(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing stories: %w", err)
	}
	return result, nil
}

// Get returns a single story for the admin detail view.
func (s *StoryService) Get(ctx context.Context, id string) (*models.SuccessStory, error) {
	story, err := s.repomanager.Stories(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading story: %w", err)
	}
	return story, nil
}
