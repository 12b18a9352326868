package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.SuccessStory) error {
	query := `
		INSERT INTO success_stories (id, self_bio_id, partner_bio_id, photo_url, review, stars, married_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query,
		s.ID, s.SelfBioID, s.PartnerBioID, s.PhotoURL, s.Review, s.Stars, s.MarriedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.SuccessStory, error) {
	query := `
		SELECT id, self_bio_id, partner_bio_id, photo_url, review, stars, married_at, created_at
		FROM success_stories
		WHERE id = $1
	`
	s := &models.SuccessStory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.SelfBioID, &s.PartnerBioID, &s.PhotoURL, &s.Review,
		&s.Stars, &s.MarriedAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.SuccessStory, error) {
	query := `
		SELECT id, self_bio_id, partner_bio_id, photo_url, review, stars, married_at, created_at
		FROM success_stories
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SuccessStory
	for rows.Next() {
		s := &models.SuccessStory{}
		if err := rows.Scan(&s.ID, &s.SelfBioID, &s.PartnerBioID, &s.PhotoURL,
			&s.Review, &s.Stars, &s.MarriedAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
