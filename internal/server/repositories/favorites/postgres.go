package favorites

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, f *models.Favorite) error {
	query := `
		INSERT INTO favorites (id, owner_email, bio_id)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.OwnerEmail, f.BioID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.FavoriteDetail, error) {
	query := `
		SELECT f.id, f.owner_email, f.bio_id, f.created_at,
			p.name, p.permanent_division, p.occupation
		FROM favorites f
		JOIN profiles p ON p.bio_id = f.bio_id
		WHERE f.owner_email = $1
		ORDER BY f.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.FavoriteDetail
	for rows.Next() {
		d := &models.FavoriteDetail{}
		if err := rows.Scan(&d.ID, &d.OwnerEmail, &d.BioID, &d.CreatedAt,
			&d.Name, &d.PermanentDivision, &d.Occupation); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Delete removes the favourite only when it belongs to ownerEmail.
func (r *PostgresRepository) Delete(ctx context.Context, id string, ownerEmail string) error {
	query := `
		DELETE FROM favorites
		WHERE id = $1 AND owner_email = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerEmail)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
