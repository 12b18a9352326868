package unlocks

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

func (r *PostgresRepository) Create(ctx context.Context, u *models.ContactUnlock) error {
	query := `
		INSERT INTO contact_unlocks (id, requester_email, bio_id, amount_cents, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		u.ID, u.RequesterEmail, u.BioID, u.AmountCents, models.UnlockPending); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ContactUnlock, error) {
	query := `
		SELECT id, requester_email, bio_id, amount_cents, status, created_at
		FROM contact_unlocks
		WHERE id = $1
	`
	u := &models.ContactUnlock{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.RequesterEmail, &u.BioID, &u.AmountCents, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// SetApproved only matches pending rows, so an approved record can never move
// backwards and a second approval surfaces as ErrInvalidState.
func (r *PostgresRepository) SetApproved(ctx context.Context, id string) error {
	query := `
		UPDATE contact_unlocks
		SET status = $1
		WHERE id = $2 AND status = $3
	`
	res, err := r.db.ExecContext(ctx, query, models.UnlockApproved, id, models.UnlockPending)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrInvalidState
	}
	return nil
}

// ListByRequester uses an inner join: unlock rows whose target profile has
// disappeared are silently dropped rather than served half-empty.
func (r *PostgresRepository) ListByRequester(ctx context.Context, requesterEmail string) ([]*models.ContactUnlockDetail, error) {
	query := `
		SELECT u.id, u.requester_email, u.bio_id, u.amount_cents, u.status,
			u.created_at, p.name, p.mobile_number, p.contact_email
		FROM contact_unlocks u
		JOIN profiles p ON p.bio_id = u.bio_id
		WHERE u.requester_email = $1
		ORDER BY u.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, requesterEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ContactUnlockDetail
	for rows.Next() {
		d := &models.ContactUnlockDetail{}
		if err := rows.Scan(&d.ID, &d.RequesterEmail, &d.BioID, &d.AmountCents,
			&d.Status, &d.CreatedAt, &d.ProfileName, &d.MobileNumber, &d.ContactEmail); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.ContactUnlock, error) {
	query := `
		SELECT id, requester_email, bio_id, amount_cents, status, created_at
		FROM contact_unlocks
		WHERE status = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, models.UnlockPending)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ContactUnlock
	for rows.Next() {
		u := &models.ContactUnlock{}
		if err := rows.Scan(&u.ID, &u.RequesterEmail, &u.BioID, &u.AmountCents,
			&u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) HasApproved(ctx context.Context, requesterEmail string, bioID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM contact_unlocks
			WHERE requester_email = $1 AND bio_id = $2 AND status = $3
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, requesterEmail, bioID, models.UnlockApproved).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SumApprovedAmounts(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM contact_unlocks
		WHERE status = $1
	`
	var sum int64
	if err := r.db.QueryRowContext(ctx, query, models.UnlockApproved).Scan(&sum); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return sum, nil
}
