package accounts

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

// Create inserts the account if the email is not yet registered.
// Registration is idempotent: a conflicting insert is a no-op.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (bool, error) {
	query := `
		INSERT INTO accounts (email, password_hash, role, tier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		account.Email, account.PasswordHash, models.RoleUser, models.TierNone)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT email, password_hash, role, tier, requested_bio_id, created_at
		FROM accounts
		WHERE email = $1
	`
	account := &models.Account{}
	var requestedBioID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.Email, &account.PasswordHash, &account.Role, &account.Tier,
		&requestedBioID, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.RequestedBioID = requestedBioID.Int64
	return account, nil
}

// SetTierRequested records a premium request. Only accounts still at the
// none tier match; the transition is a no-op for accounts further along.
func (r *PostgresRepository) SetTierRequested(ctx context.Context, email string, bioID int64) error {
	query := `
		UPDATE accounts
		SET tier = $1, requested_bio_id = $2
		WHERE email = $3 AND tier = $4
	`
	if _, err := r.db.ExecContext(ctx, query, models.TierRequested, bioID, email, models.TierNone); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SetTierPremium completes an approval. The statement only matches accounts
// currently at the requested tier; zero affected rows yields ErrInvalidState.
func (r *PostgresRepository) SetTierPremium(ctx context.Context, email string) error {
	query := `
		UPDATE accounts
		SET tier = $1
		WHERE email = $2 AND tier = $3
	`
	res, err := r.db.ExecContext(ctx, query, models.TierPremium, email, models.TierRequested)
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

func (r *PostgresRepository) SetRoleAdmin(ctx context.Context, email string) error {
	query := `
		UPDATE accounts
		SET role = $1
		WHERE email = $2
	`
	res, err := r.db.ExecContext(ctx, query, models.RoleAdmin, email)
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

func (r *PostgresRepository) ListByTier(ctx context.Context, tier string, excludeEmail string) ([]*models.Account, error) {
	query := `
		SELECT email, role, tier, requested_bio_id, created_at
		FROM accounts
		WHERE tier = $1 AND email <> $2
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, tier, excludeEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		account := &models.Account{}
		var requestedBioID sql.NullInt64
		if err := rows.Scan(&account.Email, &account.Role, &account.Tier,
			&requestedBioID, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		account.RequestedBioID = requestedBioID.Int64
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) CountByTier(ctx context.Context, tier string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM accounts WHERE tier = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, tier).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
