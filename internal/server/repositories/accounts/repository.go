// Package accounts provides a PostgreSQL-backed repository for user accounts
// and their access-tier state.
package accounts

import (
	"context"

	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Repository persists accounts. Tier and role changes go through dedicated
// per-transition writers so that each write touches exactly the columns that
// transition owns; nothing here ever rewrites a whole account row.
type Repository interface {
	// Create inserts the account unless one already exists for the email.
	// It reports whether a row was actually inserted.
	Create(ctx context.Context, account *models.Account) (bool, error)

	// GetByEmail returns the account or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// SetTierRequested moves the account to the requested tier and records
	// the bioId the request concerns.
	SetTierRequested(ctx context.Context, email string, bioID int64) error

	// SetTierPremium moves a requested account to premium. The guard on the
	// current tier lives in the statement itself; zero rows affected means
	// the account was not in the requested state.
	SetTierPremium(ctx context.Context, email string) error

	// SetRoleAdmin escalates the account's role. Orthogonal to tier.
	SetRoleAdmin(ctx context.Context, email string) error

	// ListByTier returns accounts at the given tier, excluding excludeEmail.
	ListByTier(ctx context.Context, tier string, excludeEmail string) ([]*models.Account, error)

	// CountByTier returns the number of accounts at the given tier.
	CountByTier(ctx context.Context, tier string) (int64, error)
}
