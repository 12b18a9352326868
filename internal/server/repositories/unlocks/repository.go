// Package unlocks provides a PostgreSQL-backed repository for the contact
// unlock ledger.
package unlocks

import (
	"context"

	"github.com/tanvirrahman/matrimony/internal/server/models"
)

// Repository persists contact unlock records. Status only ever moves
// pending -> approved.
type Repository interface {
	// Create inserts a fresh pending record. It never deduplicates: every
	// payment produces its own row.
	Create(ctx context.Context, u *models.ContactUnlock) error

	// GetByID returns the record or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.ContactUnlock, error)

	// SetApproved flips a pending record to approved. Zero rows affected
	// yields common.ErrInvalidState (already approved) — the transition is
	// guarded inside the statement.
	SetApproved(ctx context.Context, id string) error

	// ListByRequester returns the requester's records joined to their target
	// profile's contact fields. Records whose profile no longer exists are
	// dropped from the result.
	ListByRequester(ctx context.Context, requesterEmail string) ([]*models.ContactUnlockDetail, error)

	// ListPending returns all pending records, oldest first.
	ListPending(ctx context.Context) ([]*models.ContactUnlock, error)

	// HasApproved reports whether an approved record exists for the pair.
	HasApproved(ctx context.Context, requesterEmail string, bioID int64) (bool, error)

	// SumApprovedAmounts totals amount_cents over approved records.
	SumApprovedAmounts(ctx context.Context) (int64, error)
}
