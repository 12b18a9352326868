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
	"github.com/tanvirrahman/matrimony/internal/server/payments"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
)

// UnlockService owns the contact unlock ledger: payment-backed pending
// records, admin approval, and the gate predicate the profile full-read
// path consults.
type UnlockService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
	intents     payments.IntentCreator
}

func NewUnlockService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config, intents payments.IntentCreator) *UnlockService {
	return &UnlockService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		intents:     intents,
	}
}

// Record inserts a fresh pending unlock after payment. Every payment gets its
// own row; paying twice for the same profile is two records, never a merge.
func (s *UnlockService) Record(ctx context.Context, requesterEmail string, bioID int64, amountCents int64) (*models.ContactUnlock, error) {
	if requesterEmail == "" || bioID <= 0 || amountCents <= 0 {
		return nil, common.ErrInvalidArgument
	}

	u := &models.ContactUnlock{
		ID:             uuid.NewString(),
		RequesterEmail: requesterEmail,
		BioID:          bioID,
		AmountCents:    amountCents,
		Status:         models.UnlockPending,
	}
	repo := s.repomanager.Unlocks(s.db)
	if err := repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("error recording unlock: %w", err)
	}
	return u, nil
}

// Approve flips a pending record to approved. Approving an already-approved
// record is ErrInvalidState: an approval is a one-shot event, not a setting.
func (s *UnlockService) Approve(ctx context.Context, adminEmail, unlockID string) error {
	if err := requireAdmin(ctx, s.repomanager.Accounts(s.db), adminEmail); err != nil {
		return err
	}

	repo := s.repomanager.Unlocks(s.db)
	if _, err := repo.GetByID(ctx, unlockID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading unlock: %w", err)
	}

	if err := repo.SetApproved(ctx, unlockID); err != nil {
		if errors.Is(err, common.ErrInvalidState) {
			return common.ErrInvalidState
		}
		return fmt.Errorf("error approving unlock: %w", err)
	}
	return nil
}

// ListMine returns the requester's unlock records joined to the target
// profile's contact fields. Records whose profile no longer exists are
// dropped from the listing.
func (s *UnlockService) ListMine(ctx context.Context, requesterEmail string) ([]*models.ContactUnlockDetail, error) {
	repo := s.repomanager.Unlocks(s.db)
	result, err := repo.ListByRequester(ctx, requesterEmail)
	if err != nil {
		return nil, fmt.Errorf("error listing unlocks: %w", err)
	}
	return result, nil
}

// ListPending returns every pending record, oldest first. Admin-only.
func (s *UnlockService) ListPending(ctx context.Context, adminEmail string) ([]*models.ContactUnlock, error) {
	if err := requireAdmin(ctx, s.repomanager.Accounts(s.db), adminEmail); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Unlocks(s.db).ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing unlocks: %w", err)
	}
	return result, nil
}

// HasApproved reports whether the requester holds an approved unlock for the
// profile. This is the gate predicate behind contact visibility.
func (s *UnlockService) HasApproved(ctx context.Context, requesterEmail string, bioID int64) (bool, error) {
	ok, err := s.repomanager.Unlocks(s.db).HasApproved(ctx, requesterEmail, bioID)
	if err != nil {
		return false, fmt.Errorf("error checking unlock: %w", err)
	}
	return ok, nil
}

// CreatePaymentIntent validates the amount, converts major units to minor
// (truncating), and asks the payment provider for a client secret. No ledger
// row is written here; Record runs after the charge succeeds.
func (s *UnlockService) CreatePaymentIntent(ctx context.Context, amountMajor float64) (string, error) {
	if amountMajor <= 0 {
		return "", common.ErrInvalidArgument
	}

	amountCents := int64(amountMajor * 100)
	secret, err := s.intents.CreateIntent(ctx, amountCents, s.config.Currency)
	if err != nil {
		return "", fmt.Errorf("error creating payment intent: %w", err)
	}
	return secret, nil
}
