package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/auth"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/accounts"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
)

// AccountService handles registration, login, and the access-tier state
// machine (none -> requested -> premium) plus admin role escalation.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAccountService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// requireAdmin loads the actor and verifies the admin role. Shared by every
// admin-only operation across services.
func requireAdmin(ctx context.Context, repo accounts.Repository, email string) error {
	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrPermissionDenied
		}
		return fmt.Errorf("error loading account: %w", err)
	}
	if account.Role != models.RoleAdmin {
		return common.ErrPermissionDenied
	}
	return nil
}

// Register creates an account with role 'user' and tier 'none'. Registration
// is idempotent per email: a repeated call succeeds without touching the
// existing row. Reports whether a new account was created.
func (s *AccountService) Register(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, common.ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, common.ErrInternal
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, &models.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Tier:         models.TierNone,
	})
	if err != nil {
		return false, fmt.Errorf("error creating account: %w", err)
	}
	return created, nil
}

// Login verifies credentials and mints a signed session token carrying the
// account's email and role. Absent accounts and wrong passwords are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthenticated
		}
		return "", common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", common.ErrUnauthenticated
	}

	token, err := auth.GenerateToken(account.Email, account.Role, []byte(s.config.SecretKey), s.config.TokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// RequestPremium moves the actor's own account from none to requested,
// recording which bioId the request concerns. Calling it again once the
// account is requested or premium is a no-op success.
func (s *AccountService) RequestPremium(ctx context.Context, actorEmail string, bioID int64) error {
	if bioID <= 0 {
		return common.ErrInvalidArgument
	}

	repo := s.repomanager.Accounts(s.db)
	if _, err := repo.GetByEmail(ctx, actorEmail); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading account: %w", err)
	}

	if err := repo.SetTierRequested(ctx, actorEmail, bioID); err != nil {
		return fmt.Errorf("error requesting premium: %w", err)
	}
	return nil
}

// ApprovePremium moves the target from requested to premium and flags the
// requested profile as premium, in one transaction. Any tier other than
// requested yields ErrInvalidState: approvals never repeat and never skip
// the request step.
func (s *AccountService) ApprovePremium(ctx context.Context, adminEmail, targetEmail string) error {
	repo := s.repomanager.Accounts(s.db)
	if err := requireAdmin(ctx, repo, adminEmail); err != nil {
		return err
	}

	target, err := repo.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading account: %w", err)
	}
	if target.Tier != models.TierRequested {
		return common.ErrInvalidState
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).SetTierPremium(ctx, targetEmail); err != nil {
			return err
		}
		if target.RequestedBioID > 0 {
			err := s.repomanager.Profiles(tx).SetPremium(ctx, target.RequestedBioID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidState) {
			return common.ErrInvalidState
		}
		return fmt.Errorf("error approving premium: %w", err)
	}
	return nil
}

// PromoteToAdmin escalates the target's role. Role is orthogonal to tier:
// promotion touches the role column only.
func (s *AccountService) PromoteToAdmin(ctx context.Context, adminEmail, targetEmail string) error {
	repo := s.repomanager.Accounts(s.db)
	if err := requireAdmin(ctx, repo, adminEmail); err != nil {
		return err
	}

	if err := repo.SetRoleAdmin(ctx, targetEmail); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error promoting account: %w", err)
	}
	return nil
}

// ListRequested returns accounts awaiting premium approval, excluding the
// calling admin.
func (s *AccountService) ListRequested(ctx context.Context, adminEmail string) ([]*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)
	if err := requireAdmin(ctx, repo, adminEmail); err != nil {
		return nil, err
	}

	result, err := repo.ListByTier(ctx, models.TierRequested, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return result, nil
}
