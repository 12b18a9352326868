package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
)

// ReportService computes the admin dashboard aggregate. Nothing is cached:
// every call recomputes from the store.
type ReportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewReportService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *ReportService {
	return &ReportService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Stats returns profile totals, per-category counts, the premium member
// count, and revenue. Revenue sums approved unlock amounts only: a pending
// record is money held, not visibility granted.
func (s *ReportService) Stats(ctx context.Context, adminEmail string) (*models.Stats, error) {
	if err := requireAdmin(ctx, s.repomanager.Accounts(s.db), adminEmail); err != nil {
		return nil, err
	}

	profileRepo := s.repomanager.Profiles(s.db)

	total, err := profileRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting profiles: %w", err)
	}
	male, err := profileRepo.CountByCategory(ctx, models.CategoryMale)
	if err != nil {
		return nil, fmt.Errorf("error counting profiles: %w", err)
	}
	female, err := profileRepo.CountByCategory(ctx, models.CategoryFemale)
	if err != nil {
		return nil, fmt.Errorf("error counting profiles: %w", err)
	}
	premium, err := s.repomanager.Accounts(s.db).CountByTier(ctx, models.TierPremium)
	if err != nil {
		return nil, fmt.Errorf("error counting accounts: %w", err)
	}
	revenue, err := s.repomanager.Unlocks(s.db).SumApprovedAmounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error summing revenue: %w", err)
	}

	return &models.Stats{
		TotalProfiles:  total,
		MaleProfiles:   male,
		FemaleProfiles: female,
		PremiumMembers: premium,
		RevenueCents:   revenue,
	}, nil
}
