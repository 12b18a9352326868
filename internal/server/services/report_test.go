package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

func TestStats_AdminOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	s := NewReportService(db, rm, &config.Config{})
	seedAccount(rm, "alice@example.com", models.RoleUser, models.TierNone)

	if _, err := s.Stats(context.Background(), "alice@example.com"); !errors.Is(err, common.ErrPermissionDenied) {
		t.Fatalf("non-admin stats: got %v", err)
	}
	if _, err := s.Stats(context.Background(), "ghost@example.com"); !errors.Is(err, common.ErrPermissionDenied) {
		t.Fatalf("unknown caller stats: got %v", err)
	}
}

func TestStats_CountsAndRevenue(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	s := NewReportService(db, rm, &config.Config{})

	seedAccount(rm, "admin@example.com", models.RoleAdmin, models.TierNone)
	seedAccount(rm, "alice@example.com", models.RoleUser, models.TierPremium)
	seedAccount(rm, "bob@example.com", models.RoleUser, models.TierRequested)

	rm.profiles.byID[1] = &models.Profile{BioID: 1, Category: models.CategoryFemale}
	rm.profiles.byID[2] = &models.Profile{BioID: 2, Category: models.CategoryMale}
	rm.profiles.byID[3] = &models.Profile{BioID: 3, Category: models.CategoryMale}

	rm.unlocks.records = []*models.ContactUnlock{
		{ID: "u1", RequesterEmail: "bob@example.com", BioID: 1, AmountCents: 1000, Status: models.UnlockApproved},
		{ID: "u2", RequesterEmail: "bob@example.com", BioID: 2, AmountCents: 500, Status: models.UnlockPending},
	}

	stats, err := s.Stats(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := models.Stats{
		TotalProfiles:  3,
		MaleProfiles:   2,
		FemaleProfiles: 1,
		PremiumMembers: 1,
		RevenueCents:   1000, // approved only, the pending 500 stays out
	}
	if *stats != want {
		t.Fatalf("stats: got %+v want %+v", *stats, want)
	}
}

func TestStats_RepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	rm := newFakeRepoManager()
	s := NewReportService(db, rm, &config.Config{})
	seedAccount(rm, "admin@example.com", models.RoleAdmin, models.TierNone)
	rm.unlocks.sumErr = errBoom{}

	if _, err := s.Stats(context.Background(), "admin@example.com"); err == nil {
		t.Fatalf("expected wrapped repo error")
	}
}
