// Package services contains server-side business logic. This file implements
// ProfileService: bio-data submission with stable sequential ids, tiered
// public reads, and the contact-visibility gate on the full-read path.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/config"
	"github.com/tanvirrahman/matrimony/internal/server/models"
	"github.com/tanvirrahman/matrimony/internal/server/repositories/repomanager"
)

// bioSeqName is the counter row that hands out bioIds.
const bioSeqName = "bio_id"

// categoryAll is the browse sentinel meaning "no category filter".
const categoryAll = "all"

type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewProfileService(db *sql.DB, repomanager repomanager.RepositoryManager, config *config.Config) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

// Submit creates or updates the actor's profile and reports whether a new
// record was created along with its bioId.
//
// A bioId is allocated exactly once per profile, on first submission; every
// resubmission keeps it. The ownership check runs before any allocator call
// so a rejected submission never burns a sequence value.
func (s *ProfileService) Submit(ctx context.Context, actorEmail string, p *models.Profile) (bool, int64, error) {
	if actorEmail != p.OwnerEmail {
		return false, 0, common.ErrPermissionDenied
	}
	if p.Name == "" || p.Category == "" {
		return false, 0, common.ErrInvalidArgument
	}

	repo := s.repomanager.Profiles(s.db)

	if p.BioID > 0 {
		err := repo.Update(ctx, p)
		if err == nil {
			return false, p.BioID, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return false, 0, fmt.Errorf("error updating profile: %w", err)
		}
		// Unknown (bioId, owner) pair: fall through to the create path.
	} else {
		// No id on the form. If the owner already has a profile, this is a
		// resubmission and must keep the existing bioId.
		existing, err := repo.GetByOwner(ctx, p.OwnerEmail)
		if err == nil {
			p.BioID = existing.BioID
			if err := repo.Update(ctx, p); err != nil {
				return false, 0, fmt.Errorf("error updating profile: %w", err)
			}
			return false, p.BioID, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return false, 0, fmt.Errorf("error loading profile: %w", err)
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		seq, err := s.repomanager.Counters(tx).Next(ctx, bioSeqName)
		if err != nil {
			return err
		}
		p.BioID = seq
		return s.repomanager.Profiles(tx).Create(ctx, p)
	})
	if err != nil {
		return false, 0, fmt.Errorf("error creating profile: %w", err)
	}
	return true, p.BioID, nil
}

// PublicList returns reduced browse records. Category "all" (or empty) means
// no filter; matching is case-insensitive. limit <= 0 means unbounded.
func (s *ProfileService) PublicList(ctx context.Context, category string, limit int) ([]*models.ProfileSummary, error) {
	if category == categoryAll {
		category = ""
	}
	repo := s.repomanager.Profiles(s.db)
	result, err := repo.List(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	return result, nil
}

// ByID returns a single profile. Contact fields survive only when the viewer
// owns the profile or holds an approved unlock for it; every other read gets
// them blanked. This is the only full-read boundary, so the gate lives here.
func (s *ProfileService) ByID(ctx context.Context, viewerEmail string, bioID int64) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	p, err := repo.GetByID(ctx, bioID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	if viewerEmail == p.OwnerEmail {
		return p, nil
	}

	unlocked := false
	if viewerEmail != "" {
		unlocked, err = s.repomanager.Unlocks(s.db).HasApproved(ctx, viewerEmail, bioID)
		if err != nil {
			return nil, fmt.Errorf("error checking unlock: %w", err)
		}
	}
	if !unlocked {
		p.ContactEmail = ""
		p.MobileNumber = ""
	}
	return p, nil
}

// FullByOwner returns the caller's own profile with every field populated.
func (s *ProfileService) FullByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	p, err := repo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return p, nil
}
