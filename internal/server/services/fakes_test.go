package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/models"
	accountsrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/accounts"
	countersrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/counters"
	favoritesrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/favorites"
	profilesrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/profiles"
	storiesrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/stories"
	unlocksrepo "github.com/tanvirrahman/matrimony/internal/server/repositories/unlocks"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- stateful fakes, one per repository ---

type fakeCounters struct {
	mu  sync.Mutex
	seq int64
	err error
}

func (f *fakeCounters) Next(ctx context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.seq++
	return f.seq, nil
}

type fakeAccounts struct {
	byEmail map[string]*models.Account

	createErr error
	getErr    error
	setErr    error
	listErr   error
	countErr  error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: make(map[string]*models.Account)}
}

func (f *fakeAccounts) Create(ctx context.Context, a *models.Account) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return false, nil
	}
	cp := *a
	f.byEmail[a.Email] = &cp
	return true, nil
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) SetTierRequested(ctx context.Context, email string, bioID int64) error {
	if f.setErr != nil {
		return f.setErr
	}
	a, ok := f.byEmail[email]
	if ok && a.Tier == models.TierNone {
		a.Tier = models.TierRequested
		a.RequestedBioID = bioID
	}
	return nil
}

func (f *fakeAccounts) SetTierPremium(ctx context.Context, email string) error {
	if f.setErr != nil {
		return f.setErr
	}
	a, ok := f.byEmail[email]
	if !ok || a.Tier != models.TierRequested {
		return common.ErrInvalidState
	}
	a.Tier = models.TierPremium
	return nil
}

func (f *fakeAccounts) SetRoleAdmin(ctx context.Context, email string) error {
	if f.setErr != nil {
		return f.setErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return common.ErrNotFound
	}
	a.Role = models.RoleAdmin
	return nil
}

func (f *fakeAccounts) ListByTier(ctx context.Context, tier string, excludeEmail string) ([]*models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Account
	for _, a := range f.byEmail {
		if a.Tier == tier && a.Email != excludeEmail {
			cp := *a
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (f *fakeAccounts) CountByTier(ctx context.Context, tier string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for _, a := range f.byEmail {
		if a.Tier == tier {
			n++
		}
	}
	return n, nil
}

// fakeProfiles is safe for concurrent use so tests can run submissions in
// parallel against it.
type fakeProfiles struct {
	mu   sync.Mutex
	byID map[int64]*models.Profile

	createErr error
	updateErr error
	getErr    error
	listErr   error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: make(map[int64]*models.Profile)}
}

func (f *fakeProfiles) Create(ctx context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	f.byID[p.BioID] = &cp
	return nil
}

func (f *fakeProfiles) Update(ctx context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	existing, ok := f.byID[p.BioID]
	if !ok || existing.OwnerEmail != p.OwnerEmail {
		return common.ErrNotFound
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	f.byID[p.BioID] = &cp
	return nil
}

func (f *fakeProfiles) SetPremium(ctx context.Context, bioID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[bioID]
	if !ok {
		return common.ErrNotFound
	}
	p.Premium = true
	return nil
}

func (f *fakeProfiles) GetByID(ctx context.Context, bioID int64) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[bioID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.byID {
		if p.OwnerEmail == ownerEmail {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProfiles) List(ctx context.Context, category string, limit int) ([]*models.ProfileSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.ProfileSummary
	for _, p := range f.byID {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		result = append(result, p.Summary())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BioID < result[j].BioID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeProfiles) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), nil
}

func (f *fakeProfiles) CountByCategory(ctx context.Context, category string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.byID {
		if strings.EqualFold(p.Category, category) {
			n++
		}
	}
	return n, nil
}

type fakeUnlocks struct {
	records  []*models.ContactUnlock
	profiles *fakeProfiles

	createErr error
	getErr    error
	setErr    error
	listErr   error
	sumErr    error
}

func (f *fakeUnlocks) Create(ctx context.Context, u *models.ContactUnlock) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *u
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeUnlocks) GetByID(ctx context.Context, id string) (*models.ContactUnlock, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.records {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUnlocks) SetApproved(ctx context.Context, id string) error {
	if f.setErr != nil {
		return f.setErr
	}
	for _, u := range f.records {
		if u.ID == id {
			if u.Status != models.UnlockPending {
				return common.ErrInvalidState
			}
			u.Status = models.UnlockApproved
			return nil
		}
	}
	return common.ErrInvalidState
}

func (f *fakeUnlocks) ListByRequester(ctx context.Context, requesterEmail string) ([]*models.ContactUnlockDetail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.ContactUnlockDetail
	for _, u := range f.records {
		if u.RequesterEmail != requesterEmail {
			continue
		}
		p, ok := f.profiles.byID[u.BioID]
		if !ok {
			continue
		}
		result = append(result, &models.ContactUnlockDetail{
			ContactUnlock: *u,
			ProfileName:   p.Name,
			MobileNumber:  p.MobileNumber,
			ContactEmail:  p.ContactEmail,
		})
	}
	return result, nil
}

func (f *fakeUnlocks) ListPending(ctx context.Context) ([]*models.ContactUnlock, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.ContactUnlock
	for _, u := range f.records {
		if u.Status == models.UnlockPending {
			cp := *u
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeUnlocks) HasApproved(ctx context.Context, requesterEmail string, bioID int64) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	for _, u := range f.records {
		if u.RequesterEmail == requesterEmail && u.BioID == bioID && u.Status == models.UnlockApproved {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUnlocks) SumApprovedAmounts(ctx context.Context) (int64, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	var sum int64
	for _, u := range f.records {
		if u.Status == models.UnlockApproved {
			sum += u.AmountCents
		}
	}
	return sum, nil
}

type fakeFavorites struct {
	records  []*models.Favorite
	profiles *fakeProfiles

	createErr error
	listErr   error
}

func (f *fakeFavorites) Create(ctx context.Context, fav *models.Favorite) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *fav
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeFavorites) ListByOwner(ctx context.Context, ownerEmail string) ([]*models.FavoriteDetail, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.FavoriteDetail
	for _, fav := range f.records {
		if fav.OwnerEmail != ownerEmail {
			continue
		}
		p, ok := f.profiles.byID[fav.BioID]
		if !ok {
			continue
		}
		result = append(result, &models.FavoriteDetail{
			Favorite:          *fav,
			Name:              p.Name,
			PermanentDivision: p.PermanentDivision,
			Occupation:        p.Occupation,
		})
	}
	return result, nil
}

func (f *fakeFavorites) Delete(ctx context.Context, id string, ownerEmail string) error {
	for i, fav := range f.records {
		if fav.ID == id && fav.OwnerEmail == ownerEmail {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeStories struct {
	records []*models.SuccessStory

	createErr error
	listErr   error
}

func (f *fakeStories) Create(ctx context.Context, s *models.SuccessStory) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *s
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeStories) GetByID(ctx context.Context, id string) (*models.SuccessStory, error) {
	for _, s := range f.records {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStories) List(ctx context.Context) ([]*models.SuccessStory, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	// newest first
	result := make([]*models.SuccessStory, 0, len(f.records))
	for i := len(f.records) - 1; i >= 0; i-- {
		cp := *f.records[i]
		result = append(result, &cp)
	}
	return result, nil
}

// fakeRepoManager hands the same fakes back for any DBTX, so code running
// inside WithTx shares state with code running outside.
type fakeRepoManager struct {
	counters  *fakeCounters
	accounts  *fakeAccounts
	profiles  *fakeProfiles
	unlocks   *fakeUnlocks
	favorites *fakeFavorites
	stories   *fakeStories
}

func newFakeRepoManager() *fakeRepoManager {
	profiles := newFakeProfiles()
	return &fakeRepoManager{
		counters:  &fakeCounters{},
		accounts:  newFakeAccounts(),
		profiles:  profiles,
		unlocks:   &fakeUnlocks{profiles: profiles},
		favorites: &fakeFavorites{profiles: profiles},
		stories:   &fakeStories{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Counters(db dbx.DBTX) countersrepo.Repository        { return m.counters }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository        { return m.accounts }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository        { return m.profiles }
func (m *fakeRepoManager) Unlocks(db dbx.DBTX) unlocksrepo.Repository          { return m.unlocks }
func (m *fakeRepoManager) Favorites(db dbx.DBTX) favoritesrepo.Repository      { return m.favorites }
func (m *fakeRepoManager) Stories(db dbx.DBTX) storiesrepo.Repository          { return m.stories }
