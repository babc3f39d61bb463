// Package testutil provides in-memory repository fakes and request helpers
// for tests. The fakes enforce the same uniqueness rules the postgres
// layer does, surfacing gorm.ErrDuplicatedKey so error translation paths
// behave identically.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
)

// Repos bundles the in-memory fakes.
type Repos struct {
	Accounts     *AccountRepo
	Spots        *SpotRepo
	Applications *ApplicationRepo
}

func NewRepos() *Repos {
	return &Repos{
		Accounts:     &AccountRepo{accounts: map[uuid.UUID]*domain.Account{}},
		Spots:        &SpotRepo{spots: map[uuid.UUID]*domain.Spot{}},
		Applications: &ApplicationRepo{applications: map[uuid.UUID]*domain.Application{}},
	}
}

// Repositories adapts the fakes to the repository interfaces.
func (r *Repos) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Account:     r.Accounts,
		Spot:        r.Spots,
		Application: r.Applications,
	}
}

// AccountRepo is an in-memory AccountRepository. Set Err to force every
// operation to fail with it.
type AccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*domain.Account
	Err      error
}

func (r *AccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *AccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *account
	return &cp, nil
}

func (r *AccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	for _, account := range r.accounts {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Delete removes an account, for session-outlives-account tests.
func (r *AccountRepo) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
}

// SpotRepo is an in-memory SpotRepository.
type SpotRepo struct {
	mu    sync.Mutex
	spots map[uuid.UUID]*domain.Spot
	Err   error
}

func (r *SpotRepo) Create(_ context.Context, spot *domain.Spot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	cp := *spot
	r.spots[spot.ID] = &cp
	return nil
}

func (r *SpotRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	spot, ok := r.spots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *spot
	return &cp, nil
}

func (r *SpotRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var spots []*domain.Spot
	for _, id := range ids {
		if spot, ok := r.spots[id]; ok {
			cp := *spot
			spots = append(spots, &cp)
		}
	}
	return spots, nil
}

func (r *SpotRepo) List(_ context.Context, filter repository.SpotFilter) ([]*domain.Spot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var spots []*domain.Spot
	for _, spot := range r.spots {
		if filter.ActiveOnly && !spot.IsActive {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(spot.Category, filter.Category) {
			continue
		}
		if filter.Search != "" && !spotMatches(spot, filter.Search) {
			continue
		}
		cp := *spot
		spots = append(spots, &cp)
	}
	sort.Slice(spots, func(i, j int) bool {
		return spots[i].CreatedAt.After(spots[j].CreatedAt)
	})
	return spots, nil
}

// Delete removes a spot, for missing-snapshot tests.
func (r *SpotRepo) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spots, id)
}

func spotMatches(spot *domain.Spot, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{spot.Title, spot.Description, spot.Location, spot.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// ApplicationRepo is an in-memory ApplicationRepository enforcing the
// unique (account, spot) pair.
type ApplicationRepo struct {
	mu           sync.Mutex
	applications map[uuid.UUID]*domain.Application
	Err          error
}

func (r *ApplicationRepo) Create(_ context.Context, application *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.applications {
		if existing.AccountID == application.AccountID && existing.SpotID == application.SpotID {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *application
	cp.Spot = nil
	r.applications[application.ID] = &cp
	return nil
}

func (r *ApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	application, ok := r.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *application
	return &cp, nil
}

func (r *ApplicationRepo) GetByAccountAndSpot(_ context.Context, accountID, spotID uuid.UUID) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	for _, application := range r.applications {
		if application.AccountID == accountID && application.SpotID == spotID {
			cp := *application
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *ApplicationRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var applications []*domain.Application
	for _, application := range r.applications {
		if application.AccountID == accountID {
			cp := *application
			applications = append(applications, &cp)
		}
	}
	sortNewestFirst(applications)
	return applications, nil
}

func (r *ApplicationRepo) List(_ context.Context, status *domain.ApplicationStatus) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	var applications []*domain.Application
	for _, application := range r.applications {
		if status != nil && application.Status != *status {
			continue
		}
		cp := *application
		applications = append(applications, &cp)
	}
	sortNewestFirst(applications)
	return applications, nil
}

func (r *ApplicationRepo) CountByStatus(_ context.Context, accountID uuid.UUID) (domain.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return domain.StatusCounts{}, r.Err
	}
	var counts domain.StatusCounts
	for _, application := range r.applications {
		if application.AccountID != accountID {
			continue
		}
		switch application.Status {
		case domain.ApplicationPending:
			counts.Pending++
		case domain.ApplicationAccepted:
			counts.Accepted++
		case domain.ApplicationRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (r *ApplicationRepo) TransitionStatus(_ context.Context, id uuid.UUID, target domain.ApplicationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return false, r.Err
	}
	application, ok := r.applications[id]
	if !ok || application.Status != domain.ApplicationPending {
		return false, nil
	}
	application.Status = target
	return true, nil
}

func sortNewestFirst(applications []*domain.Application) {
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].CreatedAt.After(applications[j].CreatedAt)
	})
}
