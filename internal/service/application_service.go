package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
)

// SpotCatalog is the narrow view of the catalog the application lifecycle
// needs: existence checks and display snapshots.
type SpotCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Spot, error)
}

type ApplicationService struct {
	accounts     repository.AccountRepository
	applications repository.ApplicationRepository
	catalog      SpotCatalog
}

func NewApplicationService(
	accounts repository.AccountRepository,
	applications repository.ApplicationRepository,
	catalog SpotCatalog,
) *ApplicationService {
	return &ApplicationService{
		accounts:     accounts,
		applications: applications,
		catalog:      catalog,
	}
}

// AccountApplications is the caller's application history joined with spot
// snapshots and aggregate status counts.
type AccountApplications struct {
	Account      *domain.Account       `json:"account"`
	Applications []*domain.Application `json:"applications"`
	Counts       domain.StatusCounts   `json:"counts"`
}

// Submit creates a pending application binding the caller to a spot. The
// existence check is only a fast path; the storage-level unique constraint
// on (account_id, spot_id) decides duplicates, so concurrent submissions
// for the same pair resolve to exactly one record. Submit is never retried
// internally after an ambiguous failure.
func (s *ApplicationService) Submit(ctx context.Context, identity *domain.Identity, spotID uuid.UUID) (*domain.Application, error) {
	if identity == nil {
		return nil, domain.ErrSessionInvalid
	}

	// The session may outlive its account.
	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	if _, err := s.catalog.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	if _, err := s.applications.GetByAccountAndSpot(ctx, account.ID, spotID); err == nil {
		return nil, domain.ErrDuplicateApplication
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	application := &domain.Application{
		ID:        uuid.New(),
		AccountID: account.ID,
		SpotID:    spotID,
		Status:    domain.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, err
	}

	return application, nil
}

// ListForAccount returns the caller's applications newest-first, each joined
// with its spot snapshot. Applications whose spot has been removed keep a
// nil snapshot rather than being dropped.
func (s *ApplicationService) ListForAccount(ctx context.Context, identity *domain.Identity) (*AccountApplications, error) {
	if identity == nil {
		return nil, domain.ErrSessionInvalid
	}

	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	applications, err := s.applications.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if applications == nil {
		applications = []*domain.Application{}
	}

	if err := s.resolveSpots(ctx, applications); err != nil {
		return nil, err
	}

	counts, err := s.applications.CountByStatus(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &AccountApplications{
		Account:      account,
		Applications: applications,
		Counts:       counts,
	}, nil
}

// ListAll returns every application newest-first for administrative review,
// optionally filtered by status.
func (s *ApplicationService) ListAll(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.Application, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.Validationf("unknown application status %q", *status)
	}

	applications, err := s.applications.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSpots(ctx, applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// Transition moves a pending application to accepted or rejected. Both
// targets are terminal; anything else conflicts.
func (s *ApplicationService) Transition(ctx context.Context, id uuid.UUID, target domain.ApplicationStatus) (*domain.Application, error) {
	if !target.IsValid() || !target.Terminal() {
		return nil, domain.Validationf("status must be %q or %q", domain.ApplicationAccepted, domain.ApplicationRejected)
	}

	if _, err := s.applications.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}

	moved, err := s.applications.TransitionStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrInvalidTransition
	}

	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return application, nil
}

func (s *ApplicationService) resolveSpots(ctx context.Context, applications []*domain.Application) error {
	if len(applications) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(applications))
	ids := make([]uuid.UUID, 0, len(applications))
	for _, application := range applications {
		if _, ok := seen[application.SpotID]; ok {
			continue
		}
		seen[application.SpotID] = struct{}{}
		ids = append(ids, application.SpotID)
	}

	spots, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, application := range applications {
		application.Spot = spots[application.SpotID]
	}
	return nil
}
