package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/safetrip/safetrip/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// SpotFilter narrows catalog listings. Search matches title, description,
// location and category case-insensitively.
type SpotFilter struct {
	Search     string
	Category   string
	ActiveOnly bool
}

type SpotRepository interface {
	Create(ctx context.Context, spot *domain.Spot) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Spot, error)
	List(ctx context.Context, filter SpotFilter) ([]*domain.Spot, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetByAccountAndSpot(ctx context.Context, accountID, spotID uuid.UUID) (*domain.Application, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Application, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.Application, error)
	CountByStatus(ctx context.Context, accountID uuid.UUID) (domain.StatusCounts, error)
	// TransitionStatus moves a pending application to the target status.
	// It reports false when the application was not pending anymore, so
	// two concurrent reviews cannot both win.
	TransitionStatus(ctx context.Context, id uuid.UUID, target domain.ApplicationStatus) (bool, error)
}

type Repositories struct {
	Account     AccountRepository
	Spot        SpotRepository
	Application ApplicationRepository
}
