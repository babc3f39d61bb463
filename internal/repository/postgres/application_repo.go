package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/safetrip/safetrip/internal/domain"
)

type applicationRepository struct {
	store Accessor
}

func NewApplicationRepository(store Accessor) *applicationRepository {
	return &applicationRepository{store: store}
}

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application) error {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}
	return translateStoreErr(ctx, db.Create(application).Error)
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var application domain.Application
	if err := db.First(&application, "id = ?", id).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return &application, nil
}

func (r *applicationRepository) GetByAccountAndSpot(ctx context.Context, accountID, spotID uuid.UUID) (*domain.Application, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var application domain.Application
	if err := db.First(&application, "account_id = ? AND spot_id = ?", accountID, spotID).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return &application, nil
}

func (r *applicationRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Application, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var applications []*domain.Application
	err = db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return applications, nil
}

func (r *applicationRepository) List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.Application, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&domain.Application{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var applications []*domain.Application
	if err := query.Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return applications, nil
}

func (r *applicationRepository) CountByStatus(ctx context.Context, accountID uuid.UUID) (domain.StatusCounts, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return domain.StatusCounts{}, err
	}

	var rows []struct {
		Status domain.ApplicationStatus
		Count  int64
	}
	err = db.Model(&domain.Application{}).
		Select("status, count(*) as count").
		Where("account_id = ?", accountID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return domain.StatusCounts{}, translateStoreErr(ctx, err)
	}

	var counts domain.StatusCounts
	for _, row := range rows {
		switch row.Status {
		case domain.ApplicationPending:
			counts.Pending = row.Count
		case domain.ApplicationAccepted:
			counts.Accepted = row.Count
		case domain.ApplicationRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}

func (r *applicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, target domain.ApplicationStatus) (bool, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return false, err
	}

	// The status guard makes concurrent reviews race-safe: only one
	// update can move the row out of pending.
	result := db.Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, domain.ApplicationPending).
		Updates(map[string]any{
			"status":     target,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, translateStoreErr(ctx, result.Error)
	}
	return result.RowsAffected > 0, nil
}
