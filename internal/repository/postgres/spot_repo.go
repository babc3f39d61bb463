package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
)

type spotRepository struct {
	store Accessor
}

func NewSpotRepository(store Accessor) *spotRepository {
	return &spotRepository{store: store}
}

func (r *spotRepository) Create(ctx context.Context, spot *domain.Spot) error {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}
	return translateStoreErr(ctx, db.Create(spot).Error)
}

func (r *spotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var spot domain.Spot
	if err := db.First(&spot, "id = ?", id).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return &spot, nil
}

func (r *spotRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Spot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var spots []*domain.Spot
	if err := db.Find(&spots, "id IN ?", ids).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return spots, nil
}

func (r *spotRepository) List(ctx context.Context, filter repository.SpotFilter) ([]*domain.Spot, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&domain.Spot{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR location ILIKE ? OR category ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", filter.Category)
	}

	var spots []*domain.Spot
	if err := query.Order("created_at DESC").Find(&spots).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return spots, nil
}
