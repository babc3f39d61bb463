package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/safetrip/safetrip/internal/domain"
)

type accountRepository struct {
	store Accessor
}

func NewAccountRepository(store Accessor) *accountRepository {
	return &accountRepository{store: store}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}
	return translateStoreErr(ctx, db.Create(account).Error)
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := db.First(&account, "id = ?", id).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := r.store.OpContext(ctx)
	defer cancel()

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := db.First(&account, "email = ?", email).Error; err != nil {
		return nil, translateStoreErr(ctx, err)
	}
	return &account, nil
}
