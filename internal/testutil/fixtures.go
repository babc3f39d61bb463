package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/safetrip/safetrip/internal/domain"
)

// SeedAccount stores an active account with a real bcrypt hash so login
// paths exercise the same comparison production does.
func SeedAccount(t *testing.T, repos *Repos, name, email, password string, role domain.Role) *domain.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repos.Accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

// SeedSpot stores an active catalog entry with minimal valid fields.
func SeedSpot(t *testing.T, repos *Repos, title string) *domain.Spot {
	t.Helper()

	now := time.Now()
	spot := &domain.Spot{
		ID:          uuid.New(),
		Title:       title,
		Description: "A quiet stretch of coastline with white sand.",
		Location:    "Palawan",
		Category:    "Beach",
		Price:       1500,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repos.Spots.Create(context.Background(), spot); err != nil {
		t.Fatalf("seed spot: %v", err)
	}
	return spot
}

// SeedApplication stores an application in the given status with the given
// creation time, for ordering and counting tests.
func SeedApplication(t *testing.T, repos *Repos, accountID, spotID uuid.UUID, status domain.ApplicationStatus, createdAt time.Time) *domain.Application {
	t.Helper()

	application := &domain.Application{
		ID:        uuid.New(),
		AccountID: accountID,
		SpotID:    spotID,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := repos.Applications.Create(context.Background(), application); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return application
}
