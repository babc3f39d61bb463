package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
	"github.com/safetrip/safetrip/internal/testutil"
)

func newApplicationService(repos *testutil.Repos) *ApplicationService {
	catalog := NewSpotService(repos.Spots, nil, zap.NewNop())
	return NewApplicationService(repos.Accounts, repos.Applications, catalog)
}

func identityFor(account *domain.Account) *domain.Identity {
	return &domain.Identity{AccountID: account.ID, Role: account.Role}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	svc := newApplicationService(repos)

	application, err := svc.Submit(ctx, identityFor(account), spot.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationPending, application.Status)
	assert.Equal(t, account.ID, application.AccountID)
	assert.Equal(t, spot.ID, application.SpotID)
	assert.NotEqual(t, uuid.Nil, application.ID)
}

func TestSubmitRequiresIdentity(t *testing.T) {
	svc := newApplicationService(testutil.NewRepos())

	_, err := svc.Submit(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestSubmitAccountDeleted(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	svc := newApplicationService(repos)

	// The session token outlives the account record.
	repos.Accounts.Delete(account.ID)

	_, err := svc.Submit(ctx, identityFor(account), spot.ID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSubmitUnknownSpot(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	svc := newApplicationService(repos)

	_, err := svc.Submit(ctx, identityFor(account), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSpotNotFound)
}

func TestSubmitDuplicate(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	svc := newApplicationService(repos)

	_, err := svc.Submit(ctx, identityFor(account), spot.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, identityFor(account), spot.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)

	// Only one record exists for the pair.
	applications, err := repos.Applications.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Len(t, applications, 1)
}

// blindApplicationRepo hides existing rows from the pre-insert lookup so the
// unique (account_id, spot_id) index catches the duplicate, modeling two
// submissions racing past each other's existence check.
type blindApplicationRepo struct {
	repository.ApplicationRepository
}

func (r blindApplicationRepo) GetByAccountAndSpot(context.Context, uuid.UUID, uuid.UUID) (*domain.Application, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSubmitDuplicateCaughtByConstraint(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	testutil.SeedApplication(t, repos, account.ID, spot.ID, domain.ApplicationPending, time.Now())

	catalog := NewSpotService(repos.Spots, nil, zap.NewNop())
	svc := NewApplicationService(repos.Accounts, blindApplicationRepo{repos.Applications}, catalog)

	_, err := svc.Submit(ctx, identityFor(account), spot.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateApplication)
}

func TestListForAccountEmpty(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	svc := newApplicationService(repos)

	result, err := svc.ListForAccount(ctx, identityFor(account))
	require.NoError(t, err)

	assert.NotNil(t, result.Applications)
	assert.Empty(t, result.Applications)
	assert.Equal(t, domain.StatusCounts{}, result.Counts)
}

func TestListForAccount(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	other := testutil.SeedAccount(t, repos, "Bob", "bob@example.com", "Sunshine1", domain.RoleUser)
	first := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	second := testutil.SeedSpot(t, repos, "Cloud Forest Trek")
	vanished := testutil.SeedSpot(t, repos, "Old Lighthouse")

	base := time.Now().Add(-time.Hour)
	testutil.SeedApplication(t, repos, account.ID, first.ID, domain.ApplicationAccepted, base)
	testutil.SeedApplication(t, repos, account.ID, vanished.ID, domain.ApplicationRejected, base.Add(10*time.Minute))
	testutil.SeedApplication(t, repos, account.ID, second.ID, domain.ApplicationPending, base.Add(20*time.Minute))
	testutil.SeedApplication(t, repos, other.ID, first.ID, domain.ApplicationPending, base)

	// The catalog entry disappears after the application was filed.
	repos.Spots.Delete(vanished.ID)

	svc := newApplicationService(repos)
	result, err := svc.ListForAccount(ctx, identityFor(account))
	require.NoError(t, err)

	require.Len(t, result.Applications, 3)

	// Newest first.
	assert.Equal(t, second.ID, result.Applications[0].SpotID)
	assert.Equal(t, vanished.ID, result.Applications[1].SpotID)
	assert.Equal(t, first.ID, result.Applications[2].SpotID)

	// Spot snapshots resolve where the catalog entry still exists; the
	// application with the removed spot is kept with a nil snapshot.
	require.NotNil(t, result.Applications[0].Spot)
	assert.Equal(t, "Cloud Forest Trek", result.Applications[0].Spot.Title)
	assert.Nil(t, result.Applications[1].Spot)
	require.NotNil(t, result.Applications[2].Spot)

	assert.Equal(t, domain.StatusCounts{Pending: 1, Accepted: 1, Rejected: 1}, result.Counts)
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	first := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	second := testutil.SeedSpot(t, repos, "Cloud Forest Trek")

	base := time.Now().Add(-time.Hour)
	testutil.SeedApplication(t, repos, account.ID, first.ID, domain.ApplicationPending, base)
	testutil.SeedApplication(t, repos, account.ID, second.ID, domain.ApplicationAccepted, base.Add(time.Minute))

	svc := newApplicationService(repos)

	all, err := svc.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := domain.ApplicationPending
	filtered, err := svc.ListAll(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].SpotID)

	unknown := domain.ApplicationStatus("approved")
	_, err = svc.ListAll(ctx, &unknown)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	application := testutil.SeedApplication(t, repos, account.ID, spot.ID, domain.ApplicationPending, time.Now())
	svc := newApplicationService(repos)

	updated, err := svc.Transition(ctx, application.ID, domain.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, updated.Status)

	// Terminal states admit no further transition.
	_, err = svc.Transition(ctx, application.ID, domain.ApplicationRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionValidation(t *testing.T) {
	ctx := context.Background()
	repos := testutil.NewRepos()
	account := testutil.SeedAccount(t, repos, "Alice", "alice@example.com", "Sunshine1", domain.RoleUser)
	spot := testutil.SeedSpot(t, repos, "Hidden Lagoon")
	application := testutil.SeedApplication(t, repos, account.ID, spot.ID, domain.ApplicationPending, time.Now())
	svc := newApplicationService(repos)

	var verr *domain.ValidationError

	// Pending is not a legal target, nor are unknown statuses.
	_, err := svc.Transition(ctx, application.ID, domain.ApplicationPending)
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Transition(ctx, application.ID, domain.ApplicationStatus("approved"))
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Transition(ctx, uuid.New(), domain.ApplicationAccepted)
	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}
