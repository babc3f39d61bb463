package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dummyHash is compared against when the email is unknown, so the unknown-
// email and wrong-password paths both cost one bcrypt comparison and stay
// indistinguishable from outside.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)

type AuthService struct {
	accounts repository.AccountRepository
	tokens   *TokenCodec
}

func NewAuthService(accounts repository.AccountRepository, tokens *TokenCodec) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Account *domain.Account
	Token   string
}

// Register validates the input, hashes the password and creates the account
// with the default user role. The unique index on email is the authority for
// duplicate detection; the lookup beforehand only provides a fast path.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 || len(name) > 50 {
		return nil, domain.Validationf("name must be between 2 and 50 characters")
	}

	email := normalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, domain.Validationf("invalid email format")
	}

	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	if existing, err := s.accounts.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateAccount
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, err
	}

	return account, nil
}

// Login verifies the credentials and issues a session token carrying the
// account's id and current role. The failure result never distinguishes an
// unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := normalizeEmail(input.Email)

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Deactivated accounts fail the same way as bad credentials.
	if !account.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Account: account, Token: token}, nil
}

// GetAccount resolves an account by id, for profile reads against a session.
func (s *AuthService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return domain.Validationf("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Validationf("password must contain at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
}
