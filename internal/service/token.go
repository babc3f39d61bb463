package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/safetrip/safetrip/internal/domain"
)

// SessionClaims is the signed assertion carried by a session token. Role is
// a snapshot taken at issuance; a role change on the account only takes
// effect when the session is renewed. No revocation list exists, so a
// compromised token stays valid until its natural expiry. Rotating the
// signing secret invalidates every outstanding session.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

// TokenCodec issues and decodes signed session tokens.
type TokenCodec struct {
	secret []byte
	maxAge time.Duration
}

func NewTokenCodec(secret string, maxAge time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), maxAge: maxAge}
}

// Issue mints an HS256-signed token carrying the account id and role.
func (c *TokenCodec) Issue(accountID uuid.UUID, role domain.Role) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the identity the
// token asserts. Any failure collapses into domain.ErrSessionInvalid; the
// caller learns nothing about why a token was rejected.
func (c *TokenCodec) Decode(tokenString string) (*domain.Identity, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrSessionInvalid
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}
	if !claims.Role.IsValid() {
		return nil, domain.ErrSessionInvalid
	}

	return &domain.Identity{AccountID: accountID, Role: claims.Role}, nil
}
