package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrip/safetrip/internal/domain"
)

const testSecret = "test-signing-secret"

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	accountID := uuid.New()

	token, err := codec.Issue(accountID, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, identity.AccountID)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestTokenCodecExpired(t *testing.T) {
	codec := NewTokenCodec(testSecret, -time.Minute)

	token, err := codec.Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	token, err := NewTokenCodec(testSecret, time.Hour).Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenCodec("rotated-secret", time.Hour).Decode(token)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenCodecTampered(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	_, err = codec.Decode(token + "x")
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)

	_, err = codec.Decode("not-a-token")
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenCodecRejectsUnsignedToken(t *testing.T) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: domain.RoleSuperAdmin,
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret, time.Hour).Decode(unsigned)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenCodecRejectsBadClaims(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	sign := func(claims SessionClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}

	expiry := jwt.NewNumericDate(time.Now().Add(time.Hour))

	badSubject := sign(SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid", ExpiresAt: expiry},
		Role:             domain.RoleUser,
	})
	_, err := codec.Decode(badSubject)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)

	badRole := sign(SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: expiry},
		Role:             domain.Role("owner"),
	})
	_, err = codec.Decode(badRole)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}
