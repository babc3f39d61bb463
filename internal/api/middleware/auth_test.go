package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuth(t *testing.T) {
	codec := service.NewTokenCodec("test-signing-secret", time.Hour)
	accountID := uuid.New()

	var captured *domain.Identity
	handler := Auth(codec, domain.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := codec.Issue(accountID, domain.RoleUser)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, accountID, captured.AccountID)
	assert.Equal(t, domain.RoleUser, captured.Role)
}

func TestAuthRejectsBadRequests(t *testing.T) {
	codec := service.NewTokenCodec("test-signing-secret", time.Hour)
	handler := Auth(codec, domain.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	expired, err := service.NewTokenCodec("test-signing-secret", -time.Minute).Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)
	foreign, err := service.NewTokenCodec("other-secret", time.Hour).Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name       string
		request    func() *http.Request
		wantStatus int
	}{
		{"missing header", func() *http.Request { return authedRequest("") }, http.StatusUnauthorized},
		{"wrong scheme", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Basic abc123")
			return req
		}, http.StatusUnauthorized},
		{"garbage token", func() *http.Request { return authedRequest("not-a-token") }, http.StatusUnauthorized},
		{"expired token", func() *http.Request { return authedRequest(expired) }, http.StatusUnauthorized},
		{"foreign signature", func() *http.Request { return authedRequest(foreign) }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.request())
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			// The body must match the handlers' error shape.
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAuthEnforcesMinimumRole(t *testing.T) {
	codec := service.NewTokenCodec("test-signing-secret", time.Hour)

	userToken, err := codec.Issue(uuid.New(), domain.RoleUser)
	require.NoError(t, err)
	adminToken, err := codec.Issue(uuid.New(), domain.RoleAdmin)
	require.NoError(t, err)
	superToken, err := codec.Issue(uuid.New(), domain.RoleSuperAdmin)
	require.NoError(t, err)

	handler := Auth(codec, domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(userToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrForbidden.Error(), body["error"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(superToken))
	assert.Equal(t, http.StatusOK, rec.Code)
}
