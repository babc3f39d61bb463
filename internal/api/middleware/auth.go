package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth validates the bearer token and enforces a minimum role. The decoded
// claims are trusted as issued; no store lookup happens here, so a role
// change on the account only applies once the session is renewed.
func Auth(tokens *service.TokenCodec, minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			identity, err := tokens.Decode(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, domain.ErrSessionInvalid.Error())
				return
			}

			if !identity.Role.AtLeast(minRole) {
				writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated identity from context.
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// writeError mirrors the handlers' error body shape.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
