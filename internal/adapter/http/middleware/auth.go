package middleware

import (
	"net/http"
	"strings"

	"github.com/demobank/demobank/internal/infrastructure/auth"
)

// AuthMiddleware verifies bearer tokens issued by the session service.
type AuthMiddleware struct {
	tokens *auth.JWTManager
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Wrap rejects requests without a valid bearer token.
func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing bearer token"}`))
			return
		}

		if _, err := m.tokens.Verify(token); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid token"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
