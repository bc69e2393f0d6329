package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"microblog/internal/model"
	"microblog/internal/token"
)

type tokenVerifier interface {
	Verify(tokenString string) (string, error)
}

type identityLookup interface {
	GetProfile(ctx context.Context, id string) (model.AuthUser, error)
}

// AuthMiddleware is the identity provider's own guard: it verifies the
// bearer token locally against the signing secret, then resolves the
// subject against the credential store.
type AuthMiddleware struct {
	verifier tokenVerifier
	users    identityLookup
}

func NewAuthMiddleware(verifier tokenVerifier, users identityLookup) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

func (m *AuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := BearerToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		subjectID, err := m.verifier.Verify(bearer)
		if err != nil {
			// Expired and malformed are logged apart for observability but
			// share one response body.
			slog.Warn("token rejected", "reason", tokenReason(err), "path", r.URL.Path)
			writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		user, err := m.users.GetProfile(r.Context(), subjectID)
		if errors.Is(err, model.ErrUserNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		if err != nil {
			// Store fault: fail closed, never open.
			slog.Error("identity lookup failed", "error", err)
			writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user)))
	})
}

// BearerToken extracts the bearer credential from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	bearer := strings.TrimSpace(header[len("bearer "):])
	return bearer, bearer != ""
}

func tokenReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	default:
		return "invalid_signature"
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{Message: message})
}
