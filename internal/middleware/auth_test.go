package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"microblog/internal/model"
	"microblog/internal/token"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s stubVerifier) Verify(string) (string, error) { return s.subject, s.err }

type stubLookup struct {
	user model.AuthUser
	err  error
}

func (s stubLookup) GetProfile(context.Context, string) (model.AuthUser, error) {
	return s.user, s.err
}

func runLocalGuard(t *testing.T, verifier stubVerifier, lookup stubLookup, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reachedHandler := false
	guard := NewAuthMiddleware(verifier, lookup)
	handler := guard.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedHandler = true
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, identity.ID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reachedHandler
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestLocalGuardNoToken(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc123"} {
		rec, reached := runLocalGuard(t, stubVerifier{}, stubLookup{}, header)
		require.False(t, reached, "header %q", header)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Not authorized, no token", decodeMessage(t, rec))
	}
}

func TestLocalGuardTokenFailed(t *testing.T) {
	for _, verifyErr := range []error{token.ErrExpired, token.ErrMalformed, token.ErrInvalidSignature} {
		rec, reached := runLocalGuard(t,
			stubVerifier{err: verifyErr},
			stubLookup{},
			"Bearer some-token")
		require.False(t, reached)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Not authorized, token failed", decodeMessage(t, rec))
	}
}

func TestLocalGuardUserNotFound(t *testing.T) {
	rec, reached := runLocalGuard(t,
		stubVerifier{subject: "user-1"},
		stubLookup{err: model.ErrUserNotFound},
		"Bearer some-token")
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not authorized, user not found", decodeMessage(t, rec))
}

func TestLocalGuardStoreFaultFailsClosed(t *testing.T) {
	rec, reached := runLocalGuard(t,
		stubVerifier{subject: "user-1"},
		stubLookup{err: errors.New("connection reset")},
		"Bearer some-token")
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not authorized, token failed", decodeMessage(t, rec))
}

func TestLocalGuardPassThrough(t *testing.T) {
	identity := model.AuthUser{ID: "user-1", Username: "John Doe", Email: "johndoe@example.com"}
	rec, reached := runLocalGuard(t,
		stubVerifier{subject: "user-1"},
		stubLookup{user: identity},
		"Bearer some-token")
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
}
