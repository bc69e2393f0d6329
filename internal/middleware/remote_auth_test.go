package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"microblog/internal/model"
	"microblog/pkg/apierror"
)

type stubResolver struct {
	user   model.AuthUser
	err    error
	called bool
}

func (s *stubResolver) Me(context.Context, string) (model.AuthUser, error) {
	s.called = true
	return s.user, s.err
}

func runRemoteGuard(t *testing.T, resolver *stubResolver, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reachedHandler := false
	guard := NewRemoteAuthMiddleware(resolver)
	handler := guard.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedHandler = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reachedHandler
}

func TestRemoteGuardNoTokenSkipsNetwork(t *testing.T) {
	resolver := &stubResolver{}
	rec, reached := runRemoteGuard(t, resolver, "")

	require.False(t, reached)
	require.False(t, resolver.called, "upstream must not be called without a token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized", decodeMessage(t, rec))
}

func TestRemoteGuardUpstreamRejectionPassesThrough(t *testing.T) {
	// Whatever status and message the identity provider rejected with is
	// what the caller sees, unmodified.
	resolver := &stubResolver{err: apierror.New("Not authorized, token failed", http.StatusUnauthorized)}
	rec, reached := runRemoteGuard(t, resolver, "Bearer some-token")

	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not authorized, token failed", decodeMessage(t, rec))
}

func TestRemoteGuardUpstreamUnreachable(t *testing.T) {
	resolver := &stubResolver{err: errors.New("dial tcp: connection refused")}
	rec, reached := runRemoteGuard(t, resolver, "Bearer some-token")

	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authentication failed", decodeMessage(t, rec))
}

func TestRemoteGuardPassThrough(t *testing.T) {
	resolver := &stubResolver{user: model.AuthUser{ID: "user-1", Username: "John Doe"}}

	guard := NewRemoteAuthMiddleware(resolver)
	handler := guard.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", identity.ID)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
