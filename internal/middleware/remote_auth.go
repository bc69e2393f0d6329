package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"microblog/internal/model"
	"microblog/pkg/apierror"
)

type identityResolver interface {
	Me(ctx context.Context, bearerToken string) (model.AuthUser, error)
}

// RemoteAuthMiddleware guards services that hold no credentials of their
// own: it forwards the caller's bearer token to the identity provider and
// adopts the returned identity. An explicit upstream rejection is passed
// through verbatim; an unreachable upstream collapses into a generic 401 so
// callers cannot probe infrastructure state.
type RemoteAuthMiddleware struct {
	resolver identityResolver
}

func NewRemoteAuthMiddleware(resolver identityResolver) *RemoteAuthMiddleware {
	return &RemoteAuthMiddleware{resolver: resolver}
}

func (m *RemoteAuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := BearerToken(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.resolver.Me(r.Context(), bearer)
		if err != nil {
			var apiErr *apierror.APIError
			if errors.As(err, &apiErr) {
				writeMessage(w, apiErr.HTTPStatus, apiErr.Message)
				return
			}

			slog.Error("identity provider unreachable", "error", err)
			writeMessage(w, http.StatusUnauthorized, "Authentication failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user)))
	})
}
