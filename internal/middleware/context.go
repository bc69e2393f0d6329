package middleware

import (
	"context"

	"microblog/internal/model"
)

type contextKey string

const identityContextKey contextKey = "authenticated_identity"

// WithIdentity attaches the verified caller identity to the request context.
func WithIdentity(ctx context.Context, user model.AuthUser) context.Context {
	return context.WithValue(ctx, identityContextKey, user)
}

// IdentityFromContext returns the identity a guard attached, if any.
func IdentityFromContext(ctx context.Context) (model.AuthUser, bool) {
	user, ok := ctx.Value(identityContextKey).(model.AuthUser)
	return user, ok
}
