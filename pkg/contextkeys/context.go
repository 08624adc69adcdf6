package contextkeys

import (
	"context"

	"bookstore_backend/internal/models"
)

// Custom key type to avoid collisions with other packages.
type contextKey string

const currentUserKey = contextKey("current_user")

// WithCurrentUser returns a context carrying the authenticated principal.
// The access guard sets this after a bearer token has been fully verified.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser extracts the authenticated principal, if any.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
