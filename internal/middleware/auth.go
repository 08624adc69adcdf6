package middleware

import (
	"strings"

	"bookstore_backend/internal/auth"
	"bookstore_backend/internal/config"
	"bookstore_backend/internal/logger"
	"bookstore_backend/internal/models"
	"bookstore_backend/internal/repositories"
	"bookstore_backend/pkg/apperrors"
	"bookstore_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is the access guard for protected routes: it extracts the
// bearer token, verifies it, loads the current user, rejects tokens issued
// before the last password change and attaches the principal to the request
// context.
func AuthMiddleware(cfg *config.Config, users repositories.UserRepository, errs *apperrors.GinErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errs.Handle(c, apperrors.NewUnauthorizedError(
				"You are not logged in! Please log in to get access."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			errs.Handle(c, apperrors.NewUnauthorizedError(
				"You are not logged in! Please log in to get access."))
			return
		}

		claims, err := auth.ParseToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			// Uniform messages regardless of the cryptographic failure reason.
			if apperrors.Is(err, auth.ErrExpiredToken) {
				errs.Handle(c, apperrors.New(apperrors.CodeTokenExpired,
					"Your token has expired! Please log in again.", 401))
				return
			}
			errs.Handle(c, apperrors.New(apperrors.CodeInvalidToken,
				"Invalid login, please log in again!", 401))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				errs.Handle(c, apperrors.NewUnauthorizedError(
					"The user belonging to this token does no longer exist."))
				return
			}
			errs.Handle(c, apperrors.InternalError(err))
			return
		}

		if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
			errs.Handle(c, apperrors.NewUnauthorizedError(
				"User recently changed password! Please log in again."))
			return
		}

		ctx := contextkeys.WithCurrentUser(c.Request.Context(), user)
		ctx = logger.WithUserID(ctx, user.ID.Hex())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. It must run after
// AuthMiddleware: a missing principal here is a guard-ordering defect, not a
// client error, and is reported as 404.
func RequireRoles(errs *apperrors.GinErrorHandler, roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		user, ok := contextkeys.CurrentUser(c.Request.Context())
		if !ok {
			logger.CtxError(c.Request.Context(),
				"RequireRoles called without an authenticated user",
				"path", c.Request.URL.Path)
			errs.Handle(c, apperrors.NewNotFoundError("user is undefined."))
			return
		}

		if !roleSet[user.Role] {
			errs.Handle(c, apperrors.NewForbiddenError(
				"You do not have permission to perform this action"))
			return
		}

		c.Next()
	}
}
