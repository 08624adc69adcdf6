package routes

import (
	"fmt"
	"net/http"

	"bookstore_backend/internal/handlers"
	"bookstore_backend/internal/middleware"
	"bookstore_backend/internal/models"
	"bookstore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Guards bundles the route protection middleware.
type Guards struct {
	Auth      gin.HandlerFunc
	AdminOnly gin.HandlerFunc
}

// NewGuards builds the standard guard set from the access-guard factory.
func NewGuards(authMW gin.HandlerFunc, errs *apperrors.GinErrorHandler) Guards {
	return Guards{
		Auth:      authMW,
		AdminOnly: middleware.RequireRoles(errs, models.RoleAdmin),
	}
}

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(r *gin.Engine, appHandlers *handlers.AppHandlers, guards Guards, errs *apperrors.GinErrorHandler) {
	api := r.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.BookHandler.RegisterRoutes(api, guards.Auth, guards.AdminOnly)

		api.GET("/health-check", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "success",
				"data": gin.H{
					"msg": "server is running!",
				},
			})
		})
	}

	r.NoRoute(func(c *gin.Context) {
		errs.Handle(c, apperrors.NewNotFoundError(
			fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path)))
	})
}
