package handlers

import (
	"fmt"
	"net/http"

	"bookstore_backend/internal/services"
	"bookstore_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/forgotPassword", h.ForgotPassword)
		auth.PATCH("/resetPassword/:token", h.ResetPassword)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data": gin.H{
			"user": user,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Bearer", token)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resetURLBase := h.resetURLBase(c)
	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email, resetURLBase); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// The token itself travels only by email.
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token sent to email",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	token, err := h.authService.ResetPassword(c.Request.Context(),
		c.Param("token"), req.Password, req.PasswordConfirm)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Bearer", token)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
	})
}

// resetURLBase rebuilds the public reset endpoint from the incoming request.
func (h *AuthHandler) resetURLBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/v1/auth/resetPassword/", scheme, c.Request.Host)
}
