package handlers

import (
	"bookstore_backend/internal/logger"
	"bookstore_backend/internal/models"
	"bookstore_backend/internal/validator"
	"bookstore_backend/pkg/apperrors"
	"bookstore_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
	errs      *apperrors.GinErrorHandler
}

func NewBaseHandler(v *validator.Validator, errs *apperrors.GinErrorHandler) *BaseHandler {
	return &BaseHandler{
		validator: v,
		errs:      errs,
	}
}

// BindAndValidateJSON binds the JSON body and validates it. On failure the
// error response is already written and false is returned.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		h.errs.Handle(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			h.errs.Handle(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			h.errs.Handle(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError renders a service error, distinguishing operational
// AppErrors from defects.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		h.errs.Handle(c, appErr)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	h.errs.Handle(c, apperrors.InternalError(err))
}

// CurrentUser returns the principal attached by the access guard.
func (h *BaseHandler) CurrentUser(c *gin.Context) (*models.User, bool) {
	return contextkeys.CurrentUser(c.Request.Context())
}
