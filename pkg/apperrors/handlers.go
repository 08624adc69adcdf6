package apperrors

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// GinErrorHandler renders AppErrors as JSON responses. In development mode
// the full error and a stack trace are included; in production only
// operational errors reveal their message.
type GinErrorHandler struct {
	Dev    bool
	Logger *slog.Logger
}

func NewGinErrorHandler(dev bool, logger *slog.Logger) *GinErrorHandler {
	return &GinErrorHandler{Dev: dev, Logger: logger}
}

// Handle converts err to an AppError if needed and writes the response.
func (h *GinErrorHandler) Handle(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if h.Dev {
		h.sendDev(c, appErr)
		return
	}
	h.sendProd(c, appErr)
}

func (h *GinErrorHandler) sendDev(c *gin.Context, appErr *AppError) {
	body := gin.H{
		"status":  appErr.Status(),
		"message": appErr.Message,
		"error":   appErr,
		"stack":   string(debug.Stack()),
	}
	if appErr.Err != nil {
		body["cause"] = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(appErr.HTTPCode, body)
}

func (h *GinErrorHandler) sendProd(c *gin.Context, appErr *AppError) {
	if appErr.Operational {
		c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{
			"status":  appErr.Status(),
			"message": appErr.Message,
		})
		return
	}

	// Defect: log the full detail server-side, reveal nothing.
	if h.Logger != nil {
		h.Logger.Error("unexpected error",
			slog.String("code", string(appErr.Code)),
			slog.String("error", appErr.Error()),
			slog.String("path", c.Request.URL.Path),
		)
	}
	c.AbortWithStatusJSON(500, gin.H{
		"status":  "error",
		"message": "Something went wrong!",
	})
}
