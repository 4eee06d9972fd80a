package http

import (
	"errors"
	"net/http"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, files.ErrNotFound),
		errors.Is(err, desktop.ErrUnknownApp):
		return http.StatusNotFound
	case errors.Is(err, preferences.ErrInvalidTheme),
		errors.Is(err, preferences.ErrInvalidAccent),
		errors.Is(err, preferences.ErrUnknownWallpaper),
		errors.Is(err, desktop.ErrNoAssociation),
		errors.Is(err, files.ErrNotAFile),
		errors.Is(err, files.ErrNotADirectory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Server errors are logged
// and attached to the context for tracing.
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a validation failure
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
