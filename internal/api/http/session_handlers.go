package http

import (
	"net/http"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

const sessionKey = "webdesk.session"

// LoadSession resolves the :id parameter to a live session and marks it active
func (h *Handlers) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
			badRequest(c, err)
			c.Abort()
			return
		}

		if err := h.sessions.Touch(sessionID); err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}
		s, err := h.sessions.Get(sessionID)
		if err != nil {
			h.respondError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// currentSession returns the session loaded by LoadSession
func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// CreateSession starts a new desktop session
func (h *Handlers) CreateSession(c *gin.Context) {
	s, err := h.sessions.Create()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session":  s.Info(),
		"snapshot": s.Windows.Snapshot(),
	})
}

// ListSessions returns all live sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession returns a session's full window state
func (h *Handlers) GetSession(c *gin.Context) {
	s := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"session":  s.Info(),
		"snapshot": s.Windows.Snapshot(),
	})
}

// DeleteSession ends a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	s := currentSession(c)
	if err := h.sessions.Delete(s.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": s.ID})
}
