package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// windowParam validates the :wid parameter
func windowParam(c *gin.Context) (string, bool) {
	windowID := c.Param("wid")
	if err := utils.ValidateID(windowID, "window_id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return windowID, true
}

// windowResult reports the outcome of a window operation
func windowResult(c *gin.Context, success bool, windowID string) {
	c.JSON(http.StatusOK, gin.H{"success": success, "window_id": windowID})
}

// OpenWindow opens an application window
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateID(req.AppID, "app_id", true); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePayload(req.Payload); err != nil {
		badRequest(c, err)
		return
	}

	windowID, ok := currentSession(c).Windows.Open(req.AppID, req.Payload)
	c.JSON(http.StatusOK, gin.H{"success": ok, "window_id": windowID, "app_id": req.AppID})
}

// ListWindows returns the session's windows in creation order
func (h *Handlers) ListWindows(c *gin.Context) {
	windows := currentSession(c).Windows.List()
	c.JSON(http.StatusOK, gin.H{"windows": windows, "count": len(windows)})
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	windowResult(c, currentSession(c).Windows.Close(windowID), windowID)
}

// FocusWindow raises a window to the top
func (h *Handlers) FocusWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	windowResult(c, currentSession(c).Windows.Focus(windowID), windowID)
}

// MinimizeWindow toggles a window's minimized state
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	windowResult(c, currentSession(c).Windows.ToggleMinimize(windowID), windowID)
}

// MaximizeWindow toggles a window's maximized state
func (h *Handlers) MaximizeWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}
	windowResult(c, currentSession(c).Windows.ToggleMaximize(windowID), windowID)
}

// UpdateWindow moves and/or resizes a window
func (h *Handlers) UpdateWindow(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	var req types.GeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Position == nil && req.Size == nil {
		badRequest(c, fmt.Errorf("position or size is required"))
		return
	}

	windowResult(c, currentSession(c).Windows.UpdateGeometry(windowID, req.Position, req.Size), windowID)
}

// WindowFrame resolves a window's on-screen rectangle for a viewport
func (h *Handlers) WindowFrame(c *gin.Context) {
	windowID, ok := windowParam(c)
	if !ok {
		return
	}

	width, err := positiveQuery(c, "width")
	if err != nil {
		badRequest(c, err)
		return
	}
	height, err := positiveQuery(c, "height")
	if err != nil {
		badRequest(c, err)
		return
	}

	w, found := currentSession(c).Windows.Get(windowID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("window not found: %s", windowID)})
		return
	}

	vp := window.Viewport{Width: width, Height: height}
	c.JSON(http.StatusOK, gin.H{
		"window_id": windowID,
		"viewport":  vp,
		"frame":     window.Frame(w, vp, h.taskbarHeight),
	})
}

func positiveQuery(c *gin.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}
