package http

import (
	"net/http"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// appParam validates the :appId parameter
func appParam(c *gin.Context) (string, bool) {
	appID := c.Param("appId")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return appID, true
}

// SetStartMenu opens or closes the start menu
func (h *Handlers) SetStartMenu(c *gin.Context) {
	var req types.StartMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	wm := currentSession(c).Windows
	wm.SetStartMenuOpen(req.Open)
	c.JSON(http.StatusOK, gin.H{"open": wm.StartMenuOpen()})
}

// ToggleStartMenu flips the start menu
func (h *Handlers) ToggleStartMenu(c *gin.Context) {
	s := currentSession(c)
	open := s.Shell.ToggleStartMenu()
	c.JSON(http.StatusOK, gin.H{
		"open": open,
		"apps": s.Shell.StartMenu(),
	})
}

// Taskbar returns the pinned apps with their open indicators
func (h *Handlers) Taskbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": currentSession(c).Shell.Taskbar()})
}

// ClickTaskbar opens, restores or focuses an app from the taskbar
func (h *Handlers) ClickTaskbar(c *gin.Context) {
	appID, ok := appParam(c)
	if !ok {
		return
	}

	windowID, success := currentSession(c).Shell.ClickTaskbar(appID)
	c.JSON(http.StatusOK, gin.H{"success": success, "window_id": windowID, "app_id": appID})
}

// Launch opens an app from the start menu and closes the menu
func (h *Handlers) Launch(c *gin.Context) {
	appID, ok := appParam(c)
	if !ok {
		return
	}

	windowID, success := currentSession(c).Shell.Launch(appID)
	c.JSON(http.StatusOK, gin.H{"success": success, "window_id": windowID, "app_id": appID})
}

// DesktopIcons returns the apps shown on the desktop surface
func (h *Handlers) DesktopIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": currentSession(c).Shell.DesktopIcons()})
}

// OpenFile opens a file with its associated application
func (h *Handlers) OpenFile(c *gin.Context) {
	var req types.OpenFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePath(req.Path); err != nil {
		badRequest(c, err)
		return
	}

	s := currentSession(c)
	windowID, err := s.Shell.OpenFile(req.Path)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Debug("File opened",
		zap.String("session_id", s.ID),
		zap.String("path", req.Path),
		zap.String("window_id", windowID))
	c.JSON(http.StatusOK, gin.H{"success": true, "window_id": windowID, "path": req.Path})
}

// DismissWelcome replaces the welcome window with the portfolio
func (h *Handlers) DismissWelcome(c *gin.Context) {
	windowID, success := currentSession(c).Shell.DismissWelcome()
	c.JSON(http.StatusOK, gin.H{"success": success, "window_id": windowID})
}
