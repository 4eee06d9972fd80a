package http

import (
	"fmt"
	"net/http"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListApps returns the application catalogue, optionally filtered to the
// taskbar (?pinned=true) or desktop (?desktop=true) subsets
func (h *Handlers) ListApps(c *gin.Context) {
	var apps []types.Descriptor
	switch {
	case c.Query("pinned") == "true":
		apps = h.registry.Pinned()
	case c.Query("desktop") == "true":
		apps = h.registry.Desktop()
	default:
		apps = h.registry.List()
	}

	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"stats": h.registry.Stats(),
	})
}

// GetApp returns one descriptor
func (h *Handlers) GetApp(c *gin.Context) {
	appID := c.Param("appId")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		badRequest(c, err)
		return
	}

	desc, ok := h.registry.Lookup(appID)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", desktop.ErrUnknownApp, appID))
		return
	}
	c.JSON(http.StatusOK, desc)
}

// ResolveFile returns the application associated with a file name
func (h *Handlers) ResolveFile(c *gin.Context) {
	name := c.Query("file")
	if err := utils.ValidateFileName(name); err != nil {
		badRequest(c, err)
		return
	}

	appID, ok := h.registry.ResolveFile(name)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"found": false, "file": name})
		return
	}
	desc, _ := h.registry.Lookup(appID)
	c.JSON(http.StatusOK, gin.H{"found": true, "file": name, "app": desc})
}

// ListWallpapers returns the wallpaper catalogue
func (h *Handlers) ListWallpapers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"wallpapers": preferences.Wallpapers,
		"default":    preferences.DefaultWallpaper,
	})
}

// GetPreferences returns the current preferences
func (h *Handlers) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.prefs.Get())
}

// UpdatePreferences applies a partial preferences update
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var req types.PreferencesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	prefs, err := h.prefs.Update(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Preferences updated",
		zap.String("theme", string(prefs.Theme)),
		zap.String("accent", string(prefs.Accent)),
		zap.String("wallpaper", prefs.Wallpaper))
	c.JSON(http.StatusOK, prefs)
}

// ListFiles returns the entries of a folder
func (h *Handlers) ListFiles(c *gin.Context) {
	dir := c.DefaultQuery("path", "/")
	if err := utils.ValidatePath(dir); err != nil {
		badRequest(c, err)
		return
	}

	entries, err := h.files.List(dir)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": dir, "entries": entries})
}
