package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST API on router. stream, when non-nil,
// serves the per-session WebSocket.
func RegisterRoutes(router gin.IRouter, h *Handlers, stream gin.HandlerFunc) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	reg := router.Group("/registry")
	{
		reg.GET("/apps", h.ListApps)
		reg.GET("/apps/:appId", h.GetApp)
		reg.GET("/resolve", h.ResolveFile)
	}

	router.GET("/wallpapers", h.ListWallpapers)
	router.GET("/preferences", h.GetPreferences)
	router.PUT("/preferences", h.UpdatePreferences)
	router.GET("/files", h.ListFiles)

	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions", h.ListSessions)

	s := router.Group("/sessions/:id", h.LoadSession())
	{
		s.GET("", h.GetSession)
		s.DELETE("", h.DeleteSession)

		s.GET("/windows", h.ListWindows)
		s.POST("/windows", h.OpenWindow)
		s.DELETE("/windows/:wid", h.CloseWindow)
		s.PATCH("/windows/:wid", h.UpdateWindow)
		s.POST("/windows/:wid/focus", h.FocusWindow)
		s.POST("/windows/:wid/minimize", h.MinimizeWindow)
		s.POST("/windows/:wid/maximize", h.MaximizeWindow)
		s.GET("/windows/:wid/frame", h.WindowFrame)

		s.PUT("/start-menu", h.SetStartMenu)
		s.POST("/start-menu/toggle", h.ToggleStartMenu)
		s.GET("/taskbar", h.Taskbar)
		s.POST("/taskbar/:appId/click", h.ClickTaskbar)
		s.POST("/launch/:appId", h.Launch)
		s.GET("/desktop-icons", h.DesktopIcons)
		s.POST("/files/open", h.OpenFile)
		s.POST("/welcome/dismiss", h.DismissWelcome)

		if stream != nil {
			s.GET("/stream", stream)
		}
	}
}
