package http

import (
	"net/http"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/preferences"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Deps are the components the handlers serve
type Deps struct {
	Sessions      *session.Manager
	Registry      *registry.Registry
	Files         *files.FS
	Preferences   *preferences.Store
	Metrics       *monitoring.Metrics
	TaskbarHeight int
	Logger        *logging.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions      *session.Manager
	registry      *registry.Registry
	files         *files.FS
	prefs         *preferences.Store
	metrics       *monitoring.Metrics
	taskbarHeight int
	logger        *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(d Deps) *Handlers {
	taskbar := d.TaskbarHeight
	if taskbar <= 0 {
		taskbar = window.DefaultTaskbarHeight
	}
	return &Handlers{
		sessions:      d.Sessions,
		registry:      d.Registry,
		files:         d.Files,
		prefs:         d.Preferences,
		metrics:       d.Metrics,
		taskbarHeight: taskbar,
		logger:        logging.OrNop(d.Logger).Named("http"),
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk desktop shell",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Len(),
		"registry": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}
