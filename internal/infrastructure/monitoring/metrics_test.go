package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/window"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsIsolated(t *testing.T) {
	// separate registries: constructing twice must not panic
	a := NewMetrics()
	b := NewMetrics()
	a.SessionStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.SessionsActive))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.SessionsActive))
}

func TestWindowAndSessionAccounting(t *testing.T) {
	m := NewMetrics()

	m.SessionStarted()
	m.WindowChanged(window.ChangeOpened)
	m.WindowChanged(window.ChangeOpened)
	m.WindowChanged(window.ChangeOpened)
	m.WindowChanged(window.ChangeFocused)
	m.WindowChanged(window.ChangeClosed)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.WindowsOpen))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.WindowOperations.WithLabelValues("opened")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WindowOperations.WithLabelValues("focused")))

	m.SessionEnded("idle", 2)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.WindowsOpen))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsEnded.WithLabelValues("idle")))

	snap := m.Snapshot()
	assert.Equal(t, int64(0), snap.ActiveSessions)
	assert.Equal(t, int64(0), snap.OpenWindows)
}

func TestRegistryAndWebSocketMetrics(t *testing.T) {
	m := NewMetrics()

	m.SetRegistryApps(13)
	m.RecordRegistryReload(nil)
	m.RecordRegistryReload(errors.New("bad manifest"))
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "open")

	assert.Equal(t, float64(13), testutil.ToFloat64(m.RegistryApps))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistryReloads.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RegistryReloads.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WSMessages.WithLabelValues("in", "open")))
	assert.Equal(t, int64(1), m.Snapshot().WSConnections)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/sessions/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/sessions/a", "/sessions/b", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SessionStarted()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "webdesk_sessions_active 1"))
	assert.Contains(t, body, "webdesk_uptime_seconds")
}
