package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/events"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/registry"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStreamServer(t *testing.T) (*httptest.Server, *session.Manager, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	descs, err := registry.LoadDefaults()
	require.NoError(t, err)
	reg, err := registry.New(descs...)
	require.NoError(t, err)

	sessions := session.NewManager(reg, files.Default(), session.DefaultConfig(), nil)
	t.Cleanup(sessions.Stop)
	metrics := monitoring.NewMetrics()

	router := gin.New()
	router.GET("/sessions/:id/stream", NewHandler(sessions, metrics, nil).HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sessions, metrics
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + sessionID + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readFrame reads frames until one has the wanted type
func readFrame(t *testing.T, conn *websocket.Conn, want string) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var frame map[string]interface{}
		require.NoError(t, sonic.Unmarshal(data, &frame))
		if frame["type"] == want {
			return frame
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]interface{}) {
	t.Helper()
	data, err := sonic.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestStreamWelcomeSnapshot(t *testing.T) {
	srv, sessions, _ := newStreamServer(t)
	s, err := sessions.Create()
	require.NoError(t, err)

	conn := dial(t, srv, s.ID)
	frame := readFrame(t, conn, "welcome")

	assert.Equal(t, s.ID, frame["session_id"])
	windows := frame["snapshot"].(map[string]interface{})["windows"].([]interface{})
	assert.Len(t, windows, 1)
}

func TestStreamForwardsChanges(t *testing.T) {
	srv, sessions, metrics := newStreamServer(t)
	s, err := sessions.Create()
	require.NoError(t, err)

	conn := dial(t, srv, s.ID)
	readFrame(t, conn, "welcome")

	send(t, conn, map[string]interface{}{"type": "open", "app_id": "terminal"})
	evt := readFrame(t, conn, events.TypeWindowOpened)
	assert.Equal(t, events.Source(s.ID), evt["source"])
	assert.Equal(t, "1.0", evt["specversion"])

	data := evt["data"].(map[string]interface{})
	assert.Equal(t, "terminal", data["window"].(map[string]interface{})["app"].(map[string]interface{})["id"])

	// Changes made outside the socket are streamed too
	s.Windows.SetStartMenuOpen(true)
	readFrame(t, conn, events.TypeStartMenuToggled)

	assert.Eventually(t, func() bool { return metrics.Snapshot().WSConnections == 1 }, time.Second, 10*time.Millisecond)
}

func TestStreamCommandErrors(t *testing.T) {
	srv, sessions, _ := newStreamServer(t)
	s, err := sessions.Create()
	require.NoError(t, err)

	conn := dial(t, srv, s.ID)
	readFrame(t, conn, "welcome")

	send(t, conn, map[string]interface{}{"type": "ping"})
	readFrame(t, conn, "pong")

	send(t, conn, map[string]interface{}{"type": "dance"})
	frame := readFrame(t, conn, "error")
	assert.Contains(t, frame["message"], "unknown message type")

	send(t, conn, map[string]interface{}{"type": "focus", "window_id": "missing"})
	frame = readFrame(t, conn, "error")
	assert.Contains(t, frame["message"], "window not found")

	send(t, conn, map[string]interface{}{"type": "open", "app_id": "ghost"})
	frame = readFrame(t, conn, "error")
	assert.Contains(t, frame["message"], "unknown app")

	send(t, conn, map[string]interface{}{
		"type": "geometry", "window_id": "missing",
		"size": map[string]interface{}{"width": 640, "height": 400.5},
	})
	frame = readFrame(t, conn, "error")
	assert.Equal(t, "malformed message", frame["message"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	frame = readFrame(t, conn, "error")
	assert.Equal(t, "malformed message", frame["message"])
}

func TestStreamClosesWhenSessionEnds(t *testing.T) {
	srv, sessions, _ := newStreamServer(t)
	s, err := sessions.Create()
	require.NoError(t, err)

	conn := dial(t, srv, s.ID)
	readFrame(t, conn, "welcome")

	require.NoError(t, sessions.Delete(s.ID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
			return
		}
	}
}

func TestStreamUnknownSession(t *testing.T) {
	srv, _, _ := newStreamServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/nope/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCommandsRejectedAfterSessionEnds(t *testing.T) {
	_, sessions, metrics := newStreamServer(t)
	s, err := sessions.Create()
	require.NoError(t, err)
	h := NewHandler(sessions, metrics, nil)

	frame, ok := h.handle(s, types.WSMessage{Type: "open", AppID: "terminal"})
	assert.False(t, ok, "successful commands answer through events")
	assert.Empty(t, frame.Type)

	require.NoError(t, sessions.Delete(s.ID))
	before := len(s.Windows.List())

	frame, ok = h.handle(s, types.WSMessage{Type: "open", AppID: "about"})
	require.True(t, ok)
	assert.Equal(t, "error", frame.Type)
	assert.Equal(t, "session ended", frame.Message)
	assert.Len(t, s.Windows.List(), before)
}
