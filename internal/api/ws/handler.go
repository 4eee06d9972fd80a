package ws

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/events"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/session"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin policy is enforced by the CORS middleware
	},
}

// Frame is a server message that is not a CloudEvent
type Frame struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Snapshot  *types.Snapshot `json:"snapshot,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Handler manages WebSocket connections
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logging.OrNop(logger).Named("ws"),
	}
}

// HandleConnection upgrades the request and streams the :id session
func (h *Handler) HandleConnection(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	log := h.logger.With(zap.String("session_id", s.ID))
	log.Info("Stream connected")

	// Subscribe before the snapshot so no change falls between the two
	evts, cancel := s.Events.Subscribe()
	defer cancel()

	out := make(chan []byte, sendBuffer)
	done := make(chan struct{})

	snapshot := s.Windows.Snapshot()
	h.enqueue(out, done, Frame{Type: "welcome", SessionID: s.ID, Snapshot: &snapshot})

	go func() {
		defer close(done)
		h.readLoop(conn, s, out, log)
	}()

	h.writeLoop(conn, evts, out, done, log)
	conn.Close()
	<-done

	log.Info("Stream disconnected")
}

// readLoop applies client commands until the connection fails
func (h *Handler) readLoop(conn *websocket.Conn, s *session.Session, out chan<- []byte, log *logging.Logger) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.reply(out, errorFrame("malformed message"))
			continue
		}
		h.record("in", commandLabel(msg.Type))

		if frame, ok := h.handle(s, msg); ok {
			h.reply(out, frame)
		}
	}
}

// handle marks the session active and applies msg. A session that ended
// while the connection was open accepts no further commands.
func (h *Handler) handle(s *session.Session, msg types.WSMessage) (Frame, bool) {
	if err := h.sessions.Touch(s.ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return errorFrame("session ended"), true
		}
		return errorFrame(err.Error()), true
	}
	return h.apply(s, msg)
}

// apply executes one command. It returns a frame when the client needs a
// direct answer; successful mutations answer through the event stream.
func (h *Handler) apply(s *session.Session, msg types.WSMessage) (Frame, bool) {
	wm := s.Windows

	switch msg.Type {
	case "ping":
		return Frame{Type: "pong"}, true
	case "open":
		if err := utils.ValidateID(msg.AppID, "app_id", true); err != nil {
			return errorFrame(err.Error()), true
		}
		if err := utils.ValidatePayload(msg.Payload); err != nil {
			return errorFrame(err.Error()), true
		}
		if _, ok := wm.Open(msg.AppID, msg.Payload); !ok {
			return errorFrame(fmt.Sprintf("unknown app: %s", msg.AppID)), true
		}
	case "close":
		return windowResult(msg.WindowID, wm.Close)
	case "focus":
		return windowResult(msg.WindowID, wm.Focus)
	case "minimize":
		return windowResult(msg.WindowID, wm.ToggleMinimize)
	case "maximize":
		return windowResult(msg.WindowID, wm.ToggleMaximize)
	case "geometry":
		if msg.Position == nil && msg.Size == nil {
			return errorFrame("position or size is required"), true
		}
		return windowResult(msg.WindowID, func(windowID string) bool {
			return wm.UpdateGeometry(windowID, msg.Position, msg.Size)
		})
	case "start_menu":
		if msg.Open == nil {
			s.Shell.ToggleStartMenu()
		} else {
			wm.SetStartMenuOpen(*msg.Open)
		}
	default:
		return errorFrame(fmt.Sprintf("unknown message type: %s", msg.Type)), true
	}
	return Frame{}, false
}

func windowResult(windowID string, op func(string) bool) (Frame, bool) {
	if err := utils.ValidateID(windowID, "window_id", true); err != nil {
		return errorFrame(err.Error()), true
	}
	if !op(windowID) {
		return errorFrame(fmt.Sprintf("window not found: %s", windowID)), true
	}
	return Frame{}, false
}

// writeLoop is the connection's only writer
func (h *Handler) writeLoop(conn *websocket.Conn, evts <-chan events.Event, out <-chan []byte, done <-chan struct{}, log *logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case data := <-out:
			if err := write(conn, websocket.TextMessage, data); err != nil {
				return
			}
		case e, ok := <-evts:
			if !ok {
				// Session ended
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"),
					time.Now().Add(writeWait))
				return
			}
			data, err := sonic.Marshal(e)
			if err != nil {
				log.Error("Failed to encode event", zap.String("event_type", e.Type()), zap.Error(err))
				continue
			}
			if err := write(conn, websocket.TextMessage, data); err != nil {
				return
			}
			h.record("out", e.Type())
		case <-ticker.C:
			if err := write(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func write(conn *websocket.Conn, messageType int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(messageType, data)
}

// enqueue queues f unless the connection is gone
func (h *Handler) enqueue(out chan<- []byte, done <-chan struct{}, f Frame) {
	if f.Timestamp == 0 {
		f.Timestamp = time.Now().Unix()
	}
	data, err := sonic.Marshal(f)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.String("type", f.Type), zap.Error(err))
		return
	}
	select {
	case out <- data:
		h.record("out", f.Type)
	case <-done:
	}
}

// reply queues f from the read loop, dropping it if the writer is backed up
func (h *Handler) reply(out chan<- []byte, f Frame) {
	f.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(f)
	if err != nil {
		return
	}
	select {
	case out <- data:
		h.record("out", f.Type)
	default:
		h.logger.Warn("Reply dropped, client too slow", zap.String("type", f.Type))
	}
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}

var commands = map[string]bool{
	"open": true, "close": true, "focus": true, "minimize": true,
	"maximize": true, "geometry": true, "start_menu": true, "ping": true,
}

// commandLabel bounds the metric label set to known commands
func commandLabel(msgType string) string {
	if commands[msgType] {
		return msgType
	}
	return "unknown"
}

func errorFrame(msg string) Frame {
	return Frame{Type: "error", Message: msg}
}
