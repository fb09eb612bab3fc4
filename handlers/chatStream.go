package handlers

import (
	"net/http"
	"time"

	"oneday/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsReadLimit  = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS already allows every origin for the REST API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type streamEvent struct {
	Type    string          `json:"type"`
	Message *models.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// StreamChat upgrades to a websocket that pushes every new chat message and
// accepts {"text": "..."} frames as sends.
func (hb *HandlerBundle) StreamChat(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	logger := getLogger(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("chat stream upgrade failed", zap.Error(err))
		return
	}

	stream, cancel := s.Conversation().Subscribe()
	outbound := make(chan streamEvent, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer cancel()
		conn.SetReadLimit(wsReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			var in struct {
				Text string `json:"text"`
			}
			if err := conn.ReadJSON(&in); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Info("chat stream read ended", zap.Error(err))
				}
				return
			}
			// the sent message comes back through the subscription
			if _, err := s.SendMessage(c.Request.Context(), in.Text); err != nil {
				select {
				case outbound <- streamEvent{Type: "error", Error: err.Error()}:
				default:
				}
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		_ = conn.Close()
		<-done
	}()

	for {
		var ev streamEvent
		select {
		case msg, open := <-stream:
			if !open {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "chat closed"))
				return
			}
			ev = streamEvent{Type: "message", Message: &msg}
		case ev = <-outbound:
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		case <-done:
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(ev); err != nil {
			logger.Info("chat stream write failed", zap.Error(err))
			return
		}
	}
}
