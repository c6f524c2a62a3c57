package hub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades GET /ws requests and keeps the connection registered
// for broadcasts until it closes. There is no subscription filtering and
// no initial-state replay: a client only sees events fired while it is
// connected.
type Handler struct {
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket upgrade handler. allowedOrigins
// controls which origins may connect; "*" or an empty list permits all.
func NewHandler(h *Hub, allowedOrigins []string, logger *zap.Logger) *Handler {
	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	return &Handler{
		hub:    h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowedOrigins {
					if o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// ServeWS handles GET /ws.
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", zap.Error(err))
		return
	}

	sess := NewSession(conn, h.logger)
	h.hub.Register(sess)
	h.readPump(sess)
}

// readPump consumes inbound frames until the connection dies. Clients
// have nothing to say today; reading still drives pong handling and
// close detection.
func (h *Handler) readPump(s *Session) {
	defer func() {
		h.hub.Unregister(s.ID)
		s.Close()
	}()

	s.Conn.SetReadLimit(maxInboundFrameBytes)
	s.SetReadDeadline()
	s.Conn.SetPongHandler(func(string) error {
		s.SetReadDeadline()
		return nil
	})

	for {
		if _, _, err := s.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) {
				h.logger.Warn("ws unexpected close", zap.Uint64("session_id", s.ID), zap.Error(err))
			}
			return
		}
		s.SetReadDeadline()
	}
}
