package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/crisphq/crisp-backend/internal/ws"
)

// DashboardHandler streams interview lifecycle events to reviewer
// dashboards over WebSocket.
type DashboardHandler struct {
	hub      *ws.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewDashboardHandler creates a new DashboardHandler. An empty
// allowedOrigins slice permits all origins (development mode).
func NewDashboardHandler(hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *DashboardHandler {
	return &DashboardHandler{
		hub: hub,
		log: log.With().Str("component", "dashboard_handler").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
	}
}

// Stream godoc
// WS /ws/v1/dashboard/stream
// Upgrades to WebSocket and forwards session.started / session.completed
// events until the client disconnects.
func (h *DashboardHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// The stream is server-to-client only; the read loop exists to notice
	// disconnects and honor close frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
