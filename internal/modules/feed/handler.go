package feed

import (
	"net/http"

	"congrego/internal/middleware"
	"congrego/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the SPA origin; CORS policy is enforced on
	// the REST surface, the feed is read-only public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
	log *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/calendar", middleware.Require(middleware.Public), h.Subscribe)
}

// Subscribe upgrades the request and keeps the connection registered
// until the client goes away. Incoming frames are discarded; the feed is
// one-way.
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UPGRADE_FAILED", "WebSocket upgrade failed")
		return
	}

	id := h.hub.register(conn)
	h.log.Info("calendar feed subscriber connected", zap.Int64("conn_id", id))

	go func() {
		defer h.hub.unregister(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
