package live

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler поднимает WebSocket соединения для live-обновлений
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler создаёт handler; checkOrigin решает, пускать ли handshake
func NewHandler(hub *Hub, checkOrigin func(r *http.Request) bool, log *zap.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		log: log,
	}
}

// RegisterRoutes регистрирует /ws
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.WebSocket)
}

// WebSocket godoc
// @Summary Подписка на состояние рецептов
// @Tags Live
// @Router /ws [get]
func (h *Handler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.ServeWS(conn)
}
