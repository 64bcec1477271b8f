package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/salonbelle/salon-scheduler/internal/config"
	"github.com/salonbelle/salon-scheduler/internal/middleware"
	"github.com/salonbelle/salon-scheduler/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin is enforced by the CORS layer in front of the API
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub    *notify.Hub
	config *config.Config
}

func NewWSHandler(hub *notify.Hub, cfg *config.Config) *WSHandler {
	return &WSHandler{hub: hub, config: cfg}
}

// Serve upgrades the connection and joins the caller's own change feed.
// Auth travels in ?token= since websockets cannot set headers.
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	user, err := middleware.ParseToken(token, h.config.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.ServeWS(ws, user.ID, []string{notify.StylistTopic(user.ID)})
}
