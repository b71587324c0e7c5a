package handler

import (
	"log"
	"net/http"

	"campuslink/backend/internal/chathub"
	"campuslink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the handshake and upgrades the connection.
// An invalid or missing credential is refused before any event is accepted;
// banned identities are refused as well.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	email, _, err := h.parseJWT(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	banned, err := h.Storage.IsUserBanned(email)
	if err != nil {
		log.Printf("ERROR: Ban check failed for %s: %v", email, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if banned {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		Hub:    h.Hub,
		Email:  email,
		ConnID: uuid.New().String(),
		Conn:   conn,
		Send:   make(chan models.OutboundEvent, 256),
	}

	// Реєстрація клієнта в Hub та запуск pumps
	h.Hub.RegisterCh <- client
	client.Run()
}
