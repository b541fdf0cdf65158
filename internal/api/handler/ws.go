package handler

import (
	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and joins the requested room. The
// session token comes from the token query parameter (browsers cannot set
// headers on websocket requests).
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	uid, err := ValidateToken(h.JWTSecret, tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	banned, err := h.Storage.IsUserBanned(uid)
	if err == nil && banned {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Identity is banned"})
		return
	}

	roomID := c.Query("room")
	if roomID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "room parameter missing"})
		return
	}
	ok, err := h.roomAccessible(uid, roomID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	profile, err := h.loadProfile(uid)
	if err != nil || profile == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No profile yet"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	blocked := make(map[string]bool, len(profile.BlockedUsers))
	for _, b := range profile.BlockedUsers {
		blocked[b] = true
	}

	client := &chathub.WebSocketClient{
		Hub:     h.Hub,
		UserID:  uid,
		RoomID:  roomID,
		Profile: profile.DisplaySnapshot(),
		Blocked: blocked,
		Conn:    conn,
		Send:    make(chan models.WireMessage, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
