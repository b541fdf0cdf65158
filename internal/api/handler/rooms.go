package handler

import (
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/moderation"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ListRooms returns the room directory.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Storage.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// ToggleFavorite stars or unstars a room for the viewer.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	uid := c.GetString("uid")
	roomID := c.Param("id")

	profile, err := h.loadProfile(uid)
	if err != nil || profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No profile yet"})
		return
	}

	if profile.HasFavorite(roomID) {
		err = h.Storage.RemoveFavorite(uid, roomID)
	} else {
		err = h.Storage.AddFavorite(uid, roomID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": !profile.HasFavorite(roomID)})
}

// roomAccessible checks the viewer may read roomID. Public rooms must exist
// in the seeded directory; private chat logs require participation and no
// rejection.
func (h *Handler) roomAccessible(uid, roomID string) (bool, error) {
	if models.IsPrivateChatID(roomID) {
		chat, err := h.Storage.GetChat(roomID)
		if err != nil {
			return false, err
		}
		if chat == nil || !chat.HasParticipant(uid) || chat.Status == models.ChatStatusRejected {
			return false, nil
		}
		return true, nil
	}
	room, err := h.Storage.GetRoom(roomID)
	if err != nil {
		return false, err
	}
	return room != nil, nil
}

// RoomHistory returns the most recent messages of a room, filtered through
// the viewer's block list. No pagination beyond the last 50.
func (h *Handler) RoomHistory(c *gin.Context) {
	uid := c.GetString("uid")
	roomID := c.Param("id")

	ok, err := h.roomAccessible(uid, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	messages, err := h.Storage.GetRecentMessages(roomID, config.MessageHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	viewer, err := h.loadProfile(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": moderation.FilterForViewer(messages, viewer)})
}

// RoomPresence returns the online users of a room. The count is eventually
// consistent with actual connections.
func (h *Handler) RoomPresence(c *gin.Context) {
	uid := c.GetString("uid")
	roomID := c.Param("id")

	ok, err := h.roomAccessible(uid, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	users, err := h.Storage.GetRoomPresence(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load presence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// RoomTyping returns who is typing right now, excluding the viewer.
func (h *Handler) RoomTyping(c *gin.Context) {
	uid := c.GetString("uid")
	roomID := c.Param("id")

	ok, err := h.roomAccessible(uid, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	typing, err := h.Storage.GetTypingUsers(roomID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load typing state"})
		return
	}
	others := make([]string, 0, len(typing))
	for _, t := range typing {
		if t != uid {
			others = append(others, t)
		}
	}
	c.JSON(http.StatusOK, gin.H{"typing": others})
}
