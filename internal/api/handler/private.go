package handler

import (
	"anonchat/backend/internal/localization"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/privatechat"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type initiateRequest struct {
	TargetUID      string `json:"target_uid"`
	TargetNickname string `json:"target_nickname"`
	TargetAvatar   string `json:"target_avatar"`
}

// InitiatePrivateChat opens (or finds) the canonical chat with the target and
// notifies them when they are connected.
func (h *Handler) InitiatePrivateChat(c *gin.Context) {
	uid := c.GetString("uid")

	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_uid is required"})
		return
	}

	profile, err := h.loadProfile(uid)
	if err != nil || profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No profile yet"})
		return
	}

	self := models.ChatParticipant{UID: uid, Nickname: profile.Nickname, Avatar: profile.Avatar}
	target := models.ChatParticipant{UID: req.TargetUID, Nickname: req.TargetNickname, Avatar: req.TargetAvatar}

	chatID, err := h.Private.Initiate(self, target)
	if err != nil {
		h.privateError(c, err)
		return
	}

	h.notify(req.TargetUID, chatID, localization.KeyRequestReceived)
	c.JSON(http.StatusOK, gin.H{"chat_id": chatID})
}

// AcceptPrivateChat flips a pending request to accepted. Only the
// non-initiating participant may call this.
func (h *Handler) AcceptPrivateChat(c *gin.Context) {
	uid := c.GetString("uid")
	chatID := c.Param("id")

	if err := h.Private.Accept(uid, chatID); err != nil {
		h.privateError(c, err)
		return
	}

	if chat, err := h.Storage.GetChat(chatID); err == nil && chat != nil {
		h.notify(chat.InitiatorID, chatID, localization.KeyRequestAccepted)
	}
	c.Status(http.StatusNoContent)
}

// RejectPrivateChat flips a pending request to rejected. The row is kept.
func (h *Handler) RejectPrivateChat(c *gin.Context) {
	uid := c.GetString("uid")
	chatID := c.Param("id")

	if err := h.Private.Reject(uid, chatID); err != nil {
		h.privateError(c, err)
		return
	}

	if chat, err := h.Storage.GetChat(chatID); err == nil && chat != nil {
		h.notify(chat.InitiatorID, chatID, localization.KeyRequestRejected)
	}
	c.Status(http.StatusNoContent)
}

// ListPrivateChats returns the viewer's chats, newest activity first.
func (h *Handler) ListPrivateChats(c *gin.Context) {
	chats, err := h.Private.ListChats(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chats"})
		return
	}
	if chats == nil {
		chats = []models.PrivateChat{}
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// PrivateCounters returns the badge counts for the viewer.
func (h *Handler) PrivateCounters(c *gin.Context) {
	counters, err := h.Private.GetCounters(c.GetString("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute counters"})
		return
	}
	c.JSON(http.StatusOK, counters)
}

// MarkPrivateChatRead zeroes the viewer's unread counter on a chat.
func (h *Handler) MarkPrivateChatRead(c *gin.Context) {
	if err := h.Private.MarkRead(c.GetString("uid"), c.Param("id")); err != nil {
		h.privateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// notify pushes a localized system notice to target through the hub, in the
// target's own language when their profile declares one.
func (h *Handler) notify(targetUID, chatID, key string) {
	lang := localization.DefaultLanguage
	if target, err := h.loadProfile(targetUID); err == nil && target != nil && target.Language != "" {
		lang = target.Language
	}
	h.Hub.Notify(targetUID, models.WireMessage{
		RoomID:   chatID,
		SenderID: "",
		Body:     h.Localizer.GetString(lang, key),
		Type:     models.MessageTypeSystem,
	})
}

func (h *Handler) privateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, privatechat.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, privatechat.ErrNotParticipant),
		errors.Is(err, privatechat.ErrInitiatorDecision):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, privatechat.ErrNotPending),
		errors.Is(err, privatechat.ErrNotAccepted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, privatechat.ErrSelfChat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Private chat operation failed"})
	}
}
