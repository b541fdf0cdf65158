// Package privatechat implements the mutual-consent handshake for 1-on-1
// conversations: canonical chat-id derivation, the pending/accepted/rejected
// lifecycle, and the per-user chat listing and counters.
package privatechat

import (
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/storage"
	"errors"
	"time"
)

var (
	// ErrSelfChat is returned when a user tries to open a chat with themselves.
	ErrSelfChat = errors.New("cannot open a private chat with yourself")
	// ErrChatNotFound is returned for transitions on a nonexistent chat.
	ErrChatNotFound = errors.New("private chat not found")
	// ErrNotParticipant is returned when the caller is not one of the two
	// participants.
	ErrNotParticipant = errors.New("not a participant of this chat")
	// ErrInitiatorDecision is returned when the initiator tries to accept or
	// reject their own request. Only the other participant may decide.
	ErrInitiatorDecision = errors.New("initiator cannot decide their own request")
	// ErrNotPending is returned for accept/reject on a chat that has already
	// been decided.
	ErrNotPending = errors.New("chat request already decided")
	// ErrNotAccepted is returned when messaging a chat that is not accepted.
	ErrNotAccepted = errors.New("chat request not accepted")
)

// Service carries the handshake logic over the storage boundary.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new private chat service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Counters is the derived badge state shown in the UI header.
type Counters struct {
	PendingRequests int `json:"pending_requests"`
	UnreadMessages  int `json:"unread_messages"`
}

// Initiate establishes (or finds) the canonical chat between self and target.
// It is idempotent: when a chat already exists for the pair, its id is
// returned unchanged and its status and counters are left alone. A fresh chat
// starts pending with the target owing a decision and one unread "request"
// credited to them.
//
// An empty self UID makes this a no-op returning "": unauthenticated callers
// get emptiness, not an error.
func (s *Service) Initiate(self, target models.ChatParticipant) (string, error) {
	if self.UID == "" {
		return "", nil
	}
	if target.UID == "" || self.UID == target.UID {
		return "", ErrSelfChat
	}

	chatID := models.DeriveChatID(self.UID, target.UID)
	u1, u2 := self, target
	if u2.UID < u1.UID {
		u1, u2 = u2, u1
	}

	chat := &models.PrivateChat{
		ChatID:        chatID,
		User1ID:       u1.UID,
		User2ID:       u2.UID,
		User1Nickname: u1.Nickname,
		User1Avatar:   u1.Avatar,
		User2Nickname: u2.Nickname,
		User2Avatar:   u2.Avatar,
		InitiatorID:   self.UID,
		Status:        models.ChatStatusPending,
		LastMessageAt: time.Now().UnixMilli(),
	}
	if chat.User1ID == target.UID {
		chat.Unread1 = 1
	} else {
		chat.Unread2 = 1
	}

	// The insert is conflict-guarded on the canonical id, so two users
	// initiating each other at once converge on a single row.
	if _, err := s.Storage.CreateChatIfAbsent(chat); err != nil {
		return "", err
	}
	return chatID, nil
}

// Accept transitions a pending request to accepted. Only the non-initiating
// participant may accept.
func (s *Service) Accept(selfUID, chatID string) error {
	return s.decide(selfUID, chatID, models.ChatStatusAccepted)
}

// Reject transitions a pending request to rejected. The row is kept; rejected
// chats are never hard-deleted.
func (s *Service) Reject(selfUID, chatID string) error {
	return s.decide(selfUID, chatID, models.ChatStatusRejected)
}

func (s *Service) decide(selfUID, chatID, status string) error {
	if selfUID == "" {
		return nil
	}
	chat, err := s.Storage.GetChat(chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}
	if !chat.HasParticipant(selfUID) {
		return ErrNotParticipant
	}
	if chat.InitiatorID == selfUID {
		return ErrInitiatorDecision
	}
	if chat.Status != models.ChatStatusPending {
		return ErrNotPending
	}
	return s.Storage.UpdateChatStatus(chatID, status)
}

// ListChats returns every chat the user participates in, most recent activity
// first.
func (s *Service) ListChats(selfUID string) ([]models.PrivateChat, error) {
	if selfUID == "" {
		return nil, nil
	}
	return s.Storage.ListChatsForUser(selfUID)
}

// GetCounters derives the badge counts: pending requests awaiting the user's
// decision (their own outgoing requests do not count) and unread messages
// summed over accepted chats only.
func (s *Service) GetCounters(selfUID string) (Counters, error) {
	var c Counters
	if selfUID == "" {
		return c, nil
	}
	chats, err := s.Storage.ListChatsForUser(selfUID)
	if err != nil {
		return c, err
	}
	for i := range chats {
		chat := &chats[i]
		switch chat.Status {
		case models.ChatStatusPending:
			if chat.InitiatorID != selfUID {
				c.PendingRequests++
			}
		case models.ChatStatusAccepted:
			c.UnreadMessages += chat.UnreadFor(selfUID)
		}
	}
	return c, nil
}

// MarkRead zeroes the caller's unread counter on a chat.
func (s *Service) MarkRead(selfUID, chatID string) error {
	if selfUID == "" {
		return nil
	}
	chat, err := s.Storage.GetChat(chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return ErrChatNotFound
	}
	if !chat.HasParticipant(selfUID) {
		return ErrNotParticipant
	}
	return s.Storage.ResetUnread(chatID, selfUID)
}

// AuthorizeMessage checks that selfUID may send into chatID and returns the
// partner who should be credited an unread message. Used by the hub before
// persisting a private message.
func (s *Service) AuthorizeMessage(selfUID, chatID string) (partnerUID string, err error) {
	chat, err := s.Storage.GetChat(chatID)
	if err != nil {
		return "", err
	}
	if chat == nil {
		return "", ErrChatNotFound
	}
	if !chat.HasParticipant(selfUID) {
		return "", ErrNotParticipant
	}
	if chat.Status != models.ChatStatusAccepted {
		return "", ErrNotAccepted
	}
	return chat.PartnerOf(selfUID), nil
}
