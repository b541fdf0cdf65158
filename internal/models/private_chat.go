package models

import "strings"

// Private chat lifecycle states.
const (
	ChatStatusPending  = "pending"
	ChatStatusAccepted = "accepted"
	ChatStatusRejected = "rejected"
)

// ChatIDPrefix prefixes every canonical private chat id.
const ChatIDPrefix = "pm_"

// DeriveChatID returns the canonical id for the unordered pair (a, b).
// It is symmetric: DeriveChatID(a, b) == DeriveChatID(b, a). At most one chat
// row can exist per pair because this id is the primary key.
func DeriveChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return ChatIDPrefix + a + "_" + b
}

// IsPrivateChatID reports whether roomID names a private chat rather than a
// public room.
func IsPrivateChatID(roomID string) bool {
	return strings.HasPrefix(roomID, ChatIDPrefix)
}

// ChatParticipant is the display snapshot of one side of a private chat,
// captured at initiation and never live-synced.
type ChatParticipant struct {
	UID      string `json:"uid"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// PrivateChat is a mutual-consent 1-on-1 conversation. The ChatID is a pure
// function of the two participant UIDs, so concurrent initiations from both
// sides collapse onto the same row.
//
// User1ID/User2ID are stored in sorted order; the unread counters and display
// snapshots are positional (Unread1 belongs to User1ID).
type PrivateChat struct {
	ChatID      string `gorm:"primaryKey" json:"id"`
	User1ID     string `gorm:"type:text;not null;index" json:"user1_id"`
	User2ID     string `gorm:"type:text;not null;index" json:"user2_id"`
	InitiatorID string `gorm:"type:text;not null" json:"initiator"`
	Status      string `gorm:"type:text;not null;default:pending" json:"status"`

	User1Nickname string `gorm:"type:text" json:"user1_nickname"`
	User1Avatar   string `gorm:"type:text" json:"user1_avatar"`
	User2Nickname string `gorm:"type:text" json:"user2_nickname"`
	User2Avatar   string `gorm:"type:text" json:"user2_avatar"`

	// LastMessageAt is unix milliseconds of the latest message (or initiation).
	LastMessageAt int64 `gorm:"index" json:"last_message_timestamp"`
	Unread1       int   `json:"unread1"`
	Unread2       int   `json:"unread2"`
	CreatedAt     int64 `gorm:"autoCreateTime:milli" json:"created_at"`
}

// HasParticipant reports whether uid is one of the two participants.
func (c *PrivateChat) HasParticipant(uid string) bool {
	return uid != "" && (c.User1ID == uid || c.User2ID == uid)
}

// PartnerOf returns the other participant's UID, or "" if uid is not a
// participant.
func (c *PrivateChat) PartnerOf(uid string) string {
	switch uid {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	}
	return ""
}

// UnreadFor returns uid's own unread counter.
func (c *PrivateChat) UnreadFor(uid string) int {
	switch uid {
	case c.User1ID:
		return c.Unread1
	case c.User2ID:
		return c.Unread2
	}
	return 0
}

// ParticipantData returns the display snapshot stored for uid.
func (c *PrivateChat) ParticipantData(uid string) ChatParticipant {
	switch uid {
	case c.User1ID:
		return ChatParticipant{UID: uid, Nickname: c.User1Nickname, Avatar: c.User1Avatar}
	case c.User2ID:
		return ChatParticipant{UID: uid, Nickname: c.User2Nickname, Avatar: c.User2Avatar}
	}
	return ChatParticipant{}
}
