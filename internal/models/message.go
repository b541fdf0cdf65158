package models

import "gorm.io/gorm"

// Message types stored in the log.
const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeSystem = "system"
)

// Message is one entry in a room's append-only message log. The embedded
// gorm.Model provides the monotonically-increasing ID and CreatedAt timestamp.
//
// The sender display fields are a snapshot captured at send time; they are
// not updated if the sender later edits their profile.
type Message struct {
	gorm.Model

	// RoomID is either a public room slug or a private chat id ("pm_..."). Both
	// share the same log table and fan-out path.
	RoomID   string `gorm:"type:text;not null;index:idx_room_msg" json:"room_id"`
	SenderID string `gorm:"type:text;not null;index:idx_room_msg" json:"sender_id"`
	// Body is the message text, or a data URL for image messages.
	Body string `gorm:"type:text;not null" json:"body"`
	// Type is one of the MessageType constants.
	Type string `gorm:"type:text;not null" json:"type"`

	SenderNickname string `gorm:"type:text" json:"sender_nickname"`
	SenderAvatar   string `gorm:"type:text" json:"sender_avatar"`
	SenderCountry  string `gorm:"type:text" json:"sender_country"`
}
