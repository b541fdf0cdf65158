package models

import "time"

// Wire message types carried over the websocket in addition to the stored
// MessageType constants.
const (
	WireTypeTyping     = "typing"
	WireTypeTypingStop = "typing_stop"
)

// WireMessage is the JSON frame exchanged over the websocket and the Redis
// pub/sub channels.
type WireMessage struct {
	RoomID   string `json:"room_id"`
	SenderID string `json:"sender_id"`
	Body     string `json:"body"`
	// Type is "text", "image", "system", "typing" or "typing_stop".
	Type string `json:"type"`
	// SentAt is the server-assigned unix-milli timestamp, set on fan-out.
	SentAt int64 `json:"sent_at,omitempty"`
	// Sender is the display snapshot attached to persisted message types.
	Sender *PresenceSnapshot `json:"sender,omitempty"`
}

// PresenceSnapshot is the display data kept in a room's presence set and
// denormalized onto messages.
type PresenceSnapshot struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Country  string `json:"country"`
}

// Notice is a targeted system message delivered to a single connected user
// regardless of their current room (private chat request/accept notices).
type Notice struct {
	TargetUID string
	Message   WireMessage
}

// TypingActive reports whether a typing entry written at ts is still live at
// now, given the staleness window. An entry that exists but is stale must not
// be surfaced even if it has not been deleted yet.
func TypingActive(ts, now time.Time, window time.Duration) bool {
	return now.Sub(ts) < window
}
