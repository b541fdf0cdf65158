package chathub

import "anonchat/backend/internal/models"

// Client is the interface for one active connection. It abstracts the
// underlying transport so the hub can manage connections uniformly and tests
// can substitute doubles.
type Client interface {
	// GetUserID returns the anonymous identity bound to the connection.
	GetUserID() string
	// GetRoomID returns the room (or private chat) the connection joined.
	// A connection belongs to exactly one room for its lifetime.
	GetRoomID() string

	// Snapshot returns the display data captured when the connection was
	// authenticated; it is written into presence and onto sent messages.
	Snapshot() models.PresenceSnapshot

	// Blocks reports whether this viewer has blocked uid. Messages from
	// blocked senders are not delivered to this connection.
	Blocks(uid string) bool

	// GetSendChannel returns the channel the hub writes outbound frames to.
	GetSendChannel() chan<- models.WireMessage

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts the connection down and releases its channels.
	Close()
}
