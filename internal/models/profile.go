package models

import (
	"github.com/lib/pq"
)

// Valid gender values accepted at the profile decode boundary.
var ValidGenders = map[string]bool{
	"male":       true,
	"female":     true,
	"non-binary": true,
	"other":      true,
}

// Profile represents an anonymous user in the system.
// The UID is the anonymous identity issued at sign-in; everything else is
// self-reported and ephemeral.
type Profile struct {
	// UID is the anonymous UUID issued by the auth endpoint.
	UID string `gorm:"primaryKey" json:"uid"`
	// Nickname is the display name shown in rooms and private chats.
	Nickname string `gorm:"type:text;not null" json:"nickname"`
	Gender   string `gorm:"type:text" json:"gender"`
	Country  string `gorm:"type:text" json:"country"`
	// Avatar holds a generated avatar string (seed or inline SVG); the backend
	// stores it opaquely.
	Avatar string `gorm:"type:text" json:"avatar"`
	// Role is "user" or "admin". Only the admin surface may change it.
	Role string `gorm:"type:text;default:user" json:"role"`
	// Language selects system-notice translations, default "en".
	Language string `gorm:"type:text;default:en" json:"language"`
	// BlockedUsers is the viewer-local block list. Messages from these UIDs are
	// hidden for this profile only.
	BlockedUsers pq.StringArray `gorm:"type:text[];default:'{}'" json:"blocked_users"`
	// Favorites holds room IDs the user starred.
	Favorites  pq.StringArray `gorm:"type:text[];default:'{}'" json:"favorites"`
	IsOnline   bool           `json:"is_online"`
	LastActive int64          `json:"last_active"`
	CreatedAt  int64          `gorm:"autoCreateTime:milli" json:"created_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p.Role == "admin"
}

// HasBlocked reports whether uid is on this profile's block list.
func (p *Profile) HasBlocked(uid string) bool {
	for _, b := range p.BlockedUsers {
		if b == uid {
			return true
		}
	}
	return false
}

// HasFavorite reports whether roomID is starred by this profile.
func (p *Profile) HasFavorite(roomID string) bool {
	for _, f := range p.Favorites {
		if f == roomID {
			return true
		}
	}
	return false
}

// DisplaySnapshot returns the denormalized display data captured on messages
// and private chats at write time.
func (p *Profile) DisplaySnapshot() PresenceSnapshot {
	return PresenceSnapshot{
		Nickname: p.Nickname,
		Avatar:   p.Avatar,
		Country:  p.Country,
	}
}
