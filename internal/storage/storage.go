package storage

import (
	"anonchat/backend/internal/models"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence boundary used by the hub, the private chat
// service, moderation and the HTTP handlers. Postgres (via gorm) holds
// durable state; Redis holds ephemeral presence/typing state, the pub/sub
// fan-out and the ban cache.
type Storage interface {
	// Profiles
	SaveProfile(p *models.Profile) error
	GetProfile(uid string) (*models.Profile, error)
	UpdateProfile(uid string, updates map[string]interface{}) error
	AddBlockedUser(uid, targetUID string) error
	RemoveBlockedUser(uid, targetUID string) error
	AddFavorite(uid, roomID string) error
	RemoveFavorite(uid, roomID string) error

	// Rooms
	ListRooms() ([]models.Room, error)
	GetRoom(roomID string) (*models.Room, error)
	SeedRoomsIfEmpty(rooms []models.Room) error

	// Messages
	SaveMessage(msg *models.Message) error
	GetRecentMessages(roomID string, limit int) ([]models.Message, error)
	PublishMessage(roomID string, msg models.WireMessage) error

	// Private chats
	CreateChatIfAbsent(chat *models.PrivateChat) (created bool, err error)
	GetChat(chatID string) (*models.PrivateChat, error)
	ListChatsForUser(uid string) ([]models.PrivateChat, error)
	UpdateChatStatus(chatID, status string) error
	TouchChat(chatID string, at time.Time, recipientUID string) error
	ResetUnread(chatID, uid string) error

	// Presence & typing (ephemeral, Redis)
	SetPresence(roomID, uid string, snap models.PresenceSnapshot) error
	RemovePresence(roomID, uid string) error
	GetRoomPresence(roomID string) (map[string]models.PresenceSnapshot, error)
	SetTyping(roomID, uid string, at time.Time) error
	ClearTyping(roomID, uid string) error
	GetTypingUsers(roomID string, now time.Time) ([]string, error)

	// Moderation
	SaveReport(r *models.Report) error
	GetReport(reportID string) (*models.Report, error)
	ListPendingReports() ([]models.Report, error)
	UpdateReportStatus(reportID, status string) error
	BanUser(uid string, d time.Duration) error
	UnbanUser(uid string) error
	IsUserBanned(uid string) (bool, error)
}

// Service implements Storage over gorm + go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Storage = (*Service)(nil)
