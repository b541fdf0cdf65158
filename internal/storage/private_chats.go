package storage

import (
	"anonchat/backend/internal/models"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateChatIfAbsent inserts the chat row keyed by its canonical id, doing
// nothing if a row already exists. The ON CONFLICT guard is what makes
// concurrent initiations from both participants safe: both target the same
// primary key, exactly one insert wins, and the loser's metadata is discarded
// instead of overwriting.
func (s *Service) CreateChatIfAbsent(chat *models.PrivateChat) (bool, error) {
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(chat)
	if result.Error != nil {
		log.Printf("ERROR: Failed to create private chat %s: %v", chat.ChatID, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// GetChat loads a private chat by id. Returns (nil, nil) when absent.
func (s *Service) GetChat(chatID string) (*models.PrivateChat, error) {
	var chat models.PrivateChat
	err := s.DB.First(&chat, "chat_id = ?", chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChatsForUser returns every chat uid participates in, newest activity
// first. Listing is a single indexed query; no per-chat follow-up reads.
func (s *Service) ListChatsForUser(uid string) ([]models.PrivateChat, error) {
	var chats []models.PrivateChat
	err := s.DB.Where("user1_id = ? OR user2_id = ?", uid, uid).
		Order("last_message_at desc").
		Find(&chats).Error
	if err != nil {
		log.Printf("ERROR: Failed to list chats for %s: %v", uid, err)
		return nil, err
	}
	return chats, nil
}

// UpdateChatStatus writes the lifecycle status. Guarding the transition is
// the private chat service's job; this only touches the column.
func (s *Service) UpdateChatStatus(chatID, status string) error {
	return s.DB.Model(&models.PrivateChat{}).
		Where("chat_id = ?", chatID).
		Update("status", status).Error
}

// TouchChat bumps the last-message timestamp and increments the recipient's
// unread counter in one statement, so concurrent senders never lose counts.
func (s *Service) TouchChat(chatID string, at time.Time, recipientUID string) error {
	return s.DB.Model(&models.PrivateChat{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message_at": at.UnixMilli(),
			"unread1":         gorm.Expr("unread1 + CASE WHEN user1_id = ? THEN 1 ELSE 0 END", recipientUID),
			"unread2":         gorm.Expr("unread2 + CASE WHEN user2_id = ? THEN 1 ELSE 0 END", recipientUID),
		}).Error
}

// ResetUnread zeroes uid's own counter on a chat.
func (s *Service) ResetUnread(chatID, uid string) error {
	return s.DB.Model(&models.PrivateChat{}).
		Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"unread1": gorm.Expr("CASE WHEN user1_id = ? THEN 0 ELSE unread1 END", uid),
			"unread2": gorm.Expr("CASE WHEN user2_id = ? THEN 0 ELSE unread2 END", uid),
		}).Error
}
