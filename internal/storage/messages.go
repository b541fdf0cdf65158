package storage

import (
	"anonchat/backend/internal/models"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// messageChannel is the Redis pub/sub channel for a room's live fan-out.
func messageChannel(roomID string) string {
	return "room:" + roomID
}

// SaveMessage appends a message to the log. The gorm.Model ID and CreatedAt
// are filled in by the insert.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetRecentMessages returns the most recent limit messages for a room in
// ascending time order. There is no pagination further back.
func (s *Service) GetRecentMessages(roomID string, limit int) ([]models.Message, error) {
	var recent []models.Message
	err := s.DB.Where("room_id = ?", roomID).
		Order("created_at desc").
		Limit(limit).
		Find(&recent).Error
	if err != nil {
		log.Printf("ERROR: Failed to get history for room %s: %v", roomID, err)
		return nil, err
	}
	// The query selects newest-first; callers expect oldest-first.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

// PublishMessage fans a wire frame out on the room's Redis channel. Every
// server instance subscribed to room:* delivers it to its local clients.
func (s *Service) PublishMessage(roomID string, msg models.WireMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, messageChannel(roomID), payload).Err()
}

// SubscribeAllRooms opens a pattern subscription covering every room channel.
func (s *Service) SubscribeAllRooms() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, messageChannel("*"))
}
