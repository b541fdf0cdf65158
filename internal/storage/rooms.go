package storage

import (
	"anonchat/backend/internal/models"
	"errors"
	"log"

	"gorm.io/gorm"
)

// ListRooms returns the full room directory ordered by category then name.
func (s *Service) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("category, name").Find(&rooms).Error; err != nil {
		log.Printf("ERROR: Failed to list rooms: %v", err)
		return nil, err
	}
	return rooms, nil
}

// GetRoom loads a single directory entry. Returns (nil, nil) when the id is
// not in the directory.
func (s *Service) GetRoom(roomID string) (*models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// SeedRoomsIfEmpty writes the initial directory when the table has no rows.
// Startup-only; a partially seeded table is left untouched.
func (s *Service) SeedRoomsIfEmpty(rooms []models.Room) error {
	var count int64
	if err := s.DB.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Printf("Seeding %d initial rooms...", len(rooms))
	return s.DB.Create(&rooms).Error
}
