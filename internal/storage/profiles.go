package storage

import (
	"anonchat/backend/internal/models"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveProfile inserts a profile, or refreshes the display columns when the
// uid already has one. Role, block list and favorites survive a re-created
// profile.
func (s *Service) SaveProfile(p *models.Profile) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nickname", "gender", "country", "avatar", "language", "is_online", "last_active",
		}),
	}).Create(p).Error
}

// GetProfile loads a profile by its anonymous UID. Returns (nil, nil) when no
// profile exists.
func (s *Service) GetProfile(uid string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.First(&p, "uid = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to load profile %s: %v", uid, err)
		return nil, err
	}
	return &p, nil
}

// UpdateProfile applies a partial update. Callers are responsible for
// whitelisting the columns; role is never writable through this path.
func (s *Service) UpdateProfile(uid string, updates map[string]interface{}) error {
	delete(updates, "role")
	return s.DB.Model(&models.Profile{}).Where("uid = ?", uid).Updates(updates).Error
}

// AddBlockedUser appends targetUID to uid's block list if not already present.
// The array column starts out NULL, so both the append and the containment
// guard coalesce it to an empty array first.
func (s *Service) AddBlockedUser(uid, targetUID string) error {
	return s.DB.Exec(
		`UPDATE profiles SET blocked_users = array_append(COALESCE(blocked_users, '{}'), ?)
		 WHERE uid = ? AND NOT (COALESCE(blocked_users, '{}') @> ARRAY[?]::text[])`,
		targetUID, uid, targetUID,
	).Error
}

// RemoveBlockedUser drops targetUID from uid's block list.
func (s *Service) RemoveBlockedUser(uid, targetUID string) error {
	return s.DB.Exec(
		`UPDATE profiles SET blocked_users = array_remove(blocked_users, ?) WHERE uid = ?`,
		targetUID, uid,
	).Error
}

// AddFavorite stars a room for uid. NULL-safe like AddBlockedUser.
func (s *Service) AddFavorite(uid, roomID string) error {
	return s.DB.Exec(
		`UPDATE profiles SET favorites = array_append(COALESCE(favorites, '{}'), ?)
		 WHERE uid = ? AND NOT (COALESCE(favorites, '{}') @> ARRAY[?]::text[])`,
		roomID, uid, roomID,
	).Error
}

// RemoveFavorite unstars a room for uid.
func (s *Service) RemoveFavorite(uid, roomID string) error {
	return s.DB.Exec(
		`UPDATE profiles SET favorites = array_remove(favorites, ?) WHERE uid = ?`,
		roomID, uid,
	).Error
}
