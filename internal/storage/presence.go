package storage

import (
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/models"
	"encoding/json"
	"log"
	"strconv"
	"time"
)

func presenceKey(roomID string) string { return "presence:" + roomID }
func typingKey(roomID string) string   { return "typing:" + roomID }

// SetPresence marks uid present in a room with their display snapshot.
// Entries carry a TTL so that a crashed server instance cannot leave a room
// populated forever; normal removal happens on hub unregister.
func (s *Service) SetPresence(roomID, uid string, snap models.PresenceSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	key := presenceKey(roomID)
	if err := s.Redis.HSet(s.Ctx, key, uid, payload).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(s.Ctx, key, config.PresenceTTL).Err()
}

// RemovePresence deletes uid's presence entry for a room.
func (s *Service) RemovePresence(roomID, uid string) error {
	return s.Redis.HDel(s.Ctx, presenceKey(roomID), uid).Err()
}

// GetRoomPresence returns the current presence set for a room. The count is
// an approximation: removal on disconnect is best-effort and may lag the
// actual drop by the transport's keep-alive interval.
func (s *Service) GetRoomPresence(roomID string) (map[string]models.PresenceSnapshot, error) {
	raw, err := s.Redis.HGetAll(s.Ctx, presenceKey(roomID)).Result()
	if err != nil {
		return nil, err
	}
	users := make(map[string]models.PresenceSnapshot, len(raw))
	for uid, payload := range raw {
		var snap models.PresenceSnapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			log.Printf("WARNING: Dropping malformed presence entry for %s in %s: %v", uid, roomID, err)
			continue
		}
		users[uid] = snap
	}
	return users, nil
}

// SetTyping records that uid was typing in a room at the given instant.
func (s *Service) SetTyping(roomID, uid string, at time.Time) error {
	key := typingKey(roomID)
	if err := s.Redis.HSet(s.Ctx, key, uid, at.UnixMilli()).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(s.Ctx, key, config.PresenceTTL).Err()
}

// ClearTyping removes uid's typing entry (sent a message or stopped typing).
func (s *Service) ClearTyping(roomID, uid string) error {
	return s.Redis.HDel(s.Ctx, typingKey(roomID), uid).Err()
}

// GetTypingUsers returns the uids with a live typing entry. A user is typing
// iff their entry exists AND is younger than the staleness window; stale
// entries are filtered here and lazily deleted.
func (s *Service) GetTypingUsers(roomID string, now time.Time) ([]string, error) {
	raw, err := s.Redis.HGetAll(s.Ctx, typingKey(roomID)).Result()
	if err != nil {
		return nil, err
	}
	active := make([]string, 0, len(raw))
	for uid, val := range raw {
		ms, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			s.Redis.HDel(s.Ctx, typingKey(roomID), uid)
			continue
		}
		if models.TypingActive(time.UnixMilli(ms), now, config.TypingStaleness) {
			active = append(active, uid)
		} else {
			s.Redis.HDel(s.Ctx, typingKey(roomID), uid)
		}
	}
	return active, nil
}
