package privatechat_test

import (
	"anonchat/backend/internal/models"
	"sort"
	"time"
)

// fakeStore is an in-memory storage.Storage used to exercise the handshake
// logic end to end, including the create-if-absent semantics the real store
// gets from its conflict-guarded insert.
type fakeStore struct {
	chats map[string]*models.PrivateChat
}

func newFakeStore() *fakeStore {
	return &fakeStore{chats: make(map[string]*models.PrivateChat)}
}

func (f *fakeStore) CreateChatIfAbsent(chat *models.PrivateChat) (bool, error) {
	if _, ok := f.chats[chat.ChatID]; ok {
		return false, nil
	}
	cp := *chat
	f.chats[chat.ChatID] = &cp
	return true, nil
}

func (f *fakeStore) GetChat(chatID string) (*models.PrivateChat, error) {
	chat, ok := f.chats[chatID]
	if !ok {
		return nil, nil
	}
	cp := *chat
	return &cp, nil
}

func (f *fakeStore) ListChatsForUser(uid string) ([]models.PrivateChat, error) {
	var out []models.PrivateChat
	for _, chat := range f.chats {
		if chat.User1ID == uid || chat.User2ID == uid {
			out = append(out, *chat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt > out[j].LastMessageAt
	})
	return out, nil
}

func (f *fakeStore) UpdateChatStatus(chatID, status string) error {
	if chat, ok := f.chats[chatID]; ok {
		chat.Status = status
	}
	return nil
}

func (f *fakeStore) TouchChat(chatID string, at time.Time, recipientUID string) error {
	chat, ok := f.chats[chatID]
	if !ok {
		return nil
	}
	chat.LastMessageAt = at.UnixMilli()
	if chat.User1ID == recipientUID {
		chat.Unread1++
	}
	if chat.User2ID == recipientUID {
		chat.Unread2++
	}
	return nil
}

func (f *fakeStore) ResetUnread(chatID, uid string) error {
	chat, ok := f.chats[chatID]
	if !ok {
		return nil
	}
	if chat.User1ID == uid {
		chat.Unread1 = 0
	}
	if chat.User2ID == uid {
		chat.Unread2 = 0
	}
	return nil
}

// The remaining Storage methods are unused by the handshake service.

func (f *fakeStore) SaveProfile(*models.Profile) error                        { return nil }
func (f *fakeStore) GetProfile(string) (*models.Profile, error)               { return nil, nil }
func (f *fakeStore) UpdateProfile(string, map[string]interface{}) error       { return nil }
func (f *fakeStore) AddBlockedUser(string, string) error                      { return nil }
func (f *fakeStore) RemoveBlockedUser(string, string) error                   { return nil }
func (f *fakeStore) AddFavorite(string, string) error                         { return nil }
func (f *fakeStore) RemoveFavorite(string, string) error                      { return nil }
func (f *fakeStore) ListRooms() ([]models.Room, error)                        { return nil, nil }
func (f *fakeStore) GetRoom(string) (*models.Room, error)                     { return nil, nil }
func (f *fakeStore) SeedRoomsIfEmpty([]models.Room) error                     { return nil }
func (f *fakeStore) SaveMessage(*models.Message) error                        { return nil }
func (f *fakeStore) GetRecentMessages(string, int) ([]models.Message, error)  { return nil, nil }
func (f *fakeStore) PublishMessage(string, models.WireMessage) error          { return nil }
func (f *fakeStore) SetPresence(string, string, models.PresenceSnapshot) error { return nil }
func (f *fakeStore) RemovePresence(string, string) error                      { return nil }
func (f *fakeStore) GetRoomPresence(string) (map[string]models.PresenceSnapshot, error) {
	return nil, nil
}
func (f *fakeStore) SetTyping(string, string, time.Time) error        { return nil }
func (f *fakeStore) ClearTyping(string, string) error                 { return nil }
func (f *fakeStore) GetTypingUsers(string, time.Time) ([]string, error) { return nil, nil }
func (f *fakeStore) SaveReport(*models.Report) error                  { return nil }
func (f *fakeStore) GetReport(string) (*models.Report, error)         { return nil, nil }
func (f *fakeStore) ListPendingReports() ([]models.Report, error)     { return nil, nil }
func (f *fakeStore) UpdateReportStatus(string, string) error          { return nil }
func (f *fakeStore) BanUser(string, time.Duration) error              { return nil }
func (f *fakeStore) UnbanUser(string) error                           { return nil }
func (f *fakeStore) IsUserBanned(string) (bool, error)                { return false, nil }
