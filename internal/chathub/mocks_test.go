package chathub_test

import (
	"anonchat/backend/internal/models"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface. Only the
// paths the hub exercises record expectations; the rest return zero values.
type MockStorage struct {
	mock.Mock
}

// Presence & typing

func (m *MockStorage) SetPresence(roomID, uid string, snap models.PresenceSnapshot) error {
	args := m.Called(roomID, uid, snap)
	return args.Error(0)
}

func (m *MockStorage) RemovePresence(roomID, uid string) error {
	args := m.Called(roomID, uid)
	return args.Error(0)
}

func (m *MockStorage) GetRoomPresence(roomID string) (map[string]models.PresenceSnapshot, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.PresenceSnapshot), args.Error(1)
}

func (m *MockStorage) SetTyping(roomID, uid string, at time.Time) error {
	args := m.Called(roomID, uid, at)
	return args.Error(0)
}

func (m *MockStorage) ClearTyping(roomID, uid string) error {
	args := m.Called(roomID, uid)
	return args.Error(0)
}

func (m *MockStorage) GetTypingUsers(roomID string, now time.Time) ([]string, error) {
	args := m.Called(roomID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Messages

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetRecentMessages(roomID string, limit int) ([]models.Message, error) {
	args := m.Called(roomID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) PublishMessage(roomID string, msg models.WireMessage) error {
	args := m.Called(roomID, msg)
	return args.Error(0)
}

// Private chats

func (m *MockStorage) CreateChatIfAbsent(chat *models.PrivateChat) (bool, error) {
	args := m.Called(chat)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) GetChat(chatID string) (*models.PrivateChat, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PrivateChat), args.Error(1)
}

func (m *MockStorage) ListChatsForUser(uid string) ([]models.PrivateChat, error) {
	args := m.Called(uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PrivateChat), args.Error(1)
}

func (m *MockStorage) UpdateChatStatus(chatID, status string) error {
	args := m.Called(chatID, status)
	return args.Error(0)
}

func (m *MockStorage) TouchChat(chatID string, at time.Time, recipientUID string) error {
	args := m.Called(chatID, at, recipientUID)
	return args.Error(0)
}

func (m *MockStorage) ResetUnread(chatID, uid string) error {
	args := m.Called(chatID, uid)
	return args.Error(0)
}

// Unused by the hub: plain zero-value stubs.

func (m *MockStorage) SaveProfile(*models.Profile) error                       { return nil }
func (m *MockStorage) GetProfile(string) (*models.Profile, error)              { return nil, nil }
func (m *MockStorage) UpdateProfile(string, map[string]interface{}) error      { return nil }
func (m *MockStorage) AddBlockedUser(string, string) error                     { return nil }
func (m *MockStorage) RemoveBlockedUser(string, string) error                  { return nil }
func (m *MockStorage) AddFavorite(string, string) error                        { return nil }
func (m *MockStorage) RemoveFavorite(string, string) error                     { return nil }
func (m *MockStorage) ListRooms() ([]models.Room, error)                       { return nil, nil }
func (m *MockStorage) GetRoom(string) (*models.Room, error)                    { return nil, nil }
func (m *MockStorage) SeedRoomsIfEmpty([]models.Room) error                    { return nil }
func (m *MockStorage) SaveReport(*models.Report) error                         { return nil }
func (m *MockStorage) GetReport(string) (*models.Report, error)                { return nil, nil }
func (m *MockStorage) ListPendingReports() ([]models.Report, error)            { return nil, nil }
func (m *MockStorage) UpdateReportStatus(string, string) error                 { return nil }
func (m *MockStorage) BanUser(string, time.Duration) error                     { return nil }
func (m *MockStorage) UnbanUser(string) error                                  { return nil }
func (m *MockStorage) IsUserBanned(string) (bool, error)                       { return false, nil }

// MockClient is a test double for the chathub.Client interface.
type MockClient struct {
	userID  string
	roomID  string
	blocked map[string]bool
	send    chan models.WireMessage
	closed  bool
}

func newMockClient(uid, roomID string) *MockClient {
	return &MockClient{
		userID:  uid,
		roomID:  roomID,
		blocked: make(map[string]bool),
		// Buffered to prevent blocking in tests.
		send: make(chan models.WireMessage, 10),
	}
}

func (c *MockClient) GetUserID() string { return c.userID }
func (c *MockClient) GetRoomID() string { return c.roomID }

func (c *MockClient) Snapshot() models.PresenceSnapshot {
	return models.PresenceSnapshot{Nickname: "nick-" + c.userID, Country: "us"}
}

func (c *MockClient) Blocks(uid string) bool { return c.blocked[uid] }

func (c *MockClient) GetSendChannel() chan<- models.WireMessage { return c.send }

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// DrainMessages empties the send buffer for assertions.
func (c *MockClient) DrainMessages() []models.WireMessage {
	var messages []models.WireMessage
	for {
		select {
		case msg := <-c.send:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
