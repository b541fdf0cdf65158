package chathub_test

import (
	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/localization"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/privatechat"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, store *MockStorage) *chathub.ManagerService {
	t.Helper()
	loc, err := localization.NewLocalizer("../../locales")
	require.NoError(t, err)
	return chathub.NewManagerService(store, privatechat.NewService(store), loc)
}

func TestManager_RegisterWritesPresence(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	store.On("SetPresence", "general", "user_A", mock.AnythingOfType("models.PresenceSnapshot")).Return(nil)
	store.On("RemovePresence", "general", "user_A").Return(nil)
	store.On("ClearTyping", "general", "user_A").Return(nil)

	clientA := newMockClient("user_A", "general")

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A")
	store.AssertCalled(t, "SetPresence", "general", "user_A", mock.AnythingOfType("models.PresenceSnapshot"))

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "user_A")
	store.AssertCalled(t, "RemovePresence", "general", "user_A")
	store.AssertCalled(t, "ClearTyping", "general", "user_A")
}

func TestManager_IncomingTextSavedAndPublished(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	store.On("ClearTyping", "general", "user_A").Return(nil)
	store.On("PublishMessage", "general", mock.AnythingOfType("models.WireMessage")).Return(nil)

	go hub.Run()

	hub.IncomingCh <- models.WireMessage{
		RoomID:   "general",
		SenderID: "user_A",
		Body:     "hello",
		Type:     models.MessageTypeText,
	}
	time.Sleep(100 * time.Millisecond)

	store.AssertCalled(t, "SaveMessage", mock.AnythingOfType("*models.Message"))
	store.AssertCalled(t, "PublishMessage", "general", mock.AnythingOfType("models.WireMessage"))
	store.AssertCalled(t, "ClearTyping", "general", "user_A")
}

func TestManager_IncomingTextCensored(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	var saved *models.Message
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Message)
	}).Return(nil)
	store.On("ClearTyping", mock.Anything, mock.Anything).Return(nil)
	store.On("PublishMessage", mock.Anything, mock.Anything).Return(nil)

	go hub.Run()

	hub.IncomingCh <- models.WireMessage{
		RoomID:   "general",
		SenderID: "user_A",
		Body:     "this is SPAM",
		Type:     models.MessageTypeText,
	}
	time.Sleep(100 * time.Millisecond)

	require.NotNil(t, saved)
	assert.Equal(t, "this is ****", saved.Body)
}

func TestManager_TypingFrames(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	store.On("SetTyping", "general", "user_A", mock.AnythingOfType("time.Time")).Return(nil)
	store.On("ClearTyping", "general", "user_A").Return(nil)

	go hub.Run()

	hub.IncomingCh <- models.WireMessage{RoomID: "general", SenderID: "user_A", Type: models.WireTypeTyping}
	hub.IncomingCh <- models.WireMessage{RoomID: "general", SenderID: "user_A", Type: models.WireTypeTypingStop}
	time.Sleep(100 * time.Millisecond)

	store.AssertCalled(t, "SetTyping", "general", "user_A", mock.AnythingOfType("time.Time"))
	store.AssertCalled(t, "ClearTyping", "general", "user_A")
	// Typing frames never touch the message log.
	store.AssertNotCalled(t, "SaveMessage", mock.Anything)
}

func TestManager_PrivateMessageRequiresAcceptedChat(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	pending := &models.PrivateChat{
		ChatID:      "pm_a_b",
		User1ID:     "a",
		User2ID:     "b",
		InitiatorID: "a",
		Status:      models.ChatStatusPending,
	}
	store.On("GetChat", "pm_a_b").Return(pending, nil)

	go hub.Run()

	hub.IncomingCh <- models.WireMessage{
		RoomID:   "pm_a_b",
		SenderID: "a",
		Body:     "too early",
		Type:     models.MessageTypeText,
	}
	time.Sleep(100 * time.Millisecond)

	store.AssertNotCalled(t, "SaveMessage", mock.Anything)
	store.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything)
}

func TestManager_PrivateMessageCreditsPartnerUnread(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	accepted := &models.PrivateChat{
		ChatID:      "pm_a_b",
		User1ID:     "a",
		User2ID:     "b",
		InitiatorID: "a",
		Status:      models.ChatStatusAccepted,
	}
	store.On("GetChat", "pm_a_b").Return(accepted, nil)
	store.On("TouchChat", "pm_a_b", mock.AnythingOfType("time.Time"), "b").Return(nil)
	store.On("SaveMessage", mock.AnythingOfType("*models.Message")).Return(nil)
	store.On("ClearTyping", "pm_a_b", "a").Return(nil)
	store.On("PublishMessage", "pm_a_b", mock.AnythingOfType("models.WireMessage")).Return(nil)

	go hub.Run()

	hub.IncomingCh <- models.WireMessage{
		RoomID:   "pm_a_b",
		SenderID: "a",
		Body:     "hi there",
		Type:     models.MessageTypeText,
	}
	time.Sleep(100 * time.Millisecond)

	store.AssertCalled(t, "TouchChat", "pm_a_b", mock.AnythingOfType("time.Time"), "b")
	store.AssertCalled(t, "SaveMessage", mock.AnythingOfType("*models.Message"))
}

func TestManager_PubSubDeliveryHonorsRoomAndBlocks(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	inRoom := newMockClient("user_B", "room1")
	otherRoom := newMockClient("user_C", "room2")
	blocker := newMockClient("user_D", "room1")
	blocker.blocked["user_A"] = true

	hub.Clients["user_B"] = inRoom
	hub.Clients["user_C"] = otherRoom
	hub.Clients["user_D"] = blocker

	go hub.Run()

	hub.PubSubCh <- models.WireMessage{RoomID: "room1", SenderID: "user_A", Body: "hello", Type: models.MessageTypeText}
	time.Sleep(100 * time.Millisecond)

	require.Len(t, inRoom.DrainMessages(), 1, "same-room viewer receives the frame")
	assert.Empty(t, otherRoom.DrainMessages(), "other rooms stay silent")
	assert.Empty(t, blocker.DrainMessages(), "a viewer who blocked the sender sees nothing")
}

func TestManager_NoticeDelivery(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	target := newMockClient("user_B", "general")
	hub.Clients["user_B"] = target

	go hub.Run()

	hub.Notify("user_B", models.WireMessage{RoomID: "pm_a_b", Body: "request", Type: models.MessageTypeSystem})
	hub.Notify("user_offline", models.WireMessage{RoomID: "pm_a_b", Body: "request", Type: models.MessageTypeSystem})
	time.Sleep(100 * time.Millisecond)

	got := target.DrainMessages()
	require.Len(t, got, 1)
	assert.Equal(t, models.MessageTypeSystem, got[0].Type)
}

func TestManager_PartnerLeftNotice(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	accepted := &models.PrivateChat{
		ChatID:      "pm_a_b",
		User1ID:     "a",
		User2ID:     "b",
		InitiatorID: "a",
		Status:      models.ChatStatusAccepted,
	}
	store.On("GetChat", "pm_a_b").Return(accepted, nil)
	store.On("RemovePresence", "pm_a_b", "a").Return(nil)
	store.On("ClearTyping", "pm_a_b", "a").Return(nil)

	a := newMockClient("a", "pm_a_b")
	b := newMockClient("b", "pm_a_b")
	hub.Clients["a"] = a
	hub.Clients["b"] = b

	go hub.Run()

	hub.UnregisterCh <- a
	time.Sleep(100 * time.Millisecond)

	got := b.DrainMessages()
	require.Len(t, got, 1, "the remaining participant is told their peer left")
	assert.Equal(t, models.MessageTypeSystem, got[0].Type)
	assert.Equal(t, "Your chat partner left the conversation.", got[0].Body)
}

func TestManager_ReconnectKeepsPartnerQuiet(t *testing.T) {
	store := new(MockStorage)
	hub := newTestHub(t, store)

	store.On("SetPresence", "pm_a_b", "a", mock.AnythingOfType("models.PresenceSnapshot")).Return(nil)
	store.On("RemovePresence", "pm_a_b", "a").Return(nil)
	store.On("ClearTyping", "pm_a_b", "a").Return(nil)

	first := newMockClient("a", "pm_a_b")
	b := newMockClient("b", "pm_a_b")
	hub.Clients["a"] = first
	hub.Clients["b"] = b

	go hub.Run()

	// A second connection for the same identity replaces the first.
	hub.RegisterCh <- newMockClient("a", "pm_a_b")
	time.Sleep(100 * time.Millisecond)

	assert.Empty(t, b.DrainMessages(), "a replaced connection is not a departure")
	store.AssertNotCalled(t, "GetChat", mock.Anything)
}
