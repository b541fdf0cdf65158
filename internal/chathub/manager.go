package chathub

import (
	"anonchat/backend/internal/config"
	"anonchat/backend/internal/localization"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/moderation"
	"anonchat/backend/internal/privatechat"
	"anonchat/backend/internal/storage"
	"log"
	"time"
)

// ManagerService is the hub: it owns the set of live connections and routes
// every realtime event through a single goroutine. Presence follows the
// connection lifecycle: a presence entry is written on register and removed
// on unregister, so a dropped transport eventually clears the user from the
// room's online set.
type ManagerService struct {
	Clients map[string]Client

	IncomingCh   chan models.WireMessage
	RegisterCh   chan Client
	UnregisterCh chan Client
	// NoticeCh carries targeted system messages (handshake notifications)
	// delivered to a single user when they are connected.
	NoticeCh chan models.Notice
	// PubSubCh receives frames fanned out by any server instance via Redis.
	PubSubCh chan models.WireMessage

	Storage   storage.Storage
	Private   *privatechat.Service
	Localizer *localization.Localizer
}

// NewManagerService wires a hub over storage and the handshake service.
func NewManagerService(s storage.Storage, pc *privatechat.Service, loc *localization.Localizer) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		IncomingCh:   make(chan models.WireMessage),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		NoticeCh:     make(chan models.Notice, 64),
		PubSubCh:     make(chan models.WireMessage, 64),
		Storage:      s,
		Private:      pc,
		Localizer:    loc,
	}
}

// Run is the hub's dispatcher loop. All Clients map access happens here.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)

		case client := <-m.UnregisterCh:
			m.unregister(client)

		case msg := <-m.IncomingCh:
			m.handleIncoming(msg)

		case notice := <-m.NoticeCh:
			m.deliverNotice(notice)

		case msg := <-m.PubSubCh:
			m.deliver(msg)
		}
	}
}

func (m *ManagerService) register(client Client) {
	uid := client.GetUserID()
	if old, ok := m.Clients[uid]; ok {
		// Second connection for the same identity replaces the first. The
		// partner is not told; the user never left.
		m.drop(old, false)
	}
	m.Clients[uid] = client

	if err := m.Storage.SetPresence(client.GetRoomID(), uid, client.Snapshot()); err != nil {
		log.Printf("ERROR: Failed to write presence for %s in %s: %v", uid, client.GetRoomID(), err)
	}
}

func (m *ManagerService) unregister(client Client) {
	m.drop(client, true)
}

func (m *ManagerService) drop(client Client, notifyPartner bool) {
	uid := client.GetUserID()
	if current, ok := m.Clients[uid]; !ok || current != client {
		return
	}
	delete(m.Clients, uid)

	roomID := client.GetRoomID()
	if err := m.Storage.RemovePresence(roomID, uid); err != nil {
		log.Printf("ERROR: Failed to remove presence for %s in %s: %v", uid, roomID, err)
	}
	if err := m.Storage.ClearTyping(roomID, uid); err != nil {
		log.Printf("ERROR: Failed to clear typing for %s in %s: %v", uid, roomID, err)
	}
	if notifyPartner && models.IsPrivateChatID(roomID) {
		m.notifyPartnerLeft(roomID, uid)
	}
	client.Close()
}

// notifyPartnerLeft tells the other participant their peer disconnected from
// the chat, in the partner's own language.
func (m *ManagerService) notifyPartnerLeft(chatID, uid string) {
	chat, err := m.Storage.GetChat(chatID)
	if err != nil || chat == nil {
		return
	}
	partner, ok := m.Clients[chat.PartnerOf(uid)]
	if !ok || partner.GetRoomID() != chatID {
		return
	}
	lang := localization.DefaultLanguage
	if p, err := m.Storage.GetProfile(partner.GetUserID()); err == nil && p != nil && p.Language != "" {
		lang = p.Language
	}
	m.send(partner, models.WireMessage{
		RoomID: chatID,
		Body:   m.Localizer.GetString(lang, localization.KeyPartnerLeft),
		Type:   models.MessageTypeSystem,
	})
}

// handleIncoming processes one frame read from a client connection.
func (m *ManagerService) handleIncoming(msg models.WireMessage) {
	switch msg.Type {
	case models.WireTypeTyping:
		if err := m.Storage.SetTyping(msg.RoomID, msg.SenderID, time.Now()); err != nil {
			log.Printf("ERROR: Failed to set typing for %s: %v", msg.SenderID, err)
		}
		return

	case models.WireTypeTypingStop:
		if err := m.Storage.ClearTyping(msg.RoomID, msg.SenderID); err != nil {
			log.Printf("ERROR: Failed to clear typing for %s: %v", msg.SenderID, err)
		}
		return

	case models.MessageTypeText, models.MessageTypeImage:
		m.handleChatMessage(msg)

	default:
		log.Printf("Dropping frame with unknown type %q from %s", msg.Type, msg.SenderID)
	}
}

func (m *ManagerService) handleChatMessage(msg models.WireMessage) {
	if msg.Body == "" {
		return
	}
	if msg.Type == models.MessageTypeText && len(msg.Body) > config.MaxMessageLen {
		return
	}

	// Private chats require an accepted handshake; the partner is credited
	// an unread message.
	if models.IsPrivateChatID(msg.RoomID) {
		partner, err := m.Private.AuthorizeMessage(msg.SenderID, msg.RoomID)
		if err != nil {
			log.Printf("Rejected private message from %s to %s: %v", msg.SenderID, msg.RoomID, err)
			return
		}
		if err := m.Storage.TouchChat(msg.RoomID, time.Now(), partner); err != nil {
			log.Printf("ERROR: Failed to touch chat %s: %v", msg.RoomID, err)
		}
	}

	if msg.Type == models.MessageTypeText {
		msg.Body = moderation.CensorProfanity(msg.Body)
	}

	var snap models.PresenceSnapshot
	if client, ok := m.Clients[msg.SenderID]; ok {
		snap = client.Snapshot()
	}

	stored := &models.Message{
		RoomID:         msg.RoomID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		Type:           msg.Type,
		SenderNickname: snap.Nickname,
		SenderAvatar:   snap.Avatar,
		SenderCountry:  snap.Country,
	}
	if err := m.Storage.SaveMessage(stored); err != nil {
		return
	}

	// Sending implicitly ends the sender's typing state.
	if err := m.Storage.ClearTyping(msg.RoomID, msg.SenderID); err != nil {
		log.Printf("ERROR: Failed to clear typing for %s: %v", msg.SenderID, err)
	}

	msg.SentAt = stored.CreatedAt.UnixMilli()
	msg.Sender = &snap
	if err := m.Storage.PublishMessage(msg.RoomID, msg); err != nil {
		log.Printf("ERROR: Failed to publish message for room %s: %v", msg.RoomID, err)
	}
}

// deliver fans a published frame out to the local clients in its room,
// honoring each viewer's block list.
func (m *ManagerService) deliver(msg models.WireMessage) {
	for _, client := range m.Clients {
		if client.GetRoomID() != msg.RoomID {
			continue
		}
		if msg.SenderID != "" && client.Blocks(msg.SenderID) {
			continue
		}
		m.send(client, msg)
	}
}

func (m *ManagerService) deliverNotice(notice models.Notice) {
	client, ok := m.Clients[notice.TargetUID]
	if !ok {
		return
	}
	m.send(client, notice.Message)
}

// send is non-blocking: a client whose buffer is full is considered dead and
// unregistered.
func (m *ManagerService) send(client Client, msg models.WireMessage) {
	select {
	case client.GetSendChannel() <- msg:
	default:
		m.unregister(client)
	}
}

// Notify queues a targeted system message for uid. Safe to call from any
// goroutine; drops the notice when the hub is saturated rather than blocking
// an HTTP handler.
func (m *ManagerService) Notify(uid string, msg models.WireMessage) {
	select {
	case m.NoticeCh <- models.Notice{TargetUID: uid, Message: msg}:
	default:
		log.Printf("WARNING: Notice queue full, dropping notice for %s", uid)
	}
}
