package chathub

import (
	"anonchat/backend/internal/models"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// Subscriber provides the pattern subscription covering every room channel.
// *storage.Service satisfies it; tests feed PubSubCh directly instead.
type Subscriber interface {
	SubscribeAllRooms() *redis.PubSub
}

// StartPubSubListener launches the goroutine that relays frames published on
// the Redis room channels into the hub's dispatcher loop. Messages published
// by other server instances arrive here.
func (m *ManagerService) StartPubSubListener(sub Subscriber) {
	go func() {
		pubsub := sub.SubscribeAllRooms()
		defer pubsub.Close()

		for raw := range pubsub.Channel() {
			var msg models.WireMessage
			if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
				log.Printf("Error unmarshalling pub/sub frame: %v", err)
				continue
			}
			m.PubSubCh <- msg
		}
	}()
}
