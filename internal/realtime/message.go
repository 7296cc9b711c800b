package realtime

import "time"

type EventType string

const (
	EventConnected             EventType = "connected"
	EventSubscriptionRequested EventType = "subscription.requested"
	EventSubscriptionDecided   EventType = "subscription.decided"
	EventSubscriptionExpired   EventType = "subscription.expired"
)

// Message is the wire envelope pushed to websocket clients.
type Message struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
	At   time.Time   `json:"at"`
}

func NewMessage(t EventType, data interface{}) *Message {
	return &Message{Type: t, Data: data, At: time.Now()}
}
