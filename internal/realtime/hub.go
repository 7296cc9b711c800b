package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/clapboard/membership/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub routes subscription lifecycle events to connected websocket clients.
// Requests fan out to administrators; decisions and expiries target the
// owning user.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]bool
	admins     map[*Client]bool
	register   chan *Client
	unregister chan *Client
	log        *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		admins:     make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		log:        log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.userID]
	if !ok {
		conns = make(map[*Client]bool)
		h.clients[c.userID] = conns
	}
	conns[c] = true
	if c.admin {
		h.admins[c] = true
	}
	h.log.Debugw("ws: client connected", "user_id", c.userID, "admin", c.admin)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[c.userID]
	if !ok || !conns[c] {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	delete(h.admins, c)
	c.close()
	h.log.Debugw("ws: client disconnected", "user_id", c.userID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for c := range conns {
			c.close()
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	h.admins = make(map[*Client]bool)
}

// ServeWS upgrades the connection and starts the pumps. The caller has
// already authenticated the user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string, admin bool) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(h, conn, userID, admin, h.log)
	h.register <- c
	go c.writePump()
	go c.readPump()
	c.Send(NewMessage(EventConnected, map[string]any{"user_id": userID, "connected_at": time.Now().UTC()}))
	return nil
}

// SendToUser delivers a message to every connection held by userID.
func (h *Hub) SendToUser(userID string, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		c.Send(msg)
	}
}

// BroadcastAdmins delivers a message to every connected administrator.
func (h *Hub) BroadcastAdmins(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.admins {
		c.Send(msg)
	}
}

func subscriptionPayload(sub *models.UserSubscription) map[string]any {
	data := map[string]any{
		"subscription_id": sub.ID,
		"user_id":         sub.UserID,
		"status":          sub.Status,
		"start_date":      sub.StartDate,
		"end_date":        sub.EndDate,
	}
	if sub.PackageID != "" {
		data["package_id"] = sub.PackageID
	}
	if sub.Package != nil {
		data["package_name"] = sub.Package.Name
	}
	return data
}

// SubscriptionRequested notifies administrators that a request awaits review.
func (h *Hub) SubscriptionRequested(sub *models.UserSubscription) {
	h.BroadcastAdmins(NewMessage(EventSubscriptionRequested, subscriptionPayload(sub)))
}

// SubscriptionDecided notifies the owning user of an approval or rejection.
func (h *Hub) SubscriptionDecided(sub *models.UserSubscription) {
	h.SendToUser(sub.UserID, NewMessage(EventSubscriptionDecided, subscriptionPayload(sub)))
}

// SubscriptionExpired notifies the owning user that the benefit window closed.
func (h *Hub) SubscriptionExpired(sub *models.UserSubscription) {
	h.SendToUser(sub.UserID, NewMessage(EventSubscriptionExpired, subscriptionPayload(sub)))
}
