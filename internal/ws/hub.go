package ws

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub fans application lifecycle events out to connected dashboards.
// Events targeted at a profile go only to that profile's connections.
type Hub struct {
	clients    map[*Client]bool
	byProfile  map[uuid.UUID]map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
}

type envelope struct {
	profileID uuid.UUID // uuid.Nil broadcasts to everyone
	payload   []byte
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		byProfile:  make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			if client.profileID != uuid.Nil {
				if h.byProfile[client.profileID] == nil {
					h.byProfile[client.profileID] = make(map[*Client]bool)
				}
				h.byProfile[client.profileID][client] = true
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if peers, ok := h.byProfile[client.profileID]; ok {
					delete(peers, client)
					if len(peers) == 0 {
						delete(h.byProfile, client.profileID)
					}
				}
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("ws disconnected", zap.Int("total_clients", total))

		case env := <-h.broadcast:
			h.mutex.RLock()
			var targets []*Client
			if env.profileID == uuid.Nil {
				targets = make([]*Client, 0, len(h.clients))
				for c := range h.clients {
					targets = append(targets, c)
				}
			} else {
				for c := range h.byProfile[env.profileID] {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- env.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Send queues an event for one profile's connections. Non-blocking; a
// full buffer drops the event.
func (h *Hub) Send(profileID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{profileID: profileID, payload: payload}:
	default:
		h.logger.Warn("ws event dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
