package feed

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one calendar change pushed to subscribers.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// subscriber serializes writes to its connection; gorilla/websocket
// allows at most one concurrent writer per connection.
type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *subscriber) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *subscriber) close() {
	_ = s.conn.Close()
}

// Hub fans booking lifecycle events out to every connected calendar
// subscriber. Connections are anonymous: the feed carries only data that
// is public anyway.
type Hub struct {
	mu          sync.RWMutex
	nextID      int64
	subscribers map[int64]*subscriber
	log         *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[int64]*subscriber),
		log:         log,
	}
}

func (h *Hub) register(conn *websocket.Conn) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.subscribers[h.nextID] = &subscriber{conn: conn}
	return h.nextID
}

func (h *Hub) unregister(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, exists := h.subscribers[id]; exists {
		sub.close()
		delete(h.subscribers, id)
	}
}

// Publish sends the event to every subscriber; dead connections are
// dropped on write failure.
func (h *Hub) Publish(event string, payload any) {
	h.mu.RLock()
	subs := make(map[int64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.RUnlock()

	msg := Event{Event: event, Payload: payload}
	for id, sub := range subs {
		if err := sub.writeJSON(msg); err != nil {
			h.log.Debug("dropping feed subscriber", zap.Int64("conn_id", id), zap.Error(err))
			h.unregister(id)
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		sub.close()
		delete(h.subscribers, id)
	}
}
