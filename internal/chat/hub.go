package chat

import (
	"sync"

	"github.com/google/uuid"

	"pharus/internal/model"
)

// Hub fans inserted messages out to the receiver's open streams. The filter
// is server-side: a subscriber only ever sees messages addressed to it.
// There is no replay, ordering buffer, or acknowledgement; a reconnecting
// client re-seeds its counters from the store instead.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[uuid.UUID]map[int]chan model.Message
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[int]chan model.Message)}
}

// Subscribe opens a stream for one receiver. Cancel must be called when the
// stream ends.
func (h *Hub) Subscribe(receiver uuid.UUID) (<-chan model.Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan model.Message, 16)
	if h.subs[receiver] == nil {
		h.subs[receiver] = make(map[int]chan model.Message)
	}
	h.subs[receiver][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[receiver][id]; ok {
			delete(h.subs[receiver], id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a message to the receiver's streams without blocking.
func (h *Hub) Publish(msg model.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[msg.ReceiverID] {
		select {
		case ch <- msg:
		default:
		}
	}
}
