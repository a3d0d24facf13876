// Package realtime delivers newly inserted chat messages to live
// subscribers. Subscriptions are keyed by rental request and returned
// as disposable handles; the owning view must call Close on teardown so
// no delivery callback outlives it.
package realtime

import (
	"sync"

	"agroshare-backend/internal/domain"
)

const subscriptionBuffer = 16

// Subscription is one registered listener on a request's conversation.
// Messages arrive on C until Close is called.
type Subscription struct {
	C <-chan domain.ChatMessage

	hub       *Hub
	requestID string
	id        int
	ch        chan domain.ChatMessage
	once      sync.Once
}

// Close unregisters the subscription and closes its channel. Safe to
// call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.requestID, s.id)
		close(s.ch)
	})
}

// Hub fans out chat messages to the current subscribers of each rental
// request. Delivery is best-effort: a subscriber that stops draining
// its channel misses messages rather than blocking the sender.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]*Subscription)}
}

// Subscribe registers a listener for one request's messages.
func (h *Hub) Subscribe(requestID string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan domain.ChatMessage, subscriptionBuffer)
	sub := &Subscription{
		C:         ch,
		hub:       h,
		requestID: requestID,
		id:        h.nextID,
		ch:        ch,
	}
	if h.subs[requestID] == nil {
		h.subs[requestID] = make(map[int]*Subscription)
	}
	h.subs[requestID][sub.id] = sub
	return sub
}

func (h *Hub) unsubscribe(requestID string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subs[requestID]; ok {
		delete(subs, id)
		if len(subs) == 0 {
			delete(h.subs, requestID)
		}
	}
}

// Publish delivers a message to every live subscriber of its request.
func (h *Hub) Publish(msg domain.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[msg.RentalRequestID] {
		select {
		case sub.ch <- msg:
		default:
			// Subscriber is not draining; drop rather than block.
		}
	}
}

// SubscriberCount reports the number of live subscriptions for a
// request. Used by tests and diagnostics.
func (h *Hub) SubscriberCount(requestID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[requestID])
}
