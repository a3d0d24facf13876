package realtime

import (
	"testing"

	"agroshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToSubscribers(t *testing.T) {
	hub := NewHub()
	sub1 := hub.Subscribe("req-1")
	sub2 := hub.Subscribe("req-1")
	other := hub.Subscribe("req-2")
	defer sub1.Close()
	defer sub2.Close()
	defer other.Close()

	msg := domain.ChatMessage{ID: "m1", RentalRequestID: "req-1", Message: "hello"}
	hub.Publish(msg)

	assert.Equal(t, msg, <-sub1.C)
	assert.Equal(t, msg, <-sub2.C)

	select {
	case got := <-other.C:
		t.Fatalf("unexpected delivery to other request: %+v", got)
	default:
	}
}

func TestHub_CloseUnsubscribes(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("req-1")
	require.Equal(t, 1, hub.SubscriberCount("req-1"))

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount("req-1"))

	// Channel is closed after Close
	_, ok := <-sub.C
	assert.False(t, ok)

	// Close is idempotent
	sub.Close()
}

func TestHub_PublishAfterCloseDropsSilently(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("req-1")
	sub.Close()

	// Must not panic or deliver
	hub.Publish(domain.ChatMessage{RentalRequestID: "req-1"})
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("req-1")
	defer sub.Close()

	// Overfill the buffer; Publish must never block.
	for i := 0; i < subscriptionBuffer+5; i++ {
		hub.Publish(domain.ChatMessage{RentalRequestID: "req-1", Message: "m"})
	}

	drained := 0
	for {
		select {
		case <-sub.C:
			drained++
			continue
		default:
		}
		break
	}
	assert.Equal(t, subscriptionBuffer, drained)
}
