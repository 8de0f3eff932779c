package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesCompanySubscribersOnly(t *testing.T) {
	hub := NewHub()

	chA, cleanupA := hub.Subscribe("company-a")
	defer cleanupA()
	chB, cleanupB := hub.Subscribe("company-b")
	defer cleanupB()

	hub.Publish("company-a", Event{CompanyID: "company-a", Event: "attendance.recorded", Data: "payload"})

	select {
	case event := <-chA:
		assert.Equal(t, "attendance.recorded", event.Event)
	default:
		t.Fatal("expected event on company-a channel")
	}

	select {
	case <-chB:
		t.Fatal("company-b must not receive company-a events")
	default:
	}
}

func TestHubPublishSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("company-a")
	defer cleanup()

	// Fill the buffer past capacity; Publish must never block.
	for i := 0; i < 20; i++ {
		hub.Publish("company-a", Event{Event: "verification.completed"})
	}

	assert.Equal(t, cap(ch), len(ch))
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("company-a")
	require.Equal(t, 1, hub.SubscriberCount("company-a"))

	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount("company-a"))

	_, open := <-ch
	assert.False(t, open)
}
