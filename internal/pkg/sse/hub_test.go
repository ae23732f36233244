package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishToTopic(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("company-a")
	b, cleanupB := h.Subscribe("company-b")
	defer cleanupB()

	assert.Equal(t, 1, h.SubscriberCount("company-a"))
	assert.Equal(t, 2, h.TotalSubscribers())

	h.Publish("company-a", Event{Event: "notification", Data: "hello"})

	select {
	case ev := <-a:
		assert.Equal(t, "company-a", ev.Topic)
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected an event for company-a")
	}
	assert.Empty(t, b)

	cleanupA()
	cleanupA()
	_, open := <-a
	require.False(t, open)
	assert.Equal(t, 0, h.SubscriberCount("company-a"))
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe("c1")
	defer cleanup()

	for i := 0; i < 50; i++ {
		h.Publish("c1", Event{Event: "notification"})
	}
}
