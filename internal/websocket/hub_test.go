package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushDoesNotBlockWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// No Run loop is draining Notify; Push must still return immediately.
	for i := 0; i < 200; i++ {
		hub.Push("user-1", []byte("hello"))
	}

	// The buffer holds what fits, the rest is dropped.
	assert.Equal(t, cap(hub.Notify), len(hub.Notify))
}

func TestPushAddressesMessage(t *testing.T) {
	hub := NewHub()

	hub.Push("user-42", []byte("payload"))

	select {
	case msg := <-hub.Notify:
		assert.Equal(t, "user-42", msg.UserID)
		assert.Equal(t, []byte("payload"), msg.Payload)
	default:
		require.Fail(t, "expected a queued message")
	}
}
