package websocket

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilink/unilink/internal/app/models/dto"
)

func TestBroadcastToChatReachesRoomClients(t *testing.T) {
	h := NewHub(zerolog.Nop())

	inRoom := &Client{hub: h, send: make(chan []byte, 1), chatID: 7, profileID: 1}
	otherRoom := &Client{hub: h, send: make(chan []byte, 1), chatID: 8, profileID: 2}
	h.clients[7] = map[*Client]bool{inRoom: true}
	h.clients[8] = map[*Client]bool{otherRoom: true}

	go h.BroadcastToChat(7, &dto.MessageResponse{ID: 3, Content: "olá"})
	h.broadcastEvent(<-h.broadcast)

	select {
	case data := <-inRoom.send:
		var got dto.MessageResponse
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "olá", got.Content)
	default:
		t.Fatal("expected a message in the room client's send buffer")
	}

	assert.Empty(t, otherRoom.send)
}

// A stalled reader must never wedge the hub: the broadcast loop and the
// unregister channel are serviced by the same goroutine, so the drop has
// to happen inline rather than through the channel.
func TestBroadcastDropsStalledClients(t *testing.T) {
	h := NewHub(zerolog.Nop())

	healthy := &Client{hub: h, send: make(chan []byte, 1), chatID: 7, profileID: 1}
	stalled := &Client{hub: h, send: make(chan []byte, 1), chatID: 7, profileID: 2}
	stalled.send <- []byte("backlog")
	h.clients[7] = map[*Client]bool{healthy: true, stalled: true}

	go h.BroadcastToChat(7, &dto.MessageResponse{ID: 9, Content: "tudo bem?"})
	h.broadcastEvent(<-h.broadcast)

	// Delivery to the healthy client still happened
	assert.Len(t, healthy.send, 1)

	// The stalled client is gone and its send channel is closed, which
	// makes its write pump exit
	assert.Equal(t, 1, h.GetClientsCount(7))
	_, stillRegistered := h.clients[7][stalled]
	assert.False(t, stillRegistered)

	<-stalled.send
	_, open := <-stalled.send
	assert.False(t, open)

	// A second broadcast on the same goroutine proves the hub is still live
	<-healthy.send
	go h.BroadcastToChat(7, &dto.MessageResponse{ID: 10, Content: "ainda aqui"})
	h.broadcastEvent(<-h.broadcast)
	assert.Len(t, healthy.send, 1)
}

func TestBroadcastToEmptyChatIsANoOp(t *testing.T) {
	h := NewHub(zerolog.Nop())

	go h.BroadcastToChat(42, &dto.MessageResponse{ID: 1, Content: "oi"})
	h.broadcastEvent(<-h.broadcast)
}

func TestGetClientsCount(t *testing.T) {
	h := NewHub(zerolog.Nop())
	assert.Equal(t, 0, h.GetClientsCount(7))

	h.clients[7] = map[*Client]bool{
		{send: make(chan []byte, 1), chatID: 7}: true,
		{send: make(chan []byte, 1), chatID: 7}: true,
	}
	assert.Equal(t, 2, h.GetClientsCount(7))
	assert.Equal(t, 0, h.GetClientsCount(8))
}
