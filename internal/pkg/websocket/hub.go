package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
)

// Hub maintains the set of active clients grouped by chat and broadcasts
// messages to them
type Hub struct {
	// Registered clients organized by chat ID
	clients map[int64]map[*Client]bool

	// Outbound events waiting for delivery
	broadcast chan *event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// event is a serialized message bound for one chat room
type event struct {
	chatID int64
	data   []byte
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.broadcast:
			h.broadcastEvent(ev)
		}
	}
}

// BroadcastToChat delivers a persisted message to every client connected
// to the chat. Satisfies the chat service's broadcaster dependency.
func (h *Hub) BroadcastToChat(chatID int64, message *dto.MessageResponse) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", chatID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	h.broadcast <- &event{chatID: chatID, data: data}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatID := client.chatID
	if _, ok := h.clients[chatID]; !ok {
		h.clients[chatID] = make(map[*Client]bool)
	}
	h.clients[chatID][client] = true

	h.logger.Info().
		Int64("chatID", chatID).
		Int64("profileID", client.profileID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatID := client.chatID
	if _, ok := h.clients[chatID]; ok {
		if _, ok := h.clients[chatID][client]; ok {
			delete(h.clients[chatID], client)
			close(client.send)

			// If no more clients in this chat, clean up
			if len(h.clients[chatID]) == 0 {
				delete(h.clients, chatID)
			}

			h.logger.Info().
				Int64("chatID", chatID).
				Int64("profileID", client.profileID).
				Msg("Client unregistered")
		}
	}
}

// broadcastEvent sends a serialized message to all clients in its chat.
// Clients whose send buffer is full are dropped after the delivery pass;
// signaling the unregister channel here would block forever, since Run
// drains it on this same goroutine.
func (h *Hub) broadcastEvent(ev *event) {
	h.mu.RLock()
	clients, ok := h.clients[ev.chatID]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Int64("chatID", ev.chatID).
			Msg("No clients in chat for broadcast")
		return
	}

	var stalled []*Client
	delivered := 0
	for client := range clients {
		select {
		case client.send <- ev.data:
			delivered++
		default:
			// Full buffer means the reader stopped draining
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Int64("chatID", ev.chatID).
		Int("clientCount", delivered).
		Msg("Message broadcasted to chat")
}

// GetClientsCount returns the number of connected clients for a chat
func (h *Hub) GetClientsCount(chatID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[chatID]; ok {
		return len(clients)
	}
	return 0
}
