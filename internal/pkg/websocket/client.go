package websocket

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024 // 4KB, chat messages are short text
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development, in production you should restrict this
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// inboundMessage is the frame clients send to post a message over the socket
type inboundMessage struct {
	Content string `json:"content"`
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub *Hub

	// Persists inbound frames through the chat service
	messages *MessageHandler

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	// Profile ID of the client
	profileID int64

	// Chat ID this client is connected to
	chatID int64

	// Logger instance
	logger zerolog.Logger
}

// readPump pumps messages from the websocket connection to the message handler
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			// Don't log normal close conditions as warnings
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().
					Int64("profileID", c.profileID).
					Int64("chatID", c.chatID).
					Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().
					Err(err).
					Int64("profileID", c.profileID).
					Int64("chatID", c.chatID).
					Msg("Unexpected WebSocket close")
			} else {
				// Log other errors at debug level to avoid filling logs with normal disconnections
				c.logger.Debug().
					Err(err).
					Int64("profileID", c.profileID).
					Int64("chatID", c.chatID).
					Msg("WebSocket read error")
			}
			break
		}

		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))

		var msg inboundMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.logger.Error().
				Err(err).
				Int64("profileID", c.profileID).
				Int64("chatID", c.chatID).
				Str("message", string(message)).
				Msg("Failed to unmarshal client message")
			continue
		}

		// Persisting through the service also broadcasts it back to the room
		c.messages.HandleIncoming(c.profileID, c.chatID, msg.Content)
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
