package websocket

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/services"
)

// MessageHandler persists frames received over a socket. Messages go
// through the chat service so they get the same validation, receipts and
// room broadcast as the REST endpoint.
type MessageHandler struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(chatService services.ChatService, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleIncoming saves one inbound frame as a chat message
func (h *MessageHandler) HandleIncoming(profileID, chatID int64, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := h.chatService.CreateMessage(ctx, profileID, chatID, content); err != nil {
		h.logger.Warn().
			Err(err).
			Int64("chatID", chatID).
			Int64("profileID", profileID).
			Msg("Failed to save WebSocket message")
	}
}
