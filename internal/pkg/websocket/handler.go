package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/repositories"
	"github.com/unilink/unilink/internal/middleware"
)

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	messages *MessageHandler
	chatRepo *repositories.ChatRepository
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	hub *Hub,
	messages *MessageHandler,
	chatRepo *repositories.ChatRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		hub:      hub,
		messages: messages,
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for real-time chat
// @Description Upgrades the HTTP connection to a WebSocket stream of the chat's new messages
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param chatID path int true "Chat ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {string} string "Você não está na conversa!"
// @Failure 404 {string} string "Conversa não encontrada!"
// @Router /api/chats/ws/{chatID} [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chatID"), 10, 64)
	if err != nil || chatID <= 0 {
		c.JSON(http.StatusBadRequest, "Dados inválidos!")
		return
	}

	profileID := middleware.GetProfileID(c)

	if _, err := h.chatRepo.GetByID(c.Request.Context(), chatID); err != nil {
		c.JSON(http.StatusNotFound, "Conversa não encontrada!")
		return
	}

	member, err := h.chatRepo.IsMember(c.Request.Context(), chatID, profileID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", chatID).
			Int64("profileID", profileID).
			Msg("Failed to check chat membership")
		c.JSON(http.StatusInternalServerError, "Erro interno do servidor!")
		return
	}
	if !member {
		c.JSON(http.StatusBadRequest, "Você não está na conversa!")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", chatID).
			Int64("profileID", profileID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:       h.hub,
		messages:  h.messages,
		conn:      conn,
		send:      make(chan []byte, 256),
		profileID: profileID,
		chatID:    chatID,
		logger:    h.logger,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("chatID", chatID).
		Int64("profileID", profileID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
