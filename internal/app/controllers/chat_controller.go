package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/services"
	"github.com/unilink/unilink/internal/middleware"
)

// ChatController handles chat and message operations
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// GetChatsList returns the requester's chats that have messages
// @Summary List chats
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ChatResponse
// @Router /api/chats/get-chats-list [get]
func (c *ChatController) GetChatsList(ctx *gin.Context) {
	chats, err := c.chatService.GetChatsList(ctx.Request.Context(), middleware.GetProfileID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chats)
}

// GetChatMessages returns a page of a chat's messages, newest first
// @Summary Get chat messages
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param chatID path int true "Chat ID"
// @Param scroll-index query int false "Page index"
// @Param batch-length query int false "Page size"
// @Success 200 {array} dto.MessageResponse
// @Failure 400 {string} string "Você não está na conversa!"
// @Failure 404 {string} string "Conversa não encontrada!"
// @Router /api/chats/get-chat-messages/{chatID} [get]
func (c *ChatController) GetChatMessages(ctx *gin.Context) {
	chatID, ok := parseIDParam(ctx, "chatID")
	if !ok {
		return
	}

	scrollIndex, _ := strconv.Atoi(ctx.Query("scroll-index"))
	batchLength, _ := strconv.Atoi(ctx.Query("batch-length"))

	messages, err := c.chatService.GetChatMessages(
		ctx.Request.Context(),
		middleware.GetProfileID(ctx),
		chatID,
		scrollIndex,
		batchLength,
	)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// CreateMessage posts a message to a chat. Members only.
// @Summary Create a message
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chatID path int true "Chat ID"
// @Param request body dto.CreateMessageRequest true "Message"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {string} string "Todos os campos devem ser preenchidos!"
// @Router /api/chats/create-message/{chatID} [post]
func (c *ChatController) CreateMessage(ctx *gin.Context) {
	chatID, ok := parseIDParam(ctx, "chatID")
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if !bindJSON(ctx, &req) {
		return
	}

	message, err := c.chatService.CreateMessage(ctx.Request.Context(), middleware.GetProfileID(ctx), chatID, req.Content)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// VisualizeChatMessages marks every message in the chat as seen by the
// requester. Idempotent.
// @Summary Visualize chat messages
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param chatID path int true "Chat ID"
// @Success 200 {string} string "success"
// @Router /api/chats/visualize-chat-messages/{chatID} [patch]
func (c *ChatController) VisualizeChatMessages(ctx *gin.Context) {
	chatID, ok := parseIDParam(ctx, "chatID")
	if !ok {
		return
	}

	if err := c.chatService.VisualizeChatMessages(ctx.Request.Context(), middleware.GetProfileID(ctx), chatID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// CreateChat opens a chat with the given members
// @Summary Create a chat
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateChatRequest true "Member usernames"
// @Success 200 {object} dto.ChatResponse
// @Failure 404 {string} string "Nome de usuário inválido!"
// @Router /api/chats/create-chat [post]
func (c *ChatController) CreateChat(ctx *gin.Context) {
	var req dto.CreateChatRequest
	if !bindJSON(ctx, &req) {
		return
	}

	chat, err := c.chatService.CreateChat(ctx.Request.Context(), middleware.GetProfileID(ctx), req.Members)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, chat)
}
