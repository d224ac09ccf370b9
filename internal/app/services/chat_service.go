package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/helpers"
)

// MessageBroadcaster pushes new messages to connected websocket clients.
// The hub in internal/pkg/websocket implements it.
type MessageBroadcaster interface {
	BroadcastToChat(chatID int64, message *dto.MessageResponse)
}

// ChatService defines the interface for chat operations
type ChatService interface {
	GetChatsList(ctx context.Context, profileID int64) ([]dto.ChatResponse, error)
	GetChatMessages(ctx context.Context, profileID, chatID int64, scrollIndex, batchLength int) ([]dto.MessageResponse, error)
	CreateMessage(ctx context.Context, profileID, chatID int64, content string) (*dto.MessageResponse, error)
	VisualizeChatMessages(ctx context.Context, profileID, chatID int64) error
	CreateChat(ctx context.Context, profileID int64, memberUsernames []string) (*dto.ChatResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	db          *pgxpool.Pool
	chatRepo    *repositories.ChatRepository
	profileRepo *repositories.ProfileRepository
	broadcaster MessageBroadcaster
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService. broadcaster may be nil when
// the websocket hub is not running (tests).
func NewChatService(
	db *pgxpool.Pool,
	chatRepo *repositories.ChatRepository,
	profileRepo *repositories.ProfileRepository,
	broadcaster MessageBroadcaster,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		db:          db,
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// requireChatMember checks the chat exists and the profile is in it
func (s *chatServiceImpl) requireChatMember(ctx context.Context, chatID, profileID int64) error {
	_, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrChatNotFound) {
			return apperrors.NewNotFoundError(err, "Conversa não encontrada!")
		}
		return err
	}

	isMember, err := s.chatRepo.IsMember(ctx, chatID, profileID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.NewBadRequestError("Você não está na conversa!")
	}

	return nil
}

// GetChatsList retrieves the requester's active chats with members, last
// message and unread count
func (s *chatServiceImpl) GetChatsList(ctx context.Context, profileID int64) ([]dto.ChatResponse, error) {
	chats, err := s.chatRepo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp, err := s.buildChatResponse(ctx, chat.ID, profileID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

func (s *chatServiceImpl) buildChatResponse(ctx context.Context, chatID, profileID int64) (*dto.ChatResponse, error) {
	members, err := s.chatRepo.GetMembers(ctx, chatID)
	if err != nil {
		return nil, err
	}

	lastMessage, err := s.chatRepo.GetLastMessage(ctx, chatID)
	if err != nil {
		return nil, err
	}

	unread, err := s.chatRepo.CountUnvisualized(ctx, chatID, profileID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatResponse{
		ID:                chatID,
		Members:           []dto.ProfileBasicResponse{},
		UnvisualizedCount: unread,
	}
	for i := range members {
		resp.Members = append(resp.Members, toProfileBasic(&members[i]))
	}
	if lastMessage != nil {
		message := toMessageResponse(lastMessage)
		resp.LastMessage = &message
	}

	return resp, nil
}

// GetChatMessages retrieves one scroll page of a chat's messages, newest
// first. Members only.
func (s *chatServiceImpl) GetChatMessages(ctx context.Context, profileID, chatID int64, scrollIndex, batchLength int) ([]dto.MessageResponse, error) {
	if err := s.requireChatMember(ctx, chatID, profileID); err != nil {
		return nil, err
	}

	offset, limit := helpers.MessageWindow(scrollIndex, batchLength)
	messages, err := s.chatRepo.GetMessages(ctx, chatID, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}

	return responses, nil
}

// CreateMessage stores a message and fans it out to connected clients
func (s *chatServiceImpl) CreateMessage(ctx context.Context, profileID, chatID int64, content string) (*dto.MessageResponse, error) {
	if err := s.requireChatMember(ctx, chatID, profileID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}

	message := &models.Message{
		ChatID:   chatID,
		SenderID: &profileID,
		Content:  content,
	}
	id, err := s.chatRepo.CreateMessage(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = id

	sender, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	message.Sender = sender

	resp := toMessageResponse(message)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToChat(chatID, &resp)
	}

	return &resp, nil
}

// VisualizeChatMessages marks every unseen message in the chat as seen by
// the requester. Idempotent.
func (s *chatServiceImpl) VisualizeChatMessages(ctx context.Context, profileID, chatID int64) error {
	if err := s.requireChatMember(ctx, chatID, profileID); err != nil {
		return err
	}

	return s.chatRepo.VisualizeMessages(ctx, chatID, profileID)
}

// CreateChat opens a chat between the requester and the given usernames.
// A chat with that exact member set already existing is returned instead
// of duplicated.
func (s *chatServiceImpl) CreateChat(ctx context.Context, profileID int64, memberUsernames []string) (*dto.ChatResponse, error) {
	memberIDs := []int64{profileID}
	seen := map[int64]bool{profileID: true}
	for _, username := range memberUsernames {
		profile, err := s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, apperrors.NewNotFoundError(err, "Nome de usuário inválido!")
			}
			return nil, err
		}
		if seen[profile.ID] {
			continue
		}
		seen[profile.ID] = true
		memberIDs = append(memberIDs, profile.ID)
	}

	if len(memberIDs) < 2 {
		return nil, apperrors.NewValidationError("Dados inválidos!")
	}

	existing, err := s.chatRepo.FindByExactMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.buildChatResponse(ctx, existing.ID, profileID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin create chat transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	chatID, err := s.chatRepo.Create(ctx, tx, memberIDs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit create chat transaction: %w", err)
	}

	return s.buildChatResponse(ctx, chatID, profileID)
}
