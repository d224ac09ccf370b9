package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
	"github.com/unilink/unilink/internal/pkg/apperrors"
)

// Limits for discussion fields
const (
	MaxDiscussionTitleLength = 125
	MaxDiscussionBodyLength  = 1000
	MaxReplyLength           = 300
	MinReplyLength           = 3
)

// DiscussionService defines the interface for discussion operations
type DiscussionService interface {
	CreateDiscussion(ctx context.Context, profileID, projectID int64, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error)
	GetProjectDiscussions(ctx context.Context, projectID int64) ([]dto.DiscussionResponse, error)
	GetDiscussion(ctx context.Context, discussionID int64) (*dto.DiscussionResponse, error)
	DeleteDiscussion(ctx context.Context, profileID, discussionID int64) error
	StarDiscussion(ctx context.Context, profileID, discussionID int64) error
	UnstarDiscussion(ctx context.Context, profileID, discussionID int64) error
	ReplyDiscussion(ctx context.Context, profileID, discussionID int64, content string) (*dto.DiscussionReplyResponse, error)
	DeleteReply(ctx context.Context, profileID, replyID int64) error
}

// discussionServiceImpl implements DiscussionService
type discussionServiceImpl struct {
	discussionRepo *repositories.DiscussionRepository
	projectRepo    *repositories.ProjectRepository
	profileRepo    *repositories.ProfileRepository
	logger         zerolog.Logger
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(
	discussionRepo *repositories.DiscussionRepository,
	projectRepo *repositories.ProjectRepository,
	profileRepo *repositories.ProfileRepository,
	logger zerolog.Logger,
) DiscussionService {
	return &discussionServiceImpl{
		discussionRepo: discussionRepo,
		projectRepo:    projectRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

func (s *discussionServiceImpl) getDiscussion(ctx context.Context, discussionID int64) (*models.Discussion, error) {
	discussion, err := s.discussionRepo.GetByID(ctx, discussionID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrDiscussionNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Discussão não encontrada!")
		}
		return nil, err
	}
	return discussion, nil
}

// CreateDiscussion opens a discussion on a project. Members only.
func (s *discussionServiceImpl) CreateDiscussion(ctx context.Context, profileID, projectID int64, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error) {
	_, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Projeto não encontrado")
		}
		return nil, err
	}

	_, err = s.projectRepo.GetMember(ctx, projectID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMemberNotFound) {
			return nil, apperrors.NewForbiddenError("Você não faz parte do projeto!")
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)

	if title == "" || body == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(title, MaxDiscussionTitleLength) || exceedsLimit(body, MaxDiscussionBodyLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}
	if !models.IsValidDiscussionCategory(req.Category) {
		return nil, apperrors.NewValidationError("Dados inválidos!")
	}

	id, err := s.discussionRepo.Create(ctx, &models.Discussion{
		ProjectID: projectID,
		ProfileID: profileID,
		Title:     title,
		Body:      body,
		Category:  req.Category,
	})
	if err != nil {
		return nil, err
	}

	return s.GetDiscussion(ctx, id)
}

// GetProjectDiscussions retrieves a project's discussions with stars and
// replies
func (s *discussionServiceImpl) GetProjectDiscussions(ctx context.Context, projectID int64) ([]dto.DiscussionResponse, error) {
	_, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Projeto não encontrado")
		}
		return nil, err
	}

	discussions, err := s.discussionRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DiscussionResponse, 0, len(discussions))
	for i := range discussions {
		responses = append(responses, toDiscussionResponse(&discussions[i]))
	}

	return responses, nil
}

// GetDiscussion retrieves one discussion with its children
func (s *discussionServiceImpl) GetDiscussion(ctx context.Context, discussionID int64) (*dto.DiscussionResponse, error) {
	discussion, err := s.getDiscussion(ctx, discussionID)
	if err != nil {
		return nil, err
	}

	resp := toDiscussionResponse(discussion)
	return &resp, nil
}

// DeleteDiscussion removes a discussion. Owner only.
func (s *discussionServiceImpl) DeleteDiscussion(ctx context.Context, profileID, discussionID int64) error {
	discussion, err := s.getDiscussion(ctx, discussionID)
	if err != nil {
		return err
	}

	if discussion.ProfileID != profileID {
		return apperrors.NewForbiddenError("A discussão não é sua!")
	}

	return s.discussionRepo.Delete(ctx, discussionID)
}

// StarDiscussion stars a discussion once per profile, enforced by the
// unique constraint
func (s *discussionServiceImpl) StarDiscussion(ctx context.Context, profileID, discussionID int64) error {
	if _, err := s.getDiscussion(ctx, discussionID); err != nil {
		return err
	}

	_, err := s.discussionRepo.CreateStar(ctx, discussionID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyStarred) {
			return apperrors.NewBadRequestError("Você não pode curtir a mesma discussão mais de uma vez!")
		}
		return err
	}

	return nil
}

// UnstarDiscussion removes the requester's star
func (s *discussionServiceImpl) UnstarDiscussion(ctx context.Context, profileID, discussionID int64) error {
	if _, err := s.getDiscussion(ctx, discussionID); err != nil {
		return err
	}

	err := s.discussionRepo.DeleteStar(ctx, discussionID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStarNotFound) {
			return apperrors.NewNotFoundError(err, "Curtida não encontrada!")
		}
		return err
	}

	return nil
}

// ReplyDiscussion adds a reply to a discussion
func (s *discussionServiceImpl) ReplyDiscussion(ctx context.Context, profileID, discussionID int64, content string) (*dto.DiscussionReplyResponse, error) {
	if _, err := s.getDiscussion(ctx, discussionID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) < MinReplyLength {
		return nil, apperrors.NewValidationError("O comentário não pode ter menos de 3 caracteres!")
	}
	if exceedsLimit(content, MaxReplyLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	id, err := s.discussionRepo.CreateReply(ctx, &models.DiscussionReply{
		DiscussionID: discussionID,
		ProfileID:    profileID,
		Content:      content,
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.discussionRepo.GetReplyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	reply.Profile = profile

	resp := toReplyResponse(reply)
	return &resp, nil
}

// DeleteReply removes one of the requester's own replies
func (s *discussionServiceImpl) DeleteReply(ctx context.Context, profileID, replyID int64) error {
	reply, err := s.discussionRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrReplyNotFound) {
			return apperrors.NewNotFoundError(err, "Comentário não encontrado!")
		}
		return err
	}

	if reply.ProfileID != profileID {
		return apperrors.NewForbiddenError("O comentário não é seu!")
	}

	return s.discussionRepo.DeleteReply(ctx, replyID)
}
