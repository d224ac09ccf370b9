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
)

// Limits for project fields and listings
const (
	MaxProjectNameLength   = 50
	MaxProjectSloganLength = 125
	MaxDescriptionLength   = 20000
	MaxProjectsListLength  = 30
)

// ProjectService defines the interface for project operations
type ProjectService interface {
	GetMarketsNameList(ctx context.Context) ([]dto.NameResponse, error)
	GetProjectsList(ctx context.Context) ([]dto.ProjectBasicResponse, error)
	GetFilteredProjectsList(ctx context.Context, categories, markets []string) ([]dto.ProjectBasicResponse, error)
	GetProjectCategoriesList() []models.CategoryChoice
	CreateProject(ctx context.Context, profileID int64, profileType models.ProfileType, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID, requesterProfileID int64) (*dto.ProjectResponse, error)
	EditProject(ctx context.Context, profileID, projectID int64, req *dto.EditProjectRequest) (*dto.ProjectResponse, error)
	EditDescription(ctx context.Context, profileID, projectID int64, description string) error
	InviteUsers(ctx context.Context, profileID, projectID int64, usernames []string) error
	UninviteUsers(ctx context.Context, profileID, projectID int64, usernames []string) error
	AskToJoin(ctx context.Context, profileID, projectID int64, message string) error
	ReplyInvitation(ctx context.Context, profileID int64, req *dto.ReplyRequest) error
	ReplyEntryRequest(ctx context.Context, profileID int64, req *dto.ReplyRequest) error
	RemoveUsers(ctx context.Context, profileID, projectID int64, usernames []string) error
	LeaveProject(ctx context.Context, profileID, projectID int64) error
	StarProject(ctx context.Context, profileID, projectID int64) error
	UnstarProject(ctx context.Context, profileID, projectID int64) error
	CreateLink(ctx context.Context, profileID, projectID int64, req *dto.CreateProjectLinkRequest) (*models.ProjectLink, error)
	DeleteLink(ctx context.Context, profileID, linkID int64) error
}

// projectServiceImpl implements ProjectService
type projectServiceImpl struct {
	db            *pgxpool.Pool
	projectRepo   *repositories.ProjectRepository
	requestRepo   *repositories.RequestRepository
	profileRepo   *repositories.ProfileRepository
	referenceRepo *repositories.ReferenceRepository
	logger        zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	db *pgxpool.Pool,
	projectRepo *repositories.ProjectRepository,
	requestRepo *repositories.RequestRepository,
	profileRepo *repositories.ProfileRepository,
	referenceRepo *repositories.ReferenceRepository,
	logger zerolog.Logger,
) ProjectService {
	return &projectServiceImpl{
		db:            db,
		projectRepo:   projectRepo,
		requestRepo:   requestRepo,
		profileRepo:   profileRepo,
		referenceRepo: referenceRepo,
		logger:        logger,
	}
}

// requireMember loads the requester's membership row, or a 401-mapped error
func (s *projectServiceImpl) requireMember(ctx context.Context, projectID, profileID int64) (*models.ProjectMember, error) {
	member, err := s.projectRepo.GetMember(ctx, projectID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrMemberNotFound) {
			return nil, apperrors.NewForbiddenError("Você não faz parte do projeto!")
		}
		return nil, err
	}
	return member, nil
}

// requireAdmin is requireMember plus the admin role check
func (s *projectServiceImpl) requireAdmin(ctx context.Context, projectID, profileID int64) (*models.ProjectMember, error) {
	member, err := s.requireMember(ctx, projectID, profileID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Você não é um administrador do projeto!")
	}
	return member, nil
}

func (s *projectServiceImpl) getProject(ctx context.Context, projectID int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProjectNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Projeto não encontrado")
		}
		return nil, err
	}
	return project, nil
}

// GetMarketsNameList retrieves all markets as id+name pairs
func (s *projectServiceImpl) GetMarketsNameList(ctx context.Context) ([]dto.NameResponse, error) {
	markets, err := s.referenceRepo.GetMarkets(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]dto.NameResponse, 0, len(markets))
	for _, market := range markets {
		names = append(names, dto.NameResponse{ID: market.ID, Name: market.Name})
	}

	return names, nil
}

// GetProjectsList retrieves the newest projects
func (s *projectServiceImpl) GetProjectsList(ctx context.Context) ([]dto.ProjectBasicResponse, error) {
	projects, err := s.projectRepo.List(ctx, MaxProjectsListLength)
	if err != nil {
		return nil, err
	}

	return toProjectBasics(projects), nil
}

// GetFilteredProjectsList retrieves projects matching the category and
// market filters
func (s *projectServiceImpl) GetFilteredProjectsList(ctx context.Context, categories, markets []string) ([]dto.ProjectBasicResponse, error) {
	projects, err := s.projectRepo.ListFiltered(ctx, categories, markets, MaxProjectsListLength)
	if err != nil {
		return nil, err
	}

	return toProjectBasics(projects), nil
}

func toProjectBasics(projects []models.Project) []dto.ProjectBasicResponse {
	responses := make([]dto.ProjectBasicResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, toProjectBasic(&projects[i]))
	}
	return responses
}

// GetProjectCategoriesList returns the category values with their labels
func (s *projectServiceImpl) GetProjectCategoriesList() []models.CategoryChoice {
	return models.ProjectCategories
}

// CreateProject creates a project with its markets and the creator as
// admin member, all in one transaction. Students only.
func (s *projectServiceImpl) CreateProject(ctx context.Context, profileID int64, profileType models.ProfileType, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if profileType != models.ProfileTypeStudent {
		return nil, apperrors.NewForbiddenError("Somente universitários podem criar projetos!")
	}

	name := strings.TrimSpace(req.Name)
	slogan := strings.TrimSpace(req.Slogan)

	if name == "" || slogan == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(name, MaxProjectNameLength) || exceedsLimit(slogan, MaxProjectSloganLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}
	if !models.IsValidProjectCategory(req.Category) {
		return nil, apperrors.NewValidationError("Dados inválidos!")
	}

	markets, err := s.referenceRepo.FindMarketsByNames(ctx, req.Markets)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, apperrors.NewValidationError("Selecione pelo menos um mercado válido!")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin create project transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	projectID, err := s.projectRepo.Create(ctx, tx, &models.Project{
		Category:    req.Category,
		Name:        name,
		Slogan:      slogan,
		Description: models.DefaultProjectDescription,
		ImageURL:    models.DefaultProjectImage,
	})
	if err != nil {
		return nil, err
	}

	marketIDs := make([]int64, 0, len(markets))
	for _, market := range markets {
		marketIDs = append(marketIDs, market.ID)
	}
	if err := s.projectRepo.SetMarkets(ctx, tx, projectID, marketIDs); err != nil {
		return nil, err
	}

	_, err = s.projectRepo.CreateMember(ctx, tx, &models.ProjectMember{
		ProjectID: projectID,
		ProfileID: profileID,
		Role:      models.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit create project transaction: %w", err)
	}

	s.logger.Info().Int64("projectID", projectID).Int64("profileID", profileID).Msg("Project created")

	return s.GetProject(ctx, projectID, profileID)
}

// GetProject retrieves a project. Pending requests are included only for
// admin members.
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID, requesterProfileID int64) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	member, err := s.projectRepo.GetMember(ctx, projectID, requesterProfileID)
	if err == nil && member.Role == models.RoleAdmin {
		if project.Requests, err = s.requestRepo.GetByProject(ctx, projectID); err != nil {
			return nil, err
		}
	} else if err != nil && !apperrors.Is(err, apperrors.ErrMemberNotFound) {
		return nil, err
	}

	return toProjectResponse(project), nil
}

// EditProject updates the project's fields and markets. Admin only.
func (s *projectServiceImpl) EditProject(ctx context.Context, profileID, projectID int64, req *dto.EditProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireAdmin(ctx, projectID, profileID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	slogan := strings.TrimSpace(req.Slogan)

	if name == "" || slogan == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(name, MaxProjectNameLength) || exceedsLimit(slogan, MaxProjectSloganLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}
	if !models.IsValidProjectCategory(req.Category) {
		return nil, apperrors.NewValidationError("Dados inválidos!")
	}

	markets, err := s.referenceRepo.FindMarketsByNames(ctx, req.Markets)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, apperrors.NewValidationError("Selecione pelo menos um mercado válido!")
	}

	project.Name = name
	project.Slogan = slogan
	project.Category = req.Category
	if req.ImageURL != nil {
		project.ImageURL = *req.ImageURL
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin edit project transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.projectRepo.Update(ctx, tx, project); err != nil {
		return nil, err
	}

	marketIDs := make([]int64, 0, len(markets))
	for _, market := range markets {
		marketIDs = append(marketIDs, market.ID)
	}
	if err := s.projectRepo.SetMarkets(ctx, tx, projectID, marketIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit edit project transaction: %w", err)
	}

	return s.GetProject(ctx, projectID, profileID)
}

// EditDescription replaces the rich-text description. Admin only.
func (s *projectServiceImpl) EditDescription(ctx context.Context, profileID, projectID int64, description string) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.requireAdmin(ctx, projectID, profileID); err != nil {
		return err
	}

	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(description, MaxDescriptionLength) {
		return apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	return s.projectRepo.UpdateDescription(ctx, projectID, description)
}

// InviteUsers opens invitation requests for the given usernames. Users
// already in the project or already invited are skipped.
func (s *projectServiceImpl) InviteUsers(ctx context.Context, profileID, projectID int64, usernames []string) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.requireAdmin(ctx, projectID, profileID); err != nil {
		return err
	}

	for _, username := range usernames {
		profile, err := s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrProfileNotFound) {
				return apperrors.NewNotFoundError(err, "Usuário não encontrado")
			}
			return err
		}

		_, err = s.projectRepo.GetMember(ctx, projectID, profile.ID)
		if err == nil {
			continue // already a member
		}
		if !apperrors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}

		_, err = s.requestRepo.Create(ctx, s.db, &models.ProjectRequest{
			ProjectID: projectID,
			ProfileID: profile.ID,
			Type:      models.RequestTypeInvitation,
		})
		if err != nil && !apperrors.Is(err, apperrors.ErrAlreadyInvited) {
			return err
		}
	}

	return nil
}

// UninviteUsers withdraws pending invitations for the given usernames
func (s *projectServiceImpl) UninviteUsers(ctx context.Context, profileID, projectID int64, usernames []string) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.requireAdmin(ctx, projectID, profileID); err != nil {
		return err
	}

	requests, err := s.requestRepo.GetByProject(ctx, projectID)
	if err != nil {
		return err
	}

	invited := make(map[string]int64, len(requests))
	for _, request := range requests {
		if request.Type == models.RequestTypeInvitation && request.Profile != nil {
			invited[request.Profile.Username] = request.ID
		}
	}

	for _, username := range usernames {
		if requestID, ok := invited[normalizeUsername(username)]; ok {
			if err := s.requestRepo.Delete(ctx, s.db, requestID); err != nil {
				return err
			}
		}
	}

	return nil
}

// AskToJoin opens an entry request. Three distinct preconditions reject
// it: already member, already invited, already asked.
func (s *projectServiceImpl) AskToJoin(ctx context.Context, profileID, projectID int64, message string) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}

	_, err := s.projectRepo.GetMember(ctx, projectID, profileID)
	if err == nil {
		return apperrors.NewBadRequestError("Você já faz parte do projeto!")
	}
	if !apperrors.Is(err, apperrors.ErrMemberNotFound) {
		return err
	}

	invited, err := s.requestRepo.HasPending(ctx, projectID, profileID, models.RequestTypeInvitation)
	if err != nil {
		return err
	}
	if invited {
		return apperrors.NewBadRequestError("Você já foi convidado para o projeto!")
	}

	_, err = s.requestRepo.Create(ctx, s.db, &models.ProjectRequest{
		ProjectID: projectID,
		ProfileID: profileID,
		Type:      models.RequestTypeEntryRequest,
		Message:   message,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyRequested) {
			return apperrors.NewBadRequestError("Você já pediu para entrar no projeto!")
		}
		return err
	}

	return nil
}

// ReplyInvitation answers an invitation addressed to the requester.
// Accepting creates a member-role membership; the request row is
// consumed either way.
func (s *projectServiceImpl) ReplyInvitation(ctx context.Context, profileID int64, req *dto.ReplyRequest) error {
	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}

	if request.Type != models.RequestTypeInvitation || request.ProfileID != profileID {
		return apperrors.NewForbiddenError("Você não pode responder esse convite!")
	}

	return s.consumeRequest(ctx, request, req.Reply == "accept")
}

// ReplyEntryRequest answers an entry request. Only admins of the
// request's project may reply; a denied reply leaves the row untouched.
func (s *projectServiceImpl) ReplyEntryRequest(ctx context.Context, profileID int64, req *dto.ReplyRequest) error {
	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}

	if request.Type != models.RequestTypeEntryRequest {
		return apperrors.NewNotFoundError(apperrors.ErrRequestNotFound, "Dados inválidos!")
	}
	if _, err := s.requireAdmin(ctx, request.ProjectID, profileID); err != nil {
		return err
	}

	return s.consumeRequest(ctx, request, req.Reply == "accept")
}

// consumeRequest deletes the request row and, on accept, creates the
// membership in the same transaction
func (s *projectServiceImpl) consumeRequest(ctx context.Context, request *models.ProjectRequest, accept bool) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reply transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if accept {
		_, err := s.projectRepo.CreateMember(ctx, tx, &models.ProjectMember{
			ProjectID: request.ProjectID,
			ProfileID: request.ProfileID,
			Role:      models.RoleMember,
		})
		if err != nil && !apperrors.Is(err, apperrors.ErrAlreadyMember) {
			return err
		}
	}

	if err := s.requestRepo.Delete(ctx, tx, request.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reply transaction: %w", err)
	}

	return nil
}

// RemoveUsers removes members from the project. Admin only.
func (s *projectServiceImpl) RemoveUsers(ctx context.Context, profileID, projectID int64, usernames []string) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.requireAdmin(ctx, projectID, profileID); err != nil {
		return err
	}

	for _, username := range usernames {
		profile, err := s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
		if err != nil {
			if apperrors.Is(err, apperrors.ErrProfileNotFound) {
				return apperrors.NewNotFoundError(err, "Usuário não encontrado")
			}
			return err
		}

		err = s.projectRepo.DeleteMember(ctx, projectID, profile.ID)
		if err != nil && !apperrors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
	}

	return nil
}

// LeaveProject removes the requester's own membership
func (s *projectServiceImpl) LeaveProject(ctx context.Context, profileID, projectID int64) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.requireMember(ctx, projectID, profileID); err != nil {
		return err
	}

	return s.projectRepo.DeleteMember(ctx, projectID, profileID)
}

// StarProject stars a project once per profile. The duplicate comes back
// from the unique constraint, not a pre-check.
func (s *projectServiceImpl) StarProject(ctx context.Context, profileID, projectID int64) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}

	_, err := s.projectRepo.CreateStar(ctx, projectID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyStarred) {
			return apperrors.NewBadRequestError("Você não pode curtir o mesmo projeto mais de uma vez!")
		}
		return err
	}

	return nil
}

// UnstarProject removes the requester's star
func (s *projectServiceImpl) UnstarProject(ctx context.Context, profileID, projectID int64) error {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return err
	}

	err := s.projectRepo.DeleteStar(ctx, projectID, profileID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStarNotFound) {
			return apperrors.NewNotFoundError(err, "Curtida não encontrada!")
		}
		return err
	}

	return nil
}

// CreateLink adds an external link to the project. Members only.
func (s *projectServiceImpl) CreateLink(ctx context.Context, profileID, projectID int64, req *dto.CreateProjectLinkRequest) (*models.ProjectLink, error) {
	if _, err := s.getProject(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, projectID, profileID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	href := strings.TrimSpace(req.Href)

	if name == "" || href == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(name, MaxLinkNameLength) || exceedsLimit(href, MaxLinkHrefLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	link := &models.ProjectLink{
		ProjectID: projectID,
		Name:      name,
		Href:      href,
		IsPublic:  req.IsPublic,
	}
	id, err := s.projectRepo.CreateLink(ctx, link)
	if err != nil {
		return nil, err
	}
	link.ID = id

	return link, nil
}

// DeleteLink removes a project link. Members of the owning project only.
func (s *projectServiceImpl) DeleteLink(ctx context.Context, profileID, linkID int64) error {
	link, err := s.projectRepo.GetLinkByID(ctx, linkID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrLinkNotFound) {
			return apperrors.NewNotFoundError(err, "Link não encontrado!")
		}
		return err
	}

	if _, err := s.requireMember(ctx, link.ProjectID, profileID); err != nil {
		return err
	}

	return s.projectRepo.DeleteLink(ctx, linkID)
}
