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

// Caps for the profile directory endpoints
const (
	MaxFilteredProfiles   = 15
	DefaultProfileListLen = 15

	MaxLinkNameLength = 100
	MaxLinkHrefLength = 1000
)

// ProfileService defines the interface for profile operations
type ProfileService interface {
	GetMyProfile(ctx context.Context, profileID int64) (*dto.ProfileResponse, error)
	GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error)
	GetProfileProjects(ctx context.Context, username string) ([]dto.ProjectBasicResponse, error)
	EditProfile(ctx context.Context, profileID int64, req *dto.EditProfileRequest) (*dto.ProfileResponse, error)
	SearchProfiles(ctx context.Context, query string) ([]dto.ProfileBasicResponse, error)
	ListProfiles(ctx context.Context, filter *dto.ProfileListFilter) (*dto.ProfileListResponse, error)
	GetSkillsNameList(ctx context.Context) ([]dto.NameResponse, error)
	CreateLink(ctx context.Context, profileID int64, req *dto.CreateLinkRequest) (*models.Link, error)
	DeleteLink(ctx context.Context, profileID, linkID int64) error
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	db            *pgxpool.Pool
	profileRepo   *repositories.ProfileRepository
	userRepo      *repositories.UserRepository
	referenceRepo *repositories.ReferenceRepository
	projectRepo   *repositories.ProjectRepository
	logger        zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	db *pgxpool.Pool,
	profileRepo *repositories.ProfileRepository,
	userRepo *repositories.UserRepository,
	referenceRepo *repositories.ReferenceRepository,
	projectRepo *repositories.ProjectRepository,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		db:            db,
		profileRepo:   profileRepo,
		userRepo:      userRepo,
		referenceRepo: referenceRepo,
		projectRepo:   projectRepo,
		logger:        logger,
	}
}

// GetMyProfile retrieves the requester's own profile
func (s *profileServiceImpl) GetMyProfile(ctx context.Context, profileID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// GetProfileByUsername retrieves a profile by its username slug
func (s *profileServiceImpl) GetProfileByUsername(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Usuário não encontrado")
		}
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// GetProfileProjects retrieves the projects a profile belongs to
func (s *profileServiceImpl) GetProfileProjects(ctx context.Context, username string) ([]dto.ProjectBasicResponse, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError(err, "Usuário não encontrado")
		}
		return nil, err
	}

	projects, err := s.projectRepo.ListByMember(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProjectBasicResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, toProjectBasic(&projects[i]))
	}

	return responses, nil
}

// EditProfile updates the requester's profile, applying the same rules as
// signup for the shared fields
func (s *profileServiceImpl) EditProfile(ctx context.Context, profileID int64, req *dto.EditProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	username := normalizeUsername(req.Username)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if username == "" || firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(username, MaxUsernameLength) || exceedsLimit(firstName, MaxFirstNameLength) || exceedsLimit(lastName, MaxLastNameLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username, profile.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError(apperrors.ErrUsernameAlreadyExists, "Nome de usuário já utilizado!")
	}

	skills, err := s.referenceRepo.FindSkillsByNames(ctx, req.SkillsNames)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, apperrors.NewValidationError("Selecione pelo menos uma habilidade válida!")
	}

	var universityID, majorID *int64
	if profile.Type == models.ProfileTypeStudent && req.IsAttendingUniversity {
		university, err := s.referenceRepo.FindUniversityByName(ctx, req.UniversityName)
		if err != nil {
			return nil, err
		}
		if university == nil {
			return nil, apperrors.NewValidationError("Universidade inválida!")
		}
		universityID = &university.ID

		major, err := s.referenceRepo.FindMajorByName(ctx, req.MajorName)
		if err != nil {
			return nil, err
		}
		if major == nil {
			return nil, apperrors.NewValidationError("Curso inválido!")
		}
		majorID = &major.ID
	}

	profile.FirstName = firstName
	profile.LastName = lastName
	profile.Bio = req.Bio
	profile.LinkedIn = req.LinkedIn
	if req.PhotoURL != nil {
		profile.PhotoURL = *req.PhotoURL
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin edit profile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if username != profile.Username {
		if err := s.userRepo.UpdateUsername(ctx, tx, profile.UserID, username); err != nil {
			if apperrors.Is(err, apperrors.ErrUsernameAlreadyExists) {
				return nil, apperrors.NewConflictError(err, "Nome de usuário já utilizado!")
			}
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, tx, profile); err != nil {
		return nil, err
	}

	skillIDs := make([]int64, 0, len(skills))
	for _, skill := range skills {
		skillIDs = append(skillIDs, skill.ID)
	}
	if err := s.profileRepo.SetSkills(ctx, tx, profile.ID, skillIDs); err != nil {
		return nil, err
	}

	if profile.Type == models.ProfileTypeStudent {
		if err := s.profileRepo.UpdateStudentAffiliation(ctx, tx, profile.ID, universityID, majorID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit edit profile transaction: %w", err)
	}

	updated, err := s.profileRepo.GetByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return toProfileResponse(updated), nil
}

// SearchProfiles retrieves profiles whose username contains query
func (s *profileServiceImpl) SearchProfiles(ctx context.Context, query string) ([]dto.ProfileBasicResponse, error) {
	profiles, err := s.profileRepo.SearchByUsername(ctx, strings.ToLower(strings.TrimSpace(query)), MaxFilteredProfiles)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProfileBasicResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, toProfileBasic(&profiles[i]))
	}

	return responses, nil
}

// ListProfiles retrieves a filtered directory page. IsAll reports whether
// the page already holds every match.
func (s *profileServiceImpl) ListProfiles(ctx context.Context, filter *dto.ProfileListFilter) (*dto.ProfileListResponse, error) {
	if filter.Length <= 0 {
		filter.Length = DefaultProfileListLen
	}

	profiles, total, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProfileBasicResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, toProfileBasic(&profiles[i]))
	}

	return &dto.ProfileListResponse{
		IsAll:    int64(len(responses)) >= total,
		Profiles: responses,
	}, nil
}

// GetSkillsNameList retrieves all skills as id+name pairs
func (s *profileServiceImpl) GetSkillsNameList(ctx context.Context) ([]dto.NameResponse, error) {
	skills, err := s.referenceRepo.GetSkills(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]dto.NameResponse, 0, len(skills))
	for _, skill := range skills {
		names = append(names, dto.NameResponse{ID: skill.ID, Name: skill.Name})
	}

	return names, nil
}

// CreateLink adds an external link to the requester's profile
func (s *profileServiceImpl) CreateLink(ctx context.Context, profileID int64, req *dto.CreateLinkRequest) (*models.Link, error) {
	name := strings.TrimSpace(req.Name)
	href := strings.TrimSpace(req.Href)

	if name == "" || href == "" {
		return nil, apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}
	if exceedsLimit(name, MaxLinkNameLength) || exceedsLimit(href, MaxLinkHrefLength) {
		return nil, apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	link := &models.Link{ProfileID: profileID, Name: name, Href: href}
	id, err := s.profileRepo.CreateLink(ctx, link)
	if err != nil {
		return nil, err
	}
	link.ID = id

	return link, nil
}

// DeleteLink removes one of the requester's own links
func (s *profileServiceImpl) DeleteLink(ctx context.Context, profileID, linkID int64) error {
	link, err := s.profileRepo.GetLinkByID(ctx, linkID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrLinkNotFound) {
			return apperrors.NewNotFoundError(err, "Link não encontrado!")
		}
		return err
	}

	if link.ProfileID != profileID {
		return apperrors.NewForbiddenError("O link não é seu!")
	}

	return s.profileRepo.DeleteLink(ctx, linkID)
}
