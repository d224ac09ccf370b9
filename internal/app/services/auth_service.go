package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/auth"
)

// Field limits enforced at signup and profile edit
const (
	MaxUsernameLength  = 25
	MaxEmailLength     = 50
	MaxPasswordLength  = 50
	MaxFirstNameLength = 30
	MaxLastNameLength  = 30
	MinPasswordLength  = 6

	// Age bounds for the birth date sanity check
	MaxAgeYears = 150
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Signup(ctx context.Context, profileType models.ProfileType, req *dto.SignupRequest) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	db            *pgxpool.Pool
	userRepo      *repositories.UserRepository
	profileRepo   *repositories.ProfileRepository
	referenceRepo *repositories.ReferenceRepository
	tokenRepo     *repositories.TokenRepository
	jwtService    *auth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	db *pgxpool.Pool,
	userRepo *repositories.UserRepository,
	profileRepo *repositories.ProfileRepository,
	referenceRepo *repositories.ReferenceRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		db:            db,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		referenceRepo: referenceRepo,
		tokenRepo:     tokenRepo,
		jwtService:    jwtService,
		logger:        logger,
	}
}

// Login authenticates a user and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := normalizeUsername(req.Username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Rotation: the presented token dies with this exchange
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, profile)
}

// Logout revokes the presented refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	err = s.tokenRepo.CreateToken(ctx, refreshToken, profile.UserID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Access:           accessToken,
		Refresh:          refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// Signup registers a user with its profile and role record in one
// transaction. Each failed validation carries its own client message.
func (s *authServiceImpl) Signup(ctx context.Context, profileType models.ProfileType, req *dto.SignupRequest) error {
	username := normalizeUsername(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.validateSignup(ctx, profileType, req, username, email); err != nil {
		return err
	}

	skills, err := s.referenceRepo.FindSkillsByNames(ctx, req.SkillsNames)
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return apperrors.NewValidationError("Selecione pelo menos uma habilidade válida!")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return err
	}

	var universityID, majorID *int64
	if profileType == models.ProfileTypeStudent && req.IsAttendingUniversity {
		university, err := s.referenceRepo.FindUniversityByName(ctx, req.UniversityName)
		if err != nil {
			return err
		}
		if university == nil {
			return apperrors.NewValidationError("Universidade inválida!")
		}
		universityID = &university.ID

		major, err := s.referenceRepo.FindMajorByName(ctx, req.MajorName)
		if err != nil {
			return err
		}
		if major == nil {
			return apperrors.NewValidationError("Curso inválido!")
		}
		majorID = &major.ID
	}

	var markets []models.Market
	if profileType == models.ProfileTypeMentor {
		markets, err = s.referenceRepo.FindMarketsByNames(ctx, req.MarketsNames)
		if err != nil {
			return err
		}
		if len(markets) == 0 {
			return apperrors.NewValidationError("Selecione pelo menos um mercado válido!")
		}
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin signup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := s.userRepo.Create(ctx, tx, &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return apperrors.NewConflictError(err, "Nome de usuário já utilizado!")
		}
		if apperrors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return apperrors.NewConflictError(err, "Email já utilizado!")
		}
		return err
	}

	profileID, err := s.profileRepo.Create(ctx, tx, &models.Profile{
		UserID:    userID,
		Type:      profileType,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Bio:       models.DefaultBio,
		PhotoURL:  models.DefaultPhotoURL,
		BirthDate: &birthDate,
	})
	if err != nil {
		return err
	}

	switch profileType {
	case models.ProfileTypeStudent:
		_, err = s.profileRepo.CreateStudent(ctx, tx, &models.Student{
			ProfileID:    profileID,
			UniversityID: universityID,
			MajorID:      majorID,
		})
		if err != nil {
			return err
		}
	case models.ProfileTypeMentor:
		mentorID, err := s.profileRepo.CreateMentor(ctx, tx, &models.Mentor{ProfileID: profileID})
		if err != nil {
			return err
		}
		marketIDs := make([]int64, 0, len(markets))
		for _, market := range markets {
			marketIDs = append(marketIDs, market.ID)
		}
		if err := s.profileRepo.SetMentorMarkets(ctx, tx, mentorID, marketIDs); err != nil {
			return err
		}
	}

	skillIDs := make([]int64, 0, len(skills))
	for _, skill := range skills {
		skillIDs = append(skillIDs, skill.ID)
	}
	if err := s.profileRepo.SetSkills(ctx, tx, profileID, skillIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit signup transaction: %w", err)
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("profileID", profileID).
		Str("type", string(profileType)).
		Msg("New signup")

	return nil
}

func (s *authServiceImpl) validateSignup(ctx context.Context, profileType models.ProfileType, req *dto.SignupRequest, username, email string) error {
	if username == "" || email == "" || req.Password == "" ||
		strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		req.BirthDate == "" {
		return apperrors.NewValidationError("Todos os campos devem ser preenchidos!")
	}

	if exceedsLimit(username, MaxUsernameLength) || exceedsLimit(email, MaxEmailLength) ||
		exceedsLimit(req.Password, MaxPasswordLength) ||
		exceedsLimit(req.FirstName, MaxFirstNameLength) || exceedsLimit(req.LastName, MaxLastNameLength) {
		return apperrors.NewValidationError("Respeite os limites de caracteres de cada campo!")
	}

	if req.Password != req.PasswordConfirmation {
		return apperrors.NewValidationError("As senhas devem ser iguais!")
	}

	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return apperrors.NewValidationError("A senha deve ter pelo menos 6 caracteres!")
	}

	taken, err := s.userRepo.UsernameExists(ctx, username, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflictError(apperrors.ErrUsernameAlreadyExists, "Nome de usuário já utilizado!")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflictError(apperrors.ErrEmailAlreadyExists, "Email já utilizado!")
	}

	return nil
}

// normalizeUsername lower-cases a username and strips all spaces
func normalizeUsername(username string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(username), " ", ""))
}

// exceedsLimit reports whether value has more than max characters. Field
// limits count runes, so accented input is not penalized.
func exceedsLimit(value string, max int) bool {
	return utf8.RuneCountInString(value) > max
}

// parseBirthDate parses an ISO date and checks the age is plausible
func parseBirthDate(value string) (time.Time, error) {
	birthDate, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Data de nascimento inválida!")
	}

	now := time.Now()
	if !birthDate.Before(now) || birthDate.Before(now.AddDate(-MaxAgeYears, 0, 0)) {
		return time.Time{}, apperrors.NewValidationError("Data de nascimento inválida!")
	}

	return birthDate, nil
}
