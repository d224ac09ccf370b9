package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/services"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles credential authentication
// @Summary Obtain a token pair
// @Description Authenticates username+password and returns an access JWT with a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {string} string "Dados inválidos!"
// @Failure 401 {string} string "Usuário ou senha inválidos!"
// @Router /token/ [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// Refresh rotates a refresh token
// @Summary Refresh the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {string} string "Token inválido!"
// @Router /token/refresh/ [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.Refresh)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// Logout revokes a refresh token
// @Summary Log out
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token to revoke"
// @Success 200 {string} string "success"
// @Failure 401 {string} string "Token inválido!"
// @Router /token/logout/ [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.Refresh); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// Signup registers a new student or mentor account
// @Summary Sign up
// @Description Creates the user, its profile and the role record in one transaction
// @Tags profiles
// @Accept json
// @Produce json
// @Param type path string true "Profile type" Enums(student, mentor)
// @Param request body dto.SignupRequest true "Signup data"
// @Success 200 {string} string "success"
// @Failure 400 {string} string "Todos os campos devem ser preenchidos!"
// @Router /api/profiles/{type}/post-signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	profileType := models.ProfileType(ctx.Param("type"))
	if !profileType.IsValid() {
		ctx.JSON(http.StatusBadRequest, "Dados inválidos!")
		return
	}

	var req dto.SignupRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Signup(ctx.Request.Context(), profileType, &req); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}
