package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/services"
	"github.com/unilink/unilink/internal/middleware"
)

// ProfileController handles profile, directory, link and notification
// operations
type ProfileController struct {
	profileService      services.ProfileService
	notificationService services.NotificationService
	logger              zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(
	profileService services.ProfileService,
	notificationService services.NotificationService,
	logger zerolog.Logger,
) *ProfileController {
	return &ProfileController{
		profileService:      profileService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// splitFilter splits a semicolon-separated query value, dropping empties
func splitFilter(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// GetMyProfile returns the authenticated profile
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {string} string "Você precisa logar para acessar essa rota"
// @Router /api/profiles/get-my-profile [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetMyProfile(ctx.Request.Context(), middleware.GetProfileID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetProfile returns a profile by username
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Username"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {string} string "Usuário não encontrado"
// @Router /api/profiles/get-profile/{slug} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetProfileByUsername(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetProfileProjects returns the projects a profile belongs to
// @Summary Get a profile's projects
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Username"
// @Success 200 {array} dto.ProjectBasicResponse
// @Failure 404 {string} string "Usuário não encontrado"
// @Router /api/profiles/get-profile-projects/{slug} [get]
func (c *ProfileController) GetProfileProjects(ctx *gin.Context) {
	projects, err := c.profileService.GetProfileProjects(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// EditMyProfile updates the authenticated profile
// @Summary Edit own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EditProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {string} string "Todos os campos devem ser preenchidos!"
// @Router /api/profiles/edit-my-profile [put]
func (c *ProfileController) EditMyProfile(ctx *gin.Context) {
	var req dto.EditProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.EditProfile(ctx.Request.Context(), middleware.GetProfileID(ctx), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetFilteredProfiles searches profiles by username fragment
// @Summary Search profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param query path string true "Username fragment"
// @Success 200 {array} dto.ProfileBasicResponse
// @Router /api/profiles/get-filtered-profiles/{query} [get]
func (c *ProfileController) GetFilteredProfiles(ctx *gin.Context) {
	profiles, err := c.profileService.SearchProfiles(ctx.Request.Context(), ctx.Param("query"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profiles)
}

// GetProfileList returns the filtered profile directory
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param universities query string false "Semicolon-separated university names"
// @Param majors query string false "Semicolon-separated major names"
// @Param skills query string false "Semicolon-separated skill names"
// @Param length query int false "Page length"
// @Success 200 {object} dto.ProfileListResponse
// @Router /api/profiles/get-profile-list [get]
func (c *ProfileController) GetProfileList(ctx *gin.Context) {
	length, _ := strconv.Atoi(ctx.Query("length"))
	filter := &dto.ProfileListFilter{
		Length:       length,
		Universities: splitFilter(ctx.Query("universities")),
		Majors:       splitFilter(ctx.Query("majors")),
		Skills:       splitFilter(ctx.Query("skills")),
	}

	list, err := c.profileService.ListProfiles(ctx.Request.Context(), filter)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// GetSkillsNameList returns all skills
// @Summary List skills
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NameResponse
// @Router /api/profiles/get-skills-name-list [get]
func (c *ProfileController) GetSkillsNameList(ctx *gin.Context) {
	skills, err := c.profileService.GetSkillsNameList(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, skills)
}

// CreateLink adds an external link to the authenticated profile
// @Summary Create a profile link
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLinkRequest true "Link"
// @Success 200 {object} models.Link
// @Failure 400 {string} string "Todos os campos devem ser preenchidos!"
// @Router /api/profiles/create-link [post]
func (c *ProfileController) CreateLink(ctx *gin.Context) {
	var req dto.CreateLinkRequest
	if !bindJSON(ctx, &req) {
		return
	}

	link, err := c.profileService.CreateLink(ctx.Request.Context(), middleware.GetProfileID(ctx), &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, link)
}

// DeleteLink removes one of the authenticated profile's links
// @Summary Delete a profile link
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Link ID"
// @Success 200 {string} string "success"
// @Failure 401 {string} string "O link não é seu!"
// @Failure 404 {string} string "Link não encontrado!"
// @Router /api/profiles/delete-link/{id} [delete]
func (c *ProfileController) DeleteLink(ctx *gin.Context) {
	linkID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.profileService.DeleteLink(ctx.Request.Context(), middleware.GetProfileID(ctx), linkID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// GetNotifications returns the aggregated notification feed
// @Summary Get notifications
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationsResponse
// @Router /api/profiles/get-notifications [get]
func (c *ProfileController) GetNotifications(ctx *gin.Context) {
	notifications, err := c.notificationService.GetNotifications(ctx.Request.Context(), middleware.GetProfileID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

// GetNotificationsNumber returns the badge count
// @Summary Get notification count
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {integer} int64
// @Router /api/profiles/get-notifications-number [get]
func (c *ProfileController) GetNotificationsNumber(ctx *gin.Context) {
	count, err := c.notificationService.GetNotificationsNumber(ctx.Request.Context(), middleware.GetProfileID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, count)
}

// VisualizeNotifications marks all pending notifications as seen
// @Summary Visualize notifications
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string "success"
// @Router /api/profiles/visualize-notifications [patch]
func (c *ProfileController) VisualizeNotifications(ctx *gin.Context) {
	if err := c.notificationService.VisualizeNotifications(ctx.Request.Context(), middleware.GetProfileID(ctx)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}
