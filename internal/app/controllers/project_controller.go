package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/services"
	"github.com/unilink/unilink/internal/middleware"
)

// ProjectController handles project, membership workflow, star and link
// operations
type ProjectController struct {
	projectService services.ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		logger:         logger,
	}
}

// GetMarketsNameList returns all markets
// @Summary List markets
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NameResponse
// @Router /api/projects/get-markets-name-list [get]
func (c *ProjectController) GetMarketsNameList(ctx *gin.Context) {
	markets, err := c.projectService.GetMarketsNameList(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, markets)
}

// GetProjectsList returns the newest projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProjectBasicResponse
// @Router /api/projects/get-projects-list [get]
func (c *ProjectController) GetProjectsList(ctx *gin.Context) {
	projects, err := c.projectService.GetProjectsList(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetFilteredProjectsList returns projects matching category/market filters
// @Summary List filtered projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param categories query string false "Semicolon-separated category values"
// @Param markets query string false "Semicolon-separated market names"
// @Success 200 {array} dto.ProjectBasicResponse
// @Router /api/projects/get-filtered-projects-list [get]
func (c *ProjectController) GetFilteredProjectsList(ctx *gin.Context) {
	projects, err := c.projectService.GetFilteredProjectsList(
		ctx.Request.Context(),
		splitFilter(ctx.Query("categories")),
		splitFilter(ctx.Query("markets")),
	)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetProjectsCategoriesList returns the category values with labels
// @Summary List project categories
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CategoryChoice
// @Router /api/projects/get-projects-categories-list [get]
func (c *ProjectController) GetProjectsCategoriesList(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.projectService.GetProjectCategoriesList())
}

// CreateProject creates a project with the requester as admin
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {string} string "Somente universitários podem criar projetos!"
// @Router /api/projects/create-project [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	project, err := c.projectService.CreateProject(
		ctx.Request.Context(),
		middleware.GetProfileID(ctx),
		middleware.GetProfileType(ctx),
		&req,
	)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// GetProject returns one project
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {string} string "Projeto não encontrado"
// @Router /api/projects/get-project/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	project, err := c.projectService.GetProject(ctx.Request.Context(), projectID, middleware.GetProfileID(ctx))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// EditProject updates a project's fields. Admin only.
// @Summary Edit a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.EditProjectRequest true "Project fields"
// @Success 200 {object} dto.ProjectResponse
// @Failure 401 {string} string "Você não é um administrador do projeto!"
// @Router /api/projects/edit-project/{id} [put]
func (c *ProjectController) EditProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EditProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}

	project, err := c.projectService.EditProject(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// EditProjectDescription replaces the description blob. Admin only.
// @Summary Edit a project description
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.EditDescriptionRequest true "Description"
// @Success 200 {string} string "success"
// @Router /api/projects/edit-project-description/{id} [put]
func (c *ProjectController) EditProjectDescription(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EditDescriptionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.projectService.EditDescription(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, req.Description)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// InviteUsersToProject opens invitations. Admin only.
// @Summary Invite users to a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.InviteUsersRequest true "Usernames"
// @Success 200 {string} string "success"
// @Router /api/projects/invite-users-to-project/{id} [post]
func (c *ProjectController) InviteUsersToProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InviteUsersRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.projectService.InviteUsers(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, req.Usernames)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// UninviteUsersFromProject withdraws pending invitations. Admin only.
// @Summary Uninvite users from a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.InviteUsersRequest true "Usernames"
// @Success 200 {string} string "success"
// @Router /api/projects/uninvite-users-from-project/{id} [delete]
func (c *ProjectController) UninviteUsersFromProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.InviteUsersRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.projectService.UninviteUsers(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, req.Usernames)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// AskToJoinProject opens an entry request
// @Summary Ask to join a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.AskToJoinRequest true "Message"
// @Success 200 {string} string "success"
// @Failure 400 {string} string "Você já pediu para entrar no projeto!"
// @Router /api/projects/ask-to-join-project/{id} [post]
func (c *ProjectController) AskToJoinProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AskToJoinRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.projectService.AskToJoin(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, req.Message)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// ReplyProjectInvitation answers an invitation addressed to the requester
// @Summary Reply to a project invitation
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReplyRequest true "Request ID and reply"
// @Success 200 {string} string "success"
// @Router /api/projects/reply-project-invitation [post]
func (c *ProjectController) ReplyProjectInvitation(ctx *gin.Context) {
	var req dto.ReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.projectService.ReplyInvitation(ctx.Request.Context(), middleware.GetProfileID(ctx), &req); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// ReplyProjectEnteringRequest answers an entry request. Admin only.
// @Summary Reply to an entry request
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReplyRequest true "Request ID and reply"
// @Success 200 {string} string "success"
// @Failure 401 {string} string "Você não é um administrador do projeto!"
// @Router /api/projects/reply-project-entering-request [post]
func (c *ProjectController) ReplyProjectEnteringRequest(ctx *gin.Context) {
	var req dto.ReplyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.projectService.ReplyEntryRequest(ctx.Request.Context(), middleware.GetProfileID(ctx), &req); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// RemoveUsersFromProject removes members. Admin only.
// @Summary Remove users from a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.RemoveUsersRequest true "Usernames"
// @Success 200 {string} string "success"
// @Router /api/projects/remove-users-from-project/{id} [delete]
func (c *ProjectController) RemoveUsersFromProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RemoveUsersRequest
	if !bindJSON(ctx, &req) {
		return
	}

	err := c.projectService.RemoveUsers(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, req.Usernames)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// LeaveProject removes the requester's own membership
// @Summary Leave a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {string} string "success"
// @Router /api/projects/leave-project/{id} [delete]
func (c *ProjectController) LeaveProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.LeaveProject(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// StarProject stars a project
// @Summary Star a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {string} string "success"
// @Failure 400 {string} string "Você não pode curtir o mesmo projeto mais de uma vez!"
// @Router /api/projects/star-project/{id} [post]
func (c *ProjectController) StarProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.StarProject(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// UnstarProject removes the requester's star
// @Summary Unstar a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {string} string "success"
// @Failure 404 {string} string "Curtida não encontrada!"
// @Router /api/projects/unstar-project/{id} [delete]
func (c *ProjectController) UnstarProject(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.UnstarProject(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// CreateProjectLink adds a link to a project. Members only.
// @Summary Create a project link
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateProjectLinkRequest true "Link"
// @Success 200 {object} models.ProjectLink
// @Router /api/projects/create-link/{id} [post]
func (c *ProjectController) CreateProjectLink(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateProjectLinkRequest
	if !bindJSON(ctx, &req) {
		return
	}

	link, err := c.projectService.CreateLink(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, link)
}

// DeleteProjectLink removes a project link. Members only.
// @Summary Delete a project link
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param linkID path int true "Link ID"
// @Success 200 {string} string "success"
// @Failure 404 {string} string "Link não encontrado!"
// @Router /api/projects/delete-link/{linkID} [delete]
func (c *ProjectController) DeleteProjectLink(ctx *gin.Context) {
	linkID, ok := parseIDParam(ctx, "linkID")
	if !ok {
		return
	}

	if err := c.projectService.DeleteLink(ctx.Request.Context(), middleware.GetProfileID(ctx), linkID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}
