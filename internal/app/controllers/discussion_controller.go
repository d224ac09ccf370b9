package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/services"
	"github.com/unilink/unilink/internal/middleware"
)

// DiscussionController handles discussion, star and reply operations.
// Routes live under the projects prefix.
type DiscussionController struct {
	discussionService services.DiscussionService
	logger            zerolog.Logger
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService services.DiscussionService, logger zerolog.Logger) *DiscussionController {
	return &DiscussionController{
		discussionService: discussionService,
		logger:            logger,
	}
}

// CreateProjectDiscussion opens a discussion on a project. Members only.
// @Summary Create a discussion
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateDiscussionRequest true "Discussion"
// @Success 200 {object} dto.DiscussionResponse
// @Failure 401 {string} string "Você não faz parte do projeto!"
// @Router /api/projects/create-project-discussion/{id} [post]
func (c *DiscussionController) CreateProjectDiscussion(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateDiscussionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	discussion, err := c.discussionService.CreateDiscussion(ctx.Request.Context(), middleware.GetProfileID(ctx), projectID, &req)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, discussion)
}

// GetProjectDiscussions returns a project's discussions
// @Summary List a project's discussions
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {array} dto.DiscussionResponse
// @Router /api/projects/get-project-discussions/{id} [get]
func (c *DiscussionController) GetProjectDiscussions(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	discussions, err := c.discussionService.GetProjectDiscussions(ctx.Request.Context(), projectID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, discussions)
}

// GetProjectDiscussion returns one discussion with stars and replies
// @Summary Get a discussion
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param discussionID path int true "Discussion ID"
// @Success 200 {object} dto.DiscussionResponse
// @Failure 404 {string} string "Discussão não encontrada!"
// @Router /api/projects/get-project-discussion/{discussionID} [get]
func (c *DiscussionController) GetProjectDiscussion(ctx *gin.Context) {
	discussionID, ok := parseIDParam(ctx, "discussionID")
	if !ok {
		return
	}

	discussion, err := c.discussionService.GetDiscussion(ctx.Request.Context(), discussionID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, discussion)
}

// DeleteProjectDiscussion removes a discussion. Owner only.
// @Summary Delete a discussion
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param discussionID path int true "Discussion ID"
// @Success 200 {string} string "success"
// @Failure 401 {string} string "A discussão não é sua!"
// @Router /api/projects/delete-project-discussion/{discussionID} [delete]
func (c *DiscussionController) DeleteProjectDiscussion(ctx *gin.Context) {
	discussionID, ok := parseIDParam(ctx, "discussionID")
	if !ok {
		return
	}

	if err := c.discussionService.DeleteDiscussion(ctx.Request.Context(), middleware.GetProfileID(ctx), discussionID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// StarDiscussion stars a discussion
// @Summary Star a discussion
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Success 200 {string} string "success"
// @Failure 400 {string} string "Você não pode curtir a mesma discussão mais de uma vez!"
// @Router /api/projects/star-discussion/{id} [post]
func (c *DiscussionController) StarDiscussion(ctx *gin.Context) {
	discussionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.discussionService.StarDiscussion(ctx.Request.Context(), middleware.GetProfileID(ctx), discussionID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// UnstarDiscussion removes the requester's star
// @Summary Unstar a discussion
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Success 200 {string} string "success"
// @Failure 404 {string} string "Curtida não encontrada!"
// @Router /api/projects/unstar-discussion/{id} [delete]
func (c *DiscussionController) UnstarDiscussion(ctx *gin.Context) {
	discussionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.discussionService.UnstarDiscussion(ctx.Request.Context(), middleware.GetProfileID(ctx), discussionID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}

// ReplyDiscussion adds a reply to a discussion
// @Summary Reply to a discussion
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param request body dto.ReplyDiscussionRequest true "Reply"
// @Success 200 {object} dto.DiscussionReplyResponse
// @Failure 400 {string} string "O comentário não pode ter menos de 3 caracteres!"
// @Router /api/projects/reply-discussion/{id} [post]
func (c *DiscussionController) ReplyDiscussion(ctx *gin.Context) {
	discussionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReplyDiscussionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	reply, err := c.discussionService.ReplyDiscussion(ctx.Request.Context(), middleware.GetProfileID(ctx), discussionID, req.Content)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reply)
}

// DeleteDiscussionReply removes a reply. Owner only.
// @Summary Delete a discussion reply
// @Tags discussions
// @Produce json
// @Security BearerAuth
// @Param replyID path int true "Reply ID"
// @Success 200 {string} string "success"
// @Failure 401 {string} string "O comentário não é seu!"
// @Failure 404 {string} string "Comentário não encontrado!"
// @Router /api/projects/delete-discussion-reply/{replyID} [delete]
func (c *DiscussionController) DeleteDiscussionReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "replyID")
	if !ok {
		return
	}

	if err := c.discussionService.DeleteReply(ctx.Request.Context(), middleware.GetProfileID(ctx), replyID); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success)
}
