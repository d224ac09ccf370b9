package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unilink/unilink/internal/app/controllers"
	"github.com/unilink/unilink/internal/middleware"
	"github.com/unilink/unilink/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	projectController *controllers.ProjectController,
	discussionController *controllers.DiscussionController,
	chatController *controllers.ChatController,
	universityController *controllers.UniversityController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public token routes ---
	token := router.Group("/token")
	{
		token.POST("/", authController.Login)
		token.POST("/refresh/", authController.Refresh)
		token.POST("/logout/", authController.Logout)
	}

	api := router.Group("/api")

	// Signup is the only public profiles route
	api.POST("/profiles/:type/post-signup", authController.Signup)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/get-my-profile", profileController.GetMyProfile)
			profiles.GET("/get-profile/:slug", profileController.GetProfile)
			profiles.GET("/get-profile-projects/:slug", profileController.GetProfileProjects)
			profiles.PUT("/edit-my-profile", profileController.EditMyProfile)
			profiles.GET("/get-filtered-profiles/:query", profileController.GetFilteredProfiles)
			profiles.GET("/get-profile-list", profileController.GetProfileList)
			profiles.GET("/get-skills-name-list", profileController.GetSkillsNameList)
			profiles.POST("/create-link", profileController.CreateLink)
			profiles.DELETE("/delete-link/:id", profileController.DeleteLink)
			profiles.GET("/get-notifications", profileController.GetNotifications)
			profiles.GET("/get-notifications-number", profileController.GetNotificationsNumber)
			profiles.PATCH("/visualize-notifications", profileController.VisualizeNotifications)
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("/get-markets-name-list", projectController.GetMarketsNameList)
			projects.GET("/get-projects-list", projectController.GetProjectsList)
			projects.GET("/get-filtered-projects-list", projectController.GetFilteredProjectsList)
			projects.GET("/get-projects-categories-list", projectController.GetProjectsCategoriesList)
			projects.POST("/create-project", projectController.CreateProject)
			projects.GET("/get-project/:id", projectController.GetProject)
			projects.PUT("/edit-project/:id", projectController.EditProject)
			projects.PUT("/edit-project-description/:id", projectController.EditProjectDescription)
			projects.POST("/invite-users-to-project/:id", projectController.InviteUsersToProject)
			projects.DELETE("/uninvite-users-from-project/:id", projectController.UninviteUsersFromProject)
			projects.POST("/ask-to-join-project/:id", projectController.AskToJoinProject)
			projects.POST("/reply-project-invitation", projectController.ReplyProjectInvitation)
			projects.POST("/reply-project-entering-request", projectController.ReplyProjectEnteringRequest)
			projects.DELETE("/remove-users-from-project/:id", projectController.RemoveUsersFromProject)
			projects.DELETE("/leave-project/:id", projectController.LeaveProject)
			projects.POST("/star-project/:id", projectController.StarProject)
			projects.DELETE("/unstar-project/:id", projectController.UnstarProject)
			projects.POST("/create-link/:id", projectController.CreateProjectLink)
			projects.DELETE("/delete-link/:linkID", projectController.DeleteProjectLink)

			// Discussions live under the projects prefix
			projects.POST("/create-project-discussion/:id", discussionController.CreateProjectDiscussion)
			projects.GET("/get-project-discussions/:id", discussionController.GetProjectDiscussions)
			projects.GET("/get-project-discussion/:discussionID", discussionController.GetProjectDiscussion)
			projects.DELETE("/delete-project-discussion/:discussionID", discussionController.DeleteProjectDiscussion)
			projects.POST("/star-discussion/:id", discussionController.StarDiscussion)
			projects.DELETE("/unstar-discussion/:id", discussionController.UnstarDiscussion)
			projects.POST("/reply-discussion/:id", discussionController.ReplyDiscussion)
			projects.DELETE("/delete-discussion-reply/:replyID", discussionController.DeleteDiscussionReply)
		}

		chats := authenticated.Group("/chats")
		{
			chats.GET("/get-chats-list", chatController.GetChatsList)
			chats.GET("/get-chat-messages/:chatID", chatController.GetChatMessages)
			chats.POST("/create-message/:chatID", chatController.CreateMessage)
			chats.PATCH("/visualize-chat-messages/:chatID", chatController.VisualizeChatMessages)
			chats.POST("/create-chat", chatController.CreateChat)
			chats.GET("/ws/:chatID", wsHandler.HandleConnection)
		}

		universities := authenticated.Group("/universities")
		{
			universities.GET("/get-universities-name-list", universityController.GetUniversitiesNameList)
			universities.GET("/get-majors-name-list", universityController.GetMajorsNameList)
		}
	}

	// Health check endpoint (public)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, "Rota não encontrada!")
	})
}
