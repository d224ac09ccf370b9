package dto

import "github.com/unilink/unilink/internal/app/models"

// CreateProjectRequest is the payload for POST /api/projects/create-project
type CreateProjectRequest struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Slogan   string   `json:"slogan"`
	Markets  []string `json:"markets"`
}

// EditProjectRequest is the payload for PUT /api/projects/edit-project/{id}
type EditProjectRequest struct {
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Slogan   string   `json:"slogan"`
	ImageURL *string  `json:"image"`
	Markets  []string `json:"markets"`
}

// EditDescriptionRequest is the payload for PUT /api/projects/edit-project-description/{id}
type EditDescriptionRequest struct {
	Description string `json:"description"`
}

// InviteUsersRequest carries the usernames to invite or uninvite
type InviteUsersRequest struct {
	Usernames []string `json:"usernames"`
}

// RemoveUsersRequest carries the usernames to remove from a project
type RemoveUsersRequest struct {
	Usernames []string `json:"usernames"`
}

// AskToJoinRequest is the payload for POST /api/projects/ask-to-join-project/{id}
type AskToJoinRequest struct {
	Message string `json:"message"`
}

// ReplyRequest answers a pending invitation or entry request.
// Reply is "accept" or "decline".
type ReplyRequest struct {
	RequestID int64  `json:"request_id"`
	Reply     string `json:"reply"`
}

// CreateProjectLinkRequest is the payload for POST /api/projects/create-link/{id}
type CreateProjectLinkRequest struct {
	Name     string `json:"name"`
	Href     string `json:"href"`
	IsPublic bool   `json:"is_public"`
}

// CreateDiscussionRequest is the payload for POST /api/projects/create-project-discussion/{id}
type CreateDiscussionRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

// DeleteDiscussionRequest identifies the discussion to delete
type DeleteDiscussionRequest struct {
	DiscussionID int64 `json:"discussion_id"`
}

// ReplyDiscussionRequest is the payload for POST /api/projects/reply-discussion/{id}
type ReplyDiscussionRequest struct {
	Content string `json:"content"`
}

// ProjectMemberResponse is a membership row with its profile
type ProjectMemberResponse struct {
	Profile ProfileBasicResponse `json:"profile"`
	Role    models.MemberRole    `json:"role"`
}

// ProjectRequestResponse is a pending invitation or entry request
type ProjectRequestResponse struct {
	ID      int64                 `json:"id"`
	Type    models.RequestType    `json:"type"`
	Message string                `json:"message"`
	Profile ProfileBasicResponse  `json:"profile"`
	Project ProjectBasicResponse  `json:"project"`
}

// ProjectBasicResponse is the compact project representation
type ProjectBasicResponse struct {
	ID       int64                 `json:"id"`
	Name     string                `json:"name"`
	Slogan   string                `json:"slogan"`
	Image    string                `json:"image"`
	Category models.CategoryChoice `json:"category"`
}

// ProjectResponse is the full project representation
type ProjectResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Slogan      string                   `json:"slogan"`
	Description string                   `json:"description"`
	Image       string                   `json:"image"`
	Category    models.CategoryChoice    `json:"category"`
	Markets     []models.Market          `json:"markets"`
	Members     []ProjectMemberResponse  `json:"members"`
	Requests    []ProjectRequestResponse `json:"requests,omitempty"`
	Links       []models.ProjectLink     `json:"links"`
	StarCount   int64                    `json:"starCount"`
	CreatedAt   string                   `json:"createdAt"`
}

// DiscussionResponse is a discussion with its star/reply children
type DiscussionResponse struct {
	ID        int64                    `json:"id"`
	Title     string                   `json:"title"`
	Body      string                   `json:"body"`
	Category  models.CategoryChoice    `json:"category"`
	Profile   ProfileBasicResponse     `json:"profile"`
	ProjectID int64                    `json:"projectId"`
	Stars     []DiscussionStarResponse `json:"stars"`
	Replies   []DiscussionReplyResponse `json:"replies"`
	CreatedAt string                   `json:"createdAt"`
}

// DiscussionStarResponse is a star with its author
type DiscussionStarResponse struct {
	ID         int64                `json:"id"`
	Profile    ProfileBasicResponse `json:"profile"`
	Visualized bool                 `json:"visualized"`
	CreatedAt  string               `json:"createdAt"`
}

// DiscussionReplyResponse is a reply with its author
type DiscussionReplyResponse struct {
	ID         int64                `json:"id"`
	Content    string               `json:"content"`
	Profile    ProfileBasicResponse `json:"profile"`
	Visualized bool                 `json:"visualized"`
	CreatedAt  string               `json:"createdAt"`
}
