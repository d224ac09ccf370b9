package services

import (
	"time"

	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
)

// Response timestamps use RFC 3339, matching what gin emits for time.Time
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func toProfileBasic(profile *models.Profile) dto.ProfileBasicResponse {
	return dto.ProfileBasicResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Type:      profile.Type,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Photo:     profile.PhotoURL,
	}
}

func toProfileResponse(profile *models.Profile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Type:      profile.Type,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Bio:       profile.Bio,
		LinkedIn:  profile.LinkedIn,
		Photo:     profile.PhotoURL,
		Skills:    profile.Skills,
		Links:     profile.Links,
	}

	if profile.BirthDate != nil {
		birthDate := profile.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	if profile.Student != nil {
		resp.University = profile.Student.University
		resp.Major = profile.Student.Major
	}
	if profile.Mentor != nil {
		resp.Markets = profile.Mentor.Markets
	}

	return resp
}

func toProjectBasic(project *models.Project) dto.ProjectBasicResponse {
	return dto.ProjectBasicResponse{
		ID:       project.ID,
		Name:     project.Name,
		Slogan:   project.Slogan,
		Image:    project.ImageURL,
		Category: project.CategoryChoice(),
	}
}

func toMemberResponse(member *models.ProjectMember) dto.ProjectMemberResponse {
	resp := dto.ProjectMemberResponse{Role: member.Role}
	if member.Profile != nil {
		resp.Profile = toProfileBasic(member.Profile)
	}
	return resp
}

func toRequestResponse(request *models.ProjectRequest) dto.ProjectRequestResponse {
	resp := dto.ProjectRequestResponse{
		ID:      request.ID,
		Type:    request.Type,
		Message: request.Message,
	}
	if request.Profile != nil {
		resp.Profile = toProfileBasic(request.Profile)
	}
	if request.Project != nil {
		resp.Project = toProjectBasic(request.Project)
	}
	return resp
}

func toStarResponse(star *models.DiscussionStar) dto.DiscussionStarResponse {
	resp := dto.DiscussionStarResponse{
		ID:         star.ID,
		Visualized: star.Visualized,
		CreatedAt:  formatTime(star.CreatedAt),
	}
	if star.Profile != nil {
		resp.Profile = toProfileBasic(star.Profile)
	}
	return resp
}

func toReplyResponse(reply *models.DiscussionReply) dto.DiscussionReplyResponse {
	resp := dto.DiscussionReplyResponse{
		ID:         reply.ID,
		Content:    reply.Content,
		Visualized: reply.Visualized,
		CreatedAt:  formatTime(reply.CreatedAt),
	}
	if reply.Profile != nil {
		resp.Profile = toProfileBasic(reply.Profile)
	}
	return resp
}

func toDiscussionResponse(discussion *models.Discussion) dto.DiscussionResponse {
	resp := dto.DiscussionResponse{
		ID:        discussion.ID,
		Title:     discussion.Title,
		Body:      discussion.Body,
		Category:  discussion.CategoryChoice(),
		ProjectID: discussion.ProjectID,
		Stars:     []dto.DiscussionStarResponse{},
		Replies:   []dto.DiscussionReplyResponse{},
		CreatedAt: formatTime(discussion.CreatedAt),
	}
	if discussion.Profile != nil {
		resp.Profile = toProfileBasic(discussion.Profile)
	}
	for i := range discussion.Stars {
		resp.Stars = append(resp.Stars, toStarResponse(&discussion.Stars[i]))
	}
	for i := range discussion.Replies {
		resp.Replies = append(resp.Replies, toReplyResponse(&discussion.Replies[i]))
	}
	return resp
}

func toProjectResponse(project *models.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Slogan:      project.Slogan,
		Description: project.Description,
		Image:       project.ImageURL,
		Category:    project.CategoryChoice(),
		Markets:     project.Markets,
		Members:     []dto.ProjectMemberResponse{},
		Links:       project.Links,
		StarCount:   project.StarCount,
		CreatedAt:   formatTime(project.CreatedAt),
	}
	for i := range project.Members {
		resp.Members = append(resp.Members, toMemberResponse(&project.Members[i]))
	}
	for i := range project.Requests {
		resp.Requests = append(resp.Requests, toRequestResponse(&project.Requests[i]))
	}
	return resp
}

func toMessageResponse(message *models.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		ID:           message.ID,
		Content:      message.Content,
		VisualizedBy: message.VisualizedBy,
		CreatedAt:    formatTime(message.CreatedAt),
	}
	if resp.VisualizedBy == nil {
		resp.VisualizedBy = []int64{}
	}
	if message.Sender != nil {
		sender := toProfileBasic(message.Sender)
		resp.Sender = &sender
	}
	return resp
}
