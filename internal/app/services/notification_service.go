package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/app/repositories"
)

// NotificationGraceWindow keeps already-seen stars and replies in the
// feed for a while after visualization. The badge count ignores it.
const NotificationGraceWindow = 48 * time.Hour

// NotificationService defines the interface for notification operations
type NotificationService interface {
	GetNotifications(ctx context.Context, profileID int64) (*dto.NotificationsResponse, error)
	GetNotificationsNumber(ctx context.Context, profileID int64) (int64, error)
	VisualizeNotifications(ctx context.Context, profileID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	requestRepo    *repositories.RequestRepository
	discussionRepo *repositories.DiscussionRepository
	logger         zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	requestRepo *repositories.RequestRepository,
	discussionRepo *repositories.DiscussionRepository,
	logger zerolog.Logger,
) NotificationService {
	return &notificationServiceImpl{
		requestRepo:    requestRepo,
		discussionRepo: discussionRepo,
		logger:         logger,
	}
}

// inGraceWindow reports whether a visualized star or reply still shows in
// the feed: unvisualized items always do, visualized ones only while the
// visualization is younger than the window
func inGraceWindow(visualized bool, updatedAt, now time.Time) bool {
	if !visualized {
		return true
	}
	return now.Sub(updatedAt) < NotificationGraceWindow
}

// adminEntryRequests keeps only the requests for projects where the
// requester holds the admin role. The membership rows come back alongside
// the requests, so the role check happens here rather than in SQL.
func adminEntryRequests(requests []models.ProjectRequest, roles []models.MemberRole) []models.ProjectRequest {
	filtered := []models.ProjectRequest{}
	for i := range requests {
		if roles[i] == models.RoleAdmin {
			filtered = append(filtered, requests[i])
		}
	}
	return filtered
}

// GetNotifications aggregates the four notification sources: pending
// invitations, entry requests to administered projects, and stars and
// replies on the requester's discussions inside the grace window
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, profileID int64) (*dto.NotificationsResponse, error) {
	now := time.Now()

	invitations, err := s.requestRepo.InvitationsForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	entryRequests, roles, err := s.requestRepo.EntryRequestsForMemberships(ctx, profileID)
	if err != nil {
		return nil, err
	}
	entryRequests = adminEntryRequests(entryRequests, roles)

	stars, err := s.discussionRepo.StarsForAuthor(ctx, profileID)
	if err != nil {
		return nil, err
	}

	replies, err := s.discussionRepo.RepliesForAuthor(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationsResponse{
		ProjectInvitations:   []dto.ProjectRequestResponse{},
		ProjectEntryRequests: []dto.ProjectRequestResponse{},
		DiscussionStars:      []dto.DiscussionStarResponse{},
		DiscussionReplies:    []dto.DiscussionReplyResponse{},
	}
	for i := range invitations {
		resp.ProjectInvitations = append(resp.ProjectInvitations, toRequestResponse(&invitations[i]))
	}
	for i := range entryRequests {
		resp.ProjectEntryRequests = append(resp.ProjectEntryRequests, toRequestResponse(&entryRequests[i]))
	}
	for i := range stars {
		if inGraceWindow(stars[i].Visualized, stars[i].UpdatedAt, now) {
			resp.DiscussionStars = append(resp.DiscussionStars, toStarResponse(&stars[i]))
		}
	}
	for i := range replies {
		if inGraceWindow(replies[i].Visualized, replies[i].UpdatedAt, now) {
			resp.DiscussionReplies = append(resp.DiscussionReplies, toReplyResponse(&replies[i]))
		}
	}

	return resp, nil
}

// GetNotificationsNumber returns the badge count. Unlike the feed it only
// counts unvisualized stars and replies.
func (s *notificationServiceImpl) GetNotificationsNumber(ctx context.Context, profileID int64) (int64, error) {
	invitations, err := s.requestRepo.InvitationsForProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}

	entryRequests, roles, err := s.requestRepo.EntryRequestsForMemberships(ctx, profileID)
	if err != nil {
		return 0, err
	}
	entryRequests = adminEntryRequests(entryRequests, roles)

	stars, replies, err := s.discussionRepo.CountUnvisualized(ctx, profileID)
	if err != nil {
		return 0, err
	}

	return int64(len(invitations)) + int64(len(entryRequests)) + stars + replies, nil
}

// VisualizeNotifications marks every pending star and reply notification
// as seen. Running it again changes nothing.
func (s *notificationServiceImpl) VisualizeNotifications(ctx context.Context, profileID int64) error {
	return s.discussionRepo.VisualizeAll(ctx, profileID)
}
