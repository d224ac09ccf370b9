package dto

// NotificationsResponse aggregates everything the requesting profile needs
// to see: pending invitations, entry requests on projects it administers,
// and activity on its own discussions. All lists come newest-first.
type NotificationsResponse struct {
	ProjectInvitations   []ProjectRequestResponse  `json:"projects_invitations"`
	ProjectEntryRequests []ProjectRequestResponse  `json:"projects_entry_requests"`
	DiscussionStars      []DiscussionStarResponse  `json:"discussions_stars"`
	DiscussionReplies    []DiscussionReplyResponse `json:"discussions_replies"`
}
