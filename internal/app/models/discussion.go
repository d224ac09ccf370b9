package models

import "time"

// Discussion is a project-scoped topic owned by one profile
type Discussion struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	ProfileID int64     `json:"profileId" db:"profile_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Category  string    `json:"category" db:"category" example:"doubt"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Profile *Profile          `json:"profile,omitempty"`
	Project *Project          `json:"project,omitempty"`
	Stars   []DiscussionStar  `json:"stars,omitempty"`
	Replies []DiscussionReply `json:"replies,omitempty"`
}

// CategoryChoice returns the stored value with its readable label
func (d *Discussion) CategoryChoice() CategoryChoice {
	return CategoryChoice{Value: d.Category, Readable: ReadableDiscussionCategory(d.Category)}
}

// DiscussionStar is a like on a discussion, unique per (discussion, profile).
// Visualized transitions false to true once and never back.
type DiscussionStar struct {
	ID           int64     `json:"id" db:"id"`
	DiscussionID int64     `json:"discussionId" db:"discussion_id"`
	ProfileID    int64     `json:"profileId" db:"profile_id"`
	Visualized   bool      `json:"visualized" db:"visualized"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Profile    *Profile    `json:"profile,omitempty"`
	Discussion *Discussion `json:"discussion,omitempty"`
}

// DiscussionReply is a flat, single-level comment on a discussion.
// Visualized transitions false to true once and never back.
type DiscussionReply struct {
	ID           int64     `json:"id" db:"id"`
	DiscussionID int64     `json:"discussionId" db:"discussion_id"`
	ProfileID    int64     `json:"profileId" db:"profile_id"`
	Content      string    `json:"content" db:"content"`
	Visualized   bool      `json:"visualized" db:"visualized"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Profile    *Profile    `json:"profile,omitempty"`
	Discussion *Discussion `json:"discussion,omitempty"`
}
