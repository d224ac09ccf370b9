package models

import "time"

// DefaultProjectDescription is the rich-text JSON blob new projects start with
const DefaultProjectDescription = `{"blocks": [{"key": "5v3ub", "text": "Sem descrição...", "type": "unstyled", "depth": 0, "inlineStyleRanges": [], "entityRanges": [], "data": {}}], "entityMap": {}}`

// DefaultProjectImage is the placeholder image for new projects
const DefaultProjectImage = "default_project.jpg"

// Project represents a student/mentor collaboration project
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Category    string    `json:"category" db:"category" example:"startup"`
	Name        string    `json:"name" db:"name"`
	Slogan      string    `json:"slogan" db:"slogan"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Members     []ProjectMember  `json:"members,omitempty"`
	Requests    []ProjectRequest `json:"requests,omitempty"`
	Markets     []Market         `json:"markets,omitempty"`
	Links       []ProjectLink    `json:"links,omitempty"`
	Discussions []Discussion     `json:"discussions,omitempty"`
	StarCount   int64            `json:"starCount,omitempty"`
}

// CategoryChoice returns the stored value with its readable label
func (p *Project) CategoryChoice() CategoryChoice {
	return CategoryChoice{Value: p.Category, Readable: ReadableProjectCategory(p.Category)}
}

// ProjectMember is the join row between a profile and a project.
// A profile holds at most one membership per project.
type ProjectMember struct {
	ID        int64      `json:"id" db:"id"`
	ProjectID int64      `json:"projectId" db:"project_id"`
	ProfileID int64      `json:"profileId" db:"profile_id"`
	Role      MemberRole `json:"role" db:"role" example:"admin"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Profile *Profile `json:"profile,omitempty"`
}

// ProjectRequest is a pending invitation or entry request. Replying deletes
// the row; acceptance additionally creates a ProjectMember.
type ProjectRequest struct {
	ID        int64       `json:"id" db:"id"`
	ProjectID int64       `json:"projectId" db:"project_id"`
	ProfileID int64       `json:"profileId" db:"profile_id"`
	Type      RequestType `json:"type" db:"type" example:"invitation"`
	Message   string      `json:"message" db:"message"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Project *Project `json:"project,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// ProjectStar is a like on a project, unique per (project, profile)
type ProjectStar struct {
	ID         int64     `json:"id" db:"id"`
	ProjectID  int64     `json:"projectId" db:"project_id"`
	ProfileID  int64     `json:"profileId" db:"profile_id"`
	Visualized bool      `json:"visualized" db:"visualized"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// ProjectLink is an external link attached to a project
type ProjectLink struct {
	ID        int64  `json:"id" db:"id"`
	ProjectID int64  `json:"projectId" db:"project_id"`
	Name      string `json:"name" db:"name"`
	Href      string `json:"href" db:"href"`
	IsPublic  bool   `json:"isPublic" db:"is_public"`
}
