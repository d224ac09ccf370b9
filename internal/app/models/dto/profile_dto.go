package dto

import "github.com/unilink/unilink/internal/app/models"

// EditProfileRequest is the payload for PUT /api/profiles/edit-my-profile
type EditProfileRequest struct {
	Username              string   `json:"username"`
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Bio                   string   `json:"bio"`
	LinkedIn              string   `json:"linkedIn"`
	PhotoURL              *string  `json:"photo"`
	IsAttendingUniversity bool     `json:"is_attending_university"`
	UniversityName        string   `json:"university_name"`
	MajorName             string   `json:"major_name"`
	SkillsNames           []string `json:"skills_names"`
}

// CreateLinkRequest is the payload for POST /api/profiles/create-link
type CreateLinkRequest struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// ProfileResponse is the full profile representation
type ProfileResponse struct {
	ID        int64              `json:"id"`
	Username  string             `json:"username"`
	Type      models.ProfileType `json:"type"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Bio       string             `json:"bio"`
	LinkedIn  string             `json:"linkedIn"`
	Photo     string             `json:"photo"`
	BirthDate *string            `json:"birthDate,omitempty"`
	Skills    []models.Skill     `json:"skills"`
	Links     []models.Link      `json:"links"`

	// Student-only fields
	University *models.University `json:"university,omitempty"`
	Major      *models.Major      `json:"major,omitempty"`

	// Mentor-only fields
	Markets []models.Market `json:"markets,omitempty"`
}

// ProfileBasicResponse is the compact representation used by search and
// list endpoints
type ProfileBasicResponse struct {
	ID        int64              `json:"id"`
	Username  string             `json:"username"`
	Type      models.ProfileType `json:"type"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
	Photo     string             `json:"photo"`
}

// ProfileListResponse is the payload of GET /api/profiles/get-profile-list
type ProfileListResponse struct {
	IsAll    bool                   `json:"isall"`
	Profiles []ProfileBasicResponse `json:"profiles"`
}

// ProfileListFilter collects the optional query filters of get-profile-list
type ProfileListFilter struct {
	Length       int
	Universities []string
	Majors       []string
	Skills       []string
}
