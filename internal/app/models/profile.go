package models

import "time"

// DefaultBio is the placeholder biography new profiles start with
const DefaultBio = "Sem bio..."

// DefaultPhotoURL is the placeholder avatar for new profiles
const DefaultPhotoURL = "default_avatar.jpg"

// Profile defines the domain identity based on the 'profiles' table.
// Every user owns exactly one profile; Type tells which role record
// (student or mentor) is attached.
type Profile struct {
	ID        int64       `json:"id" db:"id"`
	UserID    int64       `json:"userId" db:"user_id"`
	Type      ProfileType `json:"type" db:"type" example:"student"`
	FirstName string      `json:"firstName" db:"first_name"`
	LastName  string      `json:"lastName" db:"last_name"`
	Bio       string      `json:"bio" db:"bio"`
	LinkedIn  string      `json:"linkedIn" db:"linkedin"`
	PhotoURL  string      `json:"photo" db:"photo_url"`
	BirthDate *time.Time  `json:"birthDate,omitempty" db:"birth_date"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`

	// Denormalized from the users table when joined
	Username string `json:"username" db:"username"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Student *Student `json:"student,omitempty"`
	Mentor  *Mentor  `json:"mentor,omitempty"`
	Skills  []Skill  `json:"skills,omitempty"`
	Links   []Link   `json:"links,omitempty"`
}

// Skill is a reference tag attached to profiles, unique by lower-cased name
type Skill struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" example:"programming"`
}

// Link is an external link owned by a profile
type Link struct {
	ID        int64  `json:"id" db:"id"`
	ProfileID int64  `json:"profileId" db:"profile_id"`
	Name      string `json:"name" db:"name"`
	Href      string `json:"href" db:"href"`
}
