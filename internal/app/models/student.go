package models

// Student defines the student role record based on the 'students' table
type Student struct {
	ID           int64  `json:"id" db:"id"`
	ProfileID    int64  `json:"profileId" db:"profile_id"`
	UniversityID *int64 `json:"universityId,omitempty" db:"university_id"`
	MajorID      *int64 `json:"majorId,omitempty" db:"major_id"`

	// Relations (populated when needed)
	University *University `json:"university,omitempty"`
	Major      *Major      `json:"major,omitempty"`
}

// Mentor defines the mentor role record based on the 'mentors' table
type Mentor struct {
	ID        int64 `json:"id" db:"id"`
	ProfileID int64 `json:"profileId" db:"profile_id"`

	// Markets of expertise (populated when needed)
	Markets []Market `json:"markets,omitempty"`
}
