package models

import (
	"time"
)

// User defines the authentication identity based on the 'users' table.
// Domain data lives on the owned Profile (created in the same transaction).
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"joaosilva"`               // Unique login name, lower-cased
	Email     string    `json:"email" db:"email" example:"joao@usp.br"`                   // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}
