package models

import "time"

// University is a reference/directory entity based on the 'universities' table
type University struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"USP"`
	CNPJ      *string   `json:"cnpj,omitempty" db:"cnpj"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Major is an undergraduate course, unique by lower-cased name
type Major struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" example:"computer engineering"`
}

// Market is a field/market tag related to mentors and projects,
// unique by lower-cased name
type Market struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" example:"fintech"`
}
