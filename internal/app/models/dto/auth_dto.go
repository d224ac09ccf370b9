package dto

// LoginRequest is the credentials payload for POST /token/
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the access/refresh pair returned by login and refresh
type TokenResponse struct {
	Access           string `json:"access"`
	Refresh          string `json:"refresh"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// RefreshRequest carries the refresh token for POST /token/refresh/ and
// POST /token/logout/
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// SignupRequest is the payload for POST /api/profiles/{type}/post-signup.
// University/major fields only apply when IsAttendingUniversity is set;
// MarketsNames only applies to mentor signups.
type SignupRequest struct {
	Username               string   `json:"username"`
	Email                  string   `json:"email"`
	Password               string   `json:"password"`
	PasswordConfirmation   string   `json:"passwordc"`
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	BirthDate              string   `json:"birth_date" example:"2000-04-23"`
	IsAttendingUniversity  bool     `json:"is_attending_university"`
	UniversityName         string   `json:"university_name"`
	MajorName              string   `json:"major_name"`
	SkillsNames            []string `json:"skills_names"`
	MarketsNames           []string `json:"markets_names"`
}
