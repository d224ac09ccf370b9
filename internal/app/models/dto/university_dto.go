package dto

// NameResponse is the minimal representation used by the directory
// name-list endpoints (universities, majors, markets, skills)
type NameResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
