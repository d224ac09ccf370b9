package dto

// Success is the plain-string body returned by mutation endpoints.
// The API contract keeps bodies as bare JSON strings, both for successes
// without payload and for every error message.
const Success = "success"

// PaginationInfo describes a page of a larger result set
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
	TotalPages  int   `json:"totalPages" example:"5"`
}
