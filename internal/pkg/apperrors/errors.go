package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrLinkNotFound    = errors.New("link not found")
)

// Project errors
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrRequestNotFound    = errors.New("project request not found")
	ErrMemberNotFound     = errors.New("project member not found")
	ErrAlreadyMember      = errors.New("profile is already a project member")
	ErrAlreadyInvited     = errors.New("profile already has a pending invitation")
	ErrAlreadyRequested   = errors.New("profile already has a pending entry request")
	ErrAlreadyStarred     = errors.New("profile already starred this target")
	ErrStarNotFound       = errors.New("star not found")
	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrReplyNotFound      = errors.New("discussion reply not found")
)

// Chat errors
var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrNotChatMember = errors.New("profile is not a chat member")
)

// Content errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// CustomError represents application-specific errors with additional context.
// Message carries the client-facing text returned in the response body.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(err error, message string) error {
	if err == nil {
		err = ErrResourceNotFound
	}
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(err error, message string) error {
	if err == nil {
		err = ErrConflict
	}
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for a failed input validation
// with the client-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// ClientMessage returns the client-facing message of err, or fallback when
// err carries none.
func ClientMessage(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
