package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/logger"
)

// HandleAPIError maps a service error to its HTTP status and writes the
// client-facing message as a plain JSON string, the wire contract of the
// whole API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrProjectNotFound,
		apperrors.ErrRequestNotFound,
		apperrors.ErrMemberNotFound,
		apperrors.ErrLinkNotFound,
		apperrors.ErrStarNotFound,
		apperrors.ErrDiscussionNotFound,
		apperrors.ErrReplyNotFound,
		apperrors.ErrChatNotFound):
		c.JSON(http.StatusNotFound, apperrors.ClientMessage(err, "Rota não encontrada!"))

	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, apperrors.ClientMessage(err, UnauthorizedMessage))

	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apperrors.ClientMessage(err, "Usuário ou senha inválidos!"))

	case apperrors.Is(err, apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, apperrors.ClientMessage(err, "Token inválido!"))

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrAlreadyMember,
		apperrors.ErrAlreadyInvited,
		apperrors.ErrAlreadyRequested,
		apperrors.ErrAlreadyStarred,
		apperrors.ErrNotChatMember):
		c.JSON(http.StatusBadRequest, apperrors.ClientMessage(err, "Dados inválidos!"))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, "Erro interno do servidor!")
	}
}
