package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/unilink/unilink/internal/pkg/apperrors"
)

func serveError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found with client message",
			err:        apperrors.NewNotFoundError(apperrors.ErrProjectNotFound, "Projeto não encontrado"),
			wantStatus: http.StatusNotFound,
			wantBody:   `"Projeto não encontrado"`,
		},
		{
			name:       "bare not found sentinel falls back",
			err:        apperrors.ErrResourceNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `"Rota não encontrada!"`,
		},
		{
			name:       "forbidden",
			err:        apperrors.NewForbiddenError("Você não é um administrador do projeto!"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"Você não é um administrador do projeto!"`,
		},
		{
			name:       "invalid credentials",
			err:        apperrors.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"Usuário ou senha inválidos!"`,
		},
		{
			name:       "revoked token",
			err:        apperrors.ErrTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"Token inválido!"`,
		},
		{
			name:       "validation with client message",
			err:        apperrors.NewValidationError("As senhas devem ser iguais!"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"As senhas devem ser iguais!"`,
		},
		{
			name:       "duplicate star",
			err:        apperrors.NewConflictError(apperrors.ErrAlreadyStarred, "Você não pode curtir o mesmo projeto mais de uma vez!"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"Você não pode curtir o mesmo projeto mais de uma vez!"`,
		},
		{
			name:       "unknown error is a 500",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"Erro interno do servidor!"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
