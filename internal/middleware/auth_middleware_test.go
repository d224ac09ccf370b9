package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/auth"
)

func setupProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := NewAuthMiddleware(jwtService)
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"profileID":   GetProfileID(c),
			"userID":      GetUserID(c),
			"profileType": GetProfileType(c),
		})
	})

	return router
}

func TestJWTAuthMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	router := setupProtectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `"Você precisa logar para acessar essa rota"`, w.Body.String())
}

func TestJWTAuthGarbageToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	router := setupProtectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `"Você precisa logar para acessar essa rota"`, w.Body.String())
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	router := setupProtectedRouter(jwtService)

	access, _, _, _, err := jwtService.GenerateTokenPair(&models.Profile{
		ID:       7,
		UserID:   3,
		Type:     models.ProfileTypeMentor,
		Username: "mariasouza",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profileID": 7, "userID": 3, "profileType": "mentor"}`, w.Body.String())
}
