package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID      = "userID"
	ContextProfileID   = "profileID"
	ContextUsername    = "username"
	ContextProfileType = "profileType"
)

// UnauthorizedMessage is the literal body of every 401 on protected routes
const UnauthorizedMessage = "Você precisa logar para acessar essa rota"

// AuthMiddleware guards routes behind JWT authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and loads its claims into the
// request context. Any failure aborts with the literal 401 string.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, UnauthorizedMessage)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextProfileID, claims.ProfileID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextProfileType, claims.ProfileType)

		c.Next()
	}
}

// GetProfileID returns the authenticated profile ID from the context
func GetProfileID(c *gin.Context) int64 {
	return c.GetInt64(ContextProfileID)
}

// GetUserID returns the authenticated user ID from the context
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// GetProfileType returns the authenticated profile's type from the context
func GetProfileType(c *gin.Context) models.ProfileType {
	return models.ProfileType(c.GetString(ContextProfileType))
}
