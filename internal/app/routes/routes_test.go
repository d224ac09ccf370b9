package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/unilink/unilink/internal/app/controllers"
	"github.com/unilink/unilink/internal/middleware"
	"github.com/unilink/unilink/internal/pkg/auth"
	"github.com/unilink/unilink/internal/pkg/websocket"
)

// setupTestRouter wires the full route table with inert controllers. The
// routes exercised here never reach a service.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	lgr := zerolog.Nop()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})

	hub := websocket.NewHub(lgr)
	wsHandler := websocket.NewHandler(hub, websocket.NewMessageHandler(nil, lgr), nil, lgr)

	SetupRouter(
		router,
		controllers.NewAuthController(nil, lgr),
		controllers.NewProfileController(nil, nil, lgr),
		controllers.NewProjectController(nil, lgr),
		controllers.NewDiscussionController(nil, lgr),
		controllers.NewChatController(nil, lgr),
		controllers.NewUniversityController(nil, lgr),
		wsHandler,
		middleware.NewAuthMiddleware(jwtService),
	)

	return router
}

func TestPing(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "pong"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `"Rota não encontrada!"`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupTestRouter()

	paths := []string{
		"/api/profiles/get-my-profile",
		"/api/projects/get-projects-list",
		"/api/chats/get-chats-list",
		"/api/universities/get-universities-name-list",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `"Você precisa logar para acessar essa rota"`, w.Body.String())
		})
	}
}
