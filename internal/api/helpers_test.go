package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"goaltracker/internal/middleware"
	"goaltracker/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// testEnv is a full router over in-memory stores, wired like cmd/server
type testEnv struct {
	router *gin.Engine
	users  *repository.InMemoryUserRepository
	goals  *repository.InMemoryGoalRepository
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	users := repository.NewInMemoryUserRepository()
	goals := repository.NewInMemoryGoalRepository()

	r := gin.New()
	r.Use(middleware.ErrorResponder(true))
	guard := middleware.JWTAuthMiddleware(testSecret, users)

	userGroup := r.Group("/api/users")
	userGroup.POST("", RegisterHandler(users, testSecret))
	userGroup.POST("/login", LoginHandler(users, testSecret))
	userGroup.GET("/me", guard, MeHandler(users, nil))

	goalGroup := r.Group("/api/goals")
	goalGroup.Use(guard)
	goalGroup.GET("", ListGoalsHandler(goals, nil))
	goalGroup.POST("", CreateGoalHandler(goals, nil))
	goalGroup.PUT("/:id", UpdateGoalHandler(goals, users, nil))
	goalGroup.DELETE("/:id", DeleteGoalHandler(goals, users, nil))

	return &testEnv{router: r, users: users, goals: goals}
}

// do performs a JSON request against the test router
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user over HTTP and returns the auth payload
func (e *testEnv) register(t *testing.T, name, email, password string) AuthResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// decode unmarshals a recorded response body into dest
func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
