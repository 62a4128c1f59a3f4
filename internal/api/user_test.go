package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ThenLoginThenMe(t *testing.T) {
	env := newTestEnv()

	reg := env.register(t, "Alice", "alice@example.com", "hunter22")
	assert.NotZero(t, reg.ID)
	assert.Equal(t, "Alice", reg.Name)
	assert.Equal(t, "alice@example.com", reg.Email)
	assert.NotEmpty(t, reg.Token)

	// Login with the same credentials
	w := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login AuthResponse
	decode(t, w, &login)
	assert.Equal(t, reg.ID, login.ID)
	assert.NotEmpty(t, login.Token)

	// The guard accepts the login token and resolves the same user
	w = env.do(t, http.MethodGet, "/api/users/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me UserResponse
	decode(t, w, &me)
	assert.Equal(t, reg.ID, me.ID)
	assert.Equal(t, "Alice", me.Name)
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv()

	for _, body := range []gin.H{
		{"email": "a@example.com", "password": "hunter22"},
		{"name": "Alice", "password": "hunter22"},
		{"name": "Alice", "email": "a@example.com"},
		{},
	} {
		w := env.do(t, http.MethodPost, "/api/users", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please add all fields")
	}
	assert.Equal(t, 0, env.users.Count(), "no record may be inserted")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv()

	env.register(t, "Alice", "alice@example.com", "hunter22")

	w := env.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name":     "Impostor",
		"email":    "alice@example.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
	assert.Equal(t, 1, env.users.Count(), "duplicate registration must not insert")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv()
	env.register(t, "Alice", "alice@example.com", "hunter22")

	// Unknown email
	w := env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Credentials")

	// Wrong password
	w = env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Credentials")
}

func TestMe_RequiresToken(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token, not authorized")
}
