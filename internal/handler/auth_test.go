package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ReturnsTokenAndPublicUser(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, "Asha", resp.User.Name)
	assert.Equal(t, "asha@example.com", resp.User.Email)

	// credential never leaves the server
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	registerUser(t, r, "first", "dup@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "second",
		"email":    "dup@example.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")

	// case-insensitive duplicate
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "third",
		"email":    "DUP@example.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// first account still works
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "dup@example.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "nofields@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_InvalidEmail(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "bad",
		"email":    "not-an-email",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	registerUser(t, r, "Asha", "asha@example.com")

	wrongPw := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	unknown := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "pw123456",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPw.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	// no account enumeration: both failures look the same
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestLogin_Success(t *testing.T) {
	r := newTestRouter(newTestDB(t))

	registerUser(t, r, "Asha", "asha@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	// the token works against a protected route
	me := doJSON(t, r, http.MethodGet, "/api/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), "asha@example.com")
}
