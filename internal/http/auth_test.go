package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarium/internal/entities"
)

func TestRegister(t *testing.T) {
	ts := setupTestServer(t, "")

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Message string        `json:"message"`
		User    entities.User `json:"user"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.Equal(t, "alice", body.User.Username)
	assert.Equal(t, "alice@example.com", body.User.Email)
	assert.NotZero(t, body.User.ID)

	// The password hash never appears in responses
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestRegisterValidation(t *testing.T) {
	ts := setupTestServer(t, "")

	cases := []struct {
		name    string
		payload gin.H
		wantErr string
	}{
		{
			name:    "missing username",
			payload: gin.H{"email": "a@example.com", "password": "secret1"},
			wantErr: "username is required",
		},
		{
			name:    "missing email",
			payload: gin.H{"username": "alice", "password": "secret1"},
			wantErr: "email is required",
		},
		{
			name:    "missing password",
			payload: gin.H{"username": "alice", "email": "a@example.com"},
			wantErr: "password is required",
		},
		{
			name:    "bad email",
			payload: gin.H{"username": "alice", "email": "nope", "password": "secret1"},
			wantErr: "email",
		},
		{
			name:    "short password",
			payload: gin.H{"username": "alice", "email": "a@example.com", "password": "abc"},
			wantErr: "password",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := ts.doJSON(t, http.MethodPost, "/api/auth/register", tc.payload, "")
			require.Equal(t, http.StatusBadRequest, resp.Code)

			var body ErrorResponse
			decodeJSON(t, resp, &body)
			assert.Contains(t, body.Error, tc.wantErr)
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	ts := setupTestServer(t, "")

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Code)

	// Same username, different email
	resp = ts.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusConflict, resp.Code)

	var body ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Error, "username")

	// Same email, different username
	resp = ts.doJSON(t, http.MethodPost, "/api/auth/register", gin.H{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusConflict, resp.Code)
	decodeJSON(t, resp, &body)
	assert.Contains(t, body.Error, "email")
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	ts := setupTestServer(t, "")
	ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	for _, login := range []string{"alice", "alice@example.com"} {
		resp := ts.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
			"login":    login,
			"password": "secret1",
		}, "")
		require.Equal(t, http.StatusOK, resp.Code, login)

		var body struct {
			AccessToken string `json:"access_token"`
		}
		decodeJSON(t, resp, &body)
		assert.NotEmpty(t, body.AccessToken)
	}
}

func TestLoginFailures(t *testing.T) {
	ts := setupTestServer(t, "")
	ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	// Unknown login and wrong password produce the same response, so an
	// attacker cannot probe which usernames exist.
	for _, payload := range []gin.H{
		{"login": "nobody", "password": "secret1"},
		{"login": "alice", "password": "wrong-password"},
	} {
		resp := ts.doJSON(t, http.MethodPost, "/api/auth/login", payload, "")
		require.Equal(t, http.StatusUnauthorized, resp.Code)

		var body ErrorResponse
		decodeJSON(t, resp, &body)
		assert.Equal(t, "invalid credentials", body.Error)
	}

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{"login": "alice"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProfile(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodGet, "/api/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		User entities.User `json:"user"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "alice", body.User.Username)
}

func TestGetUsers(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")
	ts.registerAndLogin(t, "bob", "bob@example.com", "secret2")

	resp := ts.doJSON(t, http.MethodGet, "/api/auth/users", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Users []entities.User `json:"users"`
		Total int             `json:"total"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Users, 2)
}

func TestLogoutRevokesToken(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	// The revoked token no longer opens any protected endpoint
	resp = ts.doJSON(t, http.MethodGet, "/api/auth/profile", nil, token)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var body ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "token revoked", body.Error)
}

func TestRefreshIssuesNonFreshToken(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/refresh", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	assert.NotEqual(t, token, body.AccessToken)

	claims, err := ts.tokens.Parse(body.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.Fresh)

	// A refreshed token still works for ordinary endpoints
	resp = ts.doJSON(t, http.MethodGet, "/api/auth/profile", nil, body.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestDeleteAccountRequiresFreshToken(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodPost, "/api/auth/refresh", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)

	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &refreshed)

	resp = ts.doJSON(t, http.MethodDelete, "/api/auth/profile", nil, refreshed.AccessToken)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var body ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "fresh token required", body.Error)
}

func TestDeleteAccount(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	resp := ts.doJSON(t, http.MethodDelete, "/api/auth/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// The account is gone and its token is revoked
	resp = ts.doJSON(t, http.MethodPost, "/api/auth/login", gin.H{
		"login":    "alice",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.doJSON(t, http.MethodGet, "/api/auth/profile", nil, token)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestTokenSubjectIsUserID(t *testing.T) {
	ts := setupTestServer(t, "")
	token := ts.registerAndLogin(t, "alice", "alice@example.com", "secret1")

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	claims, err := ts.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.True(t, claims.Fresh)
	assert.NotEmpty(t, claims.JTI)
}
