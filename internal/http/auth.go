package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarium/internal/auth"
	"librarium/internal/entities"
)

type AuthController struct {
	service     *auth.Service
	tokens      *auth.TokenService
	revocations *auth.RevocationStore
}

func NewAuthController(service *auth.Service, tokens *auth.TokenService, revocations *auth.RevocationStore) *AuthController {
	return &AuthController{
		service:     service,
		tokens:      tokens,
		revocations: revocations,
	}
}

// Register creates a new user account. Duplicate usernames and emails are
// reported as 409 before any insert happens.
func (controller *AuthController) Register(c *gin.Context) {
	var req entities.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON payload: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := controller.service.Register(&req)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) || errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondInternalError(c, err, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login authenticates by username or email and issues a fresh bearer token.
func (controller *AuthController) Login(c *gin.Context) {
	var req entities.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON payload: "+err.Error())
		return
	}
	if req.Login == "" || req.Password == "" {
		respondBadRequest(c, "login and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		respondInternalError(c, err, "failed to authenticate")
		return
	}

	token, _, err := controller.tokens.Issue(user.ID, true)
	if err != nil {
		respondInternalError(c, err, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"user":         user,
	})
}

// Refresh exchanges a valid token for a new one. Refreshed tokens are not
// fresh: endpoints guarded by RequireFresh demand a re-login.
func (controller *AuthController) Refresh(c *gin.Context) {
	token, _, err := controller.tokens.Issue(auth.GetUserID(c), false)
	if err != nil {
		respondInternalError(c, err, "failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

// Logout revokes the presented token until its natural expiry.
func (controller *AuthController) Logout(c *gin.Context) {
	claims := auth.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	if err := controller.revocations.Revoke(claims); err != nil {
		respondInternalError(c, err, "failed to revoke token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}

// Profile returns the authenticated user.
func (controller *AuthController) Profile(c *gin.Context) {
	user, err := controller.service.GetUserByID(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "failed to fetch profile")
		return
	}
	if user == nil {
		respondNotFound(c, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetUsers lists all registered users.
func (controller *AuthController) GetUsers(c *gin.Context) {
	allUsers, err := controller.service.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": allUsers, "total": len(allUsers)})
}

// DeleteAccount removes the authenticated user's account and revokes the
// presented token. Guarded by a freshness check in the router.
func (controller *AuthController) DeleteAccount(c *gin.Context) {
	user, err := controller.service.DeleteUser(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "failed to delete account")
		return
	}
	if user == nil {
		respondNotFound(c, "User")
		return
	}

	if claims := auth.GetClaims(c); claims != nil {
		if err := controller.revocations.Revoke(claims); err != nil {
			respondInternalError(c, err, "failed to revoke token")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
